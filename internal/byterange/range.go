package byterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsatisfiable 请求范围无法满足（仅严格模式返回）
var ErrUnsatisfiable = errors.New("range not satisfiable")

// Interval 字节区间 [Start, End]，两端均包含
type Interval struct {
	Start uint64
	End   uint64
}

// Len 区间长度，倒置区间返回0
func (iv Interval) Len() uint64 {
	if iv.Start > iv.End {
		return 0
	}
	return iv.End - iv.Start + 1
}

// Empty 区间是否不包含任何字节
func (iv Interval) Empty() bool {
	return iv.Start > iv.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("%d-%d", iv.Start, iv.End)
}

// Whole 返回覆盖整个资源的区间，空资源返回false
func Whole(size uint64) (Interval, bool) {
	if size == 0 {
		return Interval{}, false
	}
	return Interval{Start: 0, End: size - 1}, true
}

// Parse 解析Range请求头 bytes=<start>-<end>
// 任一端缺省或无法解析时使用默认值 0 / size-1，不做任何校验
func Parse(header string, size uint64) Interval {
	iv := Interval{Start: 0, End: lastByte(size)}

	parts := strings.Split(header, "=")
	value := ""
	if len(parts) > 1 {
		value = parts[1]
	}

	tokens := strings.Split(value, "-")
	if v, err := strconv.ParseUint(tokens[0], 10, 64); err == nil {
		iv.Start = v
	}
	if len(tokens) > 1 {
		if v, err := strconv.ParseUint(tokens[1], 10, 64); err == nil {
			iv.End = v
		}
	}
	return iv
}

// Policy 范围校验策略
type Policy struct {
	// Strict 拒绝倒置或越界的起点，并将越界的终点截断到 size-1
	Strict bool
	// Suffix 将 bytes=-N 解释为最后N个字节
	Suffix bool
}

// ParsePolicy 从配置字符串解析策略名 strict / lenient
func ParsePolicy(name string, suffix bool) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return Policy{Strict: true, Suffix: suffix}, nil
	case "lenient":
		return Policy{Strict: false, Suffix: suffix}, nil
	default:
		return Policy{}, fmt.Errorf("unknown range policy %q", name)
	}
}

// Resolve 按策略计算实际服务的区间
func Resolve(header string, size uint64, policy Policy) (Interval, error) {
	iv := Parse(header, size)
	suffix, isSuffix := suffixLength(header)

	if policy.Suffix && isSuffix {
		if suffix == 0 {
			if policy.Strict {
				return Interval{}, ErrUnsatisfiable
			}
			return Interval{Start: 1, End: 0}, nil
		}
		iv.End = lastByte(size)
		if suffix >= size {
			iv.Start = 0
		} else {
			iv.Start = size - suffix
		}
	}

	if !policy.Strict {
		return iv, nil
	}
	if size == 0 || iv.Start >= size || iv.Start > iv.End {
		return Interval{}, ErrUnsatisfiable
	}
	if iv.End >= size {
		iv.End = size - 1
	}
	return iv, nil
}

// suffixLength 识别 bytes=-N 形式
func suffixLength(header string) (uint64, bool) {
	parts := strings.Split(header, "=")
	if len(parts) < 2 {
		return 0, false
	}
	tokens := strings.Split(parts[1], "-")
	if len(tokens) != 2 || tokens[0] != "" {
		return 0, false
	}
	n, err := strconv.ParseUint(tokens[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// lastByte 空资源时不回绕
func lastByte(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	return size - 1
}
