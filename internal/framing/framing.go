package framing

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/miyingqi/streamslice/internal/byterange"
)

const (
	HeaderAcceptRanges  = "Accept-Ranges"
	HeaderContentLength = "Content-Length"
	HeaderContentRange  = "Content-Range"
	HeaderContentType   = "Content-Type"
	HeaderRange         = "Range"

	// AcceptRangesBytes 唯一支持的范围单位
	AcceptRangesBytes = "bytes"
)

// ContentRange Content-Range 头的取值，Unsatisfied 时输出 bytes */total
type ContentRange struct {
	Start       uint64
	End         uint64
	Total       uint64
	Unsatisfied bool
}

func (cr ContentRange) String() string {
	if cr.Unsatisfied {
		return fmt.Sprintf("bytes */%d", cr.Total)
	}
	return fmt.Sprintf("bytes %d-%d/%d", cr.Start, cr.End, cr.Total)
}

// Framing 响应状态与头部，构建后不可修改
type Framing struct {
	Status        int
	ContentType   string
	ContentLength uint64
	ContentRange  *ContentRange
	AcceptRanges  string
}

// BuildFull 完整文件响应 200
func BuildFull(size uint64, contentType string) Framing {
	f := Framing{
		Status:        http.StatusOK,
		ContentType:   contentType,
		ContentLength: size,
		AcceptRanges:  AcceptRangesBytes,
	}
	// 空文件没有合法的 0-(size-1) 区间
	if iv, ok := byterange.Whole(size); ok {
		f.ContentRange = &ContentRange{Start: iv.Start, End: iv.End, Total: size}
	}
	return f
}

// BuildPartial 部分内容响应 206，Content-Range 总是报告请求的区间
func BuildPartial(iv byterange.Interval, size uint64, contentType string) Framing {
	return Framing{
		Status:        http.StatusPartialContent,
		ContentType:   contentType,
		ContentLength: iv.Len(),
		ContentRange:  &ContentRange{Start: iv.Start, End: iv.End, Total: size},
		AcceptRanges:  AcceptRangesBytes,
	}
}

// BuildUnsatisfiable 范围无法满足 416
func BuildUnsatisfiable(size uint64, contentType string) Framing {
	return Framing{
		Status:        http.StatusRequestedRangeNotSatisfiable,
		ContentType:   contentType,
		ContentLength: 0,
		ContentRange:  &ContentRange{Total: size, Unsatisfied: true},
		AcceptRanges:  AcceptRangesBytes,
	}
}

// Apply 写入响应头（不写状态码）
func (f Framing) Apply(h http.Header) {
	h.Set(HeaderContentType, f.ContentType)
	h.Set(HeaderAcceptRanges, f.AcceptRanges)
	h.Set(HeaderContentLength, strconv.FormatUint(f.ContentLength, 10))
	if f.ContentRange != nil {
		h.Set(HeaderContentRange, f.ContentRange.String())
	} else {
		h.Del(HeaderContentRange)
	}
}
