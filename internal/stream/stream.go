// Package stream 按需从资源中读取字节区间，逐块产出响应体
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/miyingqi/streamslice/internal/byterange"
	"golang.org/x/time/rate"
)

// DefaultBufferSize 默认块大小
const DefaultBufferSize = 8192

// ErrConsumed 响应体只能被迭代一次
var ErrConsumed = errors.New("stream already consumed")

// Options 流配置
type Options struct {
	BufferSize int
	// Limiter 非空时按字节限速
	Limiter *rate.Limiter
}

// NewLimiter 创建字节限速器，bytesPerSec<=0 返回nil（不限速）
// 突发容量不小于一个块，保证 WaitN 不会因块过大而失败
func NewLimiter(bytesPerSec, bufferSize int) *rate.Limiter {
	if bytesPerSec <= 0 {
		return nil
	}
	burst := bytesPerSec
	if bufferSize > burst {
		burst = bufferSize
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// Body 独占一个资源句柄的惰性响应体
type Body struct {
	res       io.ReadSeekCloser
	start     uint64
	length    uint64
	seek      bool
	bufSize   int
	limiter   *rate.Limiter
	used      atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Full 整个资源，从当前位置（偏移0）开始读取，不超过size字节
func Full(res io.ReadSeekCloser, size uint64, opts Options) *Body {
	return newBody(res, 0, size, false, opts)
}

// Partial 资源的 [iv.Start, iv.End] 区间，首次读取前定位到 iv.Start
// 倒置区间不产出任何块
func Partial(res io.ReadSeekCloser, iv byterange.Interval, opts Options) *Body {
	return newBody(res, iv.Start, iv.Len(), true, opts)
}

func newBody(res io.ReadSeekCloser, start, length uint64, seek bool, opts Options) *Body {
	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Body{
		res:     res,
		start:   start,
		length:  length,
		seek:    seek,
		bufSize: size,
		limiter: opts.Limiter,
	}
}

// Len 计划产出的字节数
func (b *Body) Len() uint64 {
	return b.length
}

// Chunks 返回单次可迭代的块序列
// 块按偏移严格递增，读取出错时产出一个错误后结束；迭代结束（包括提前终止）即关闭资源
func (b *Body) Chunks(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if !b.used.CompareAndSwap(false, true) {
			yield(nil, ErrConsumed)
			return
		}
		defer b.Close()

		remaining := b.length
		if remaining == 0 {
			return
		}
		if b.seek {
			if _, err := b.res.Seek(int64(b.start), io.SeekStart); err != nil {
				yield(nil, fmt.Errorf("seek to %d: %w", b.start, err))
				return
			}
		}

		for remaining > 0 {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			want := uint64(b.bufSize)
			if remaining < want {
				want = remaining
			}
			buf := make([]byte, want)
			n, err := io.ReadFull(b.res, buf)
			if n > 0 {
				if b.limiter != nil {
					if werr := b.limiter.WaitN(ctx, n); werr != nil {
						yield(nil, werr)
						return
					}
				}
				remaining -= uint64(n)
				if !yield(buf[:n:n], nil) {
					return
				}
			}
			switch {
			case err == nil:
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				return
			default:
				yield(nil, fmt.Errorf("read: %w", err))
				return
			}
		}
	}
}

// Drain 将所有块写入w，每块之后刷新，返回写入字节数
func (b *Body) Drain(ctx context.Context, w io.Writer) (int64, error) {
	flusher, _ := w.(http.Flusher)
	var written int64
	for chunk, err := range b.Chunks(ctx) {
		if err != nil {
			return written, err
		}
		n, werr := w.Write(chunk)
		written += int64(n)
		if werr != nil {
			return written, fmt.Errorf("write: %w", werr)
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return written, nil
}

// Close 释放资源句柄，可重复调用
func (b *Body) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = b.res.Close()
	})
	return b.closeErr
}
