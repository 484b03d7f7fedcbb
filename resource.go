package streamslice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrResourceUnavailable 资源无法打开或无法读取大小
var ErrResourceUnavailable = errors.New("resource unavailable")

// Resource 可定位的字节源，由单个请求独占，响应结束后关闭
// 任意存储只需实现此接口即可支持范围请求
type Resource interface {
	io.ReadSeekCloser

	// Name 用于推断MIME类型
	Name() string

	// Size 总字节数
	Size() uint64
}

// Opener 按路径打开资源
type Opener func(path string) (Resource, error)

// FileResource 本地文件资源
type FileResource struct {
	file *os.File
	name string
	size uint64
}

var _ Resource = (*FileResource)(nil)

// OpenFile 打开文件并读取大小，失败统一包装为 ErrResourceUnavailable
func OpenFile(path string) (*FileResource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceUnavailable, path)
	}
	return &FileResource{
		file: f,
		name: filepath.Base(path),
		size: uint64(info.Size()),
	}, nil
}

func openFile(path string) (Resource, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FileResource) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

func (f *FileResource) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *FileResource) Close() error {
	return f.file.Close()
}

func (f *FileResource) Name() string { return f.name }
func (f *FileResource) Size() uint64 { return f.size }
