package fileops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind 错误分类标签，随结果信封一起返回给调用方
type Kind string

const (
	// KindValidation 输入非法（路径、文件名、算法名），未发生任何 I/O
	KindValidation Kind = "validation"
	// KindNotFound 源路径或目标在操作时不存在
	KindNotFound Kind = "not_found"
	// KindPermission 操作系统权限不足
	KindPermission Kind = "permission_denied"
	// KindExists 目标已存在且未允许覆盖
	KindExists Kind = "already_exists"
	// KindIO 其余的底层文件系统错误（磁盘满、设备错误等）
	KindIO Kind = "io_failure"
	// KindPartial 操作部分完成且自动回滚也失败，可能需要手动清理
	KindPartial Kind = "partial_failure"
)

// OpError 携带分类标签的操作错误
// 消息中始终包含触发失败的操作与路径，足以直接展示给调用方
type OpError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 操作失败 (%s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s 操作失败 (%s)", e.Op, e.Path)
}

func (e *OpError) Unwrap() error { return e.Err }

// NewError 构造一个带分类标签的操作错误
func NewError(kind Kind, op, path string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Path: path, Err: err}
}

// Classify 为底层文件系统错误打上分类标签
// 已经带标签的错误原样返回，避免重复包装覆盖原始分类
func Classify(op, path string, err error) error {
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}
	return NewError(kindFromOS(err), op, path, err)
}

// kindFromOS 按系统错误推断分类
func kindFromOS(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrExist):
		return KindExists
	}
	return KindIO
}

// KindOf 判定任意错误的分类
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return kindFromOS(err)
}
