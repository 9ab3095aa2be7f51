package fileops

import (
	"fmt"

	"github.com/moyu-x/folder-manager/pkg/logger"
)

// Result 所有公开操作统一返回的结果信封
// 不变量: Success 为 true 时只有 Payload 有效；
// 为 false 时只有 ErrorKind/ErrorMessage 有效，二者绝不同时填充
type Result[T any] struct {
	Success      bool   `json:"success"`
	Payload      T      `json:"payload,omitempty"`
	ErrorKind    Kind   `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func succeed[T any](payload T) Result[T] {
	return Result[T]{Success: true, Payload: payload}
}

func failed[T any](err error) Result[T] {
	return Result[T]{
		Success:      false,
		ErrorKind:    KindOf(err),
		ErrorMessage: err.Error(),
	}
}

// Run 公开边界的统一包装
// 捕获 fn 中的 panic 并把任何错误装箱为结果信封，
// 保证原始错误或 panic 绝不穿越公开边界
func Run[T any](op, path string, fn func() (T, error)) Result[T] {
	var (
		payload T
		err     error
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Error().
					Str("op", op).
					Str("path", path).
					Interface("panic", r).
					Msg("操作发生内部错误")
				err = NewError(KindIO, op, path, fmt.Errorf("内部错误: %v", r))
			}
		}()
		payload, err = fn()
	}()

	if err != nil {
		logger.Get().Debug().Str("op", op).Str("path", path).Err(err).Msg("操作失败")
		return failed[T](err)
	}
	return succeed(payload)
}
