package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/pkg/hasher"
	"github.com/moyu-x/folder-manager/pkg/logger"
	"github.com/moyu-x/folder-manager/pkg/pathcheck"
)

// Move 将文件从 source 移动到 destination
// 同一文件系统内直接重命名；跨文件系统时退化为复制+校验+删除源，
// 中途失败会尝试回滚已写入的目标
func (e *Engine) Move(source, destination string, overwrite bool) Result[bool] {
	return Run("move", source, func() (done bool, err error) {
		state := StateFailed
		defer func() {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			e.record("move", source, destination, state, msg)
		}()

		logger.Get().Debug().Str("source", source).Str("destination", destination).Msg("开始移动文件")

		// Validating
		src, err := cleanOp("move", source)
		if err != nil {
			return false, err
		}
		dst, err := cleanOp("move", destination)
		if err != nil {
			return false, err
		}

		// Preflight
		logger.Get().Debug().Str("op", "move").Msg("进入预检阶段")
		if err = e.preflightTransfer("move", src, dst, overwrite); err != nil {
			return false, err
		}

		// Executing
		logger.Get().Debug().Str("op", "move").Msg("进入执行阶段")
		rolledBack, err := e.moveFile(src, dst)
		if err != nil {
			if rolledBack {
				state = StateRolledBack
			}
			return false, err
		}

		state = StateCommitted
		logger.Get().Info().Str("source", src).Str("destination", dst).Msg("文件移动完成")
		return true, nil
	})
}

// Copy 将文件从 source 复制到 destination
// 先写入临时文件并校验内容，校验通过后才替换到目标位置
func (e *Engine) Copy(source, destination string, overwrite bool) Result[bool] {
	return Run("copy", source, func() (done bool, err error) {
		state := StateFailed
		defer func() {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			e.record("copy", source, destination, state, msg)
		}()

		logger.Get().Debug().Str("source", source).Str("destination", destination).Msg("开始复制文件")

		// Validating
		src, err := cleanOp("copy", source)
		if err != nil {
			return false, err
		}
		dst, err := cleanOp("copy", destination)
		if err != nil {
			return false, err
		}

		// Preflight
		logger.Get().Debug().Str("op", "copy").Msg("进入预检阶段")
		if err = e.preflightTransfer("copy", src, dst, overwrite); err != nil {
			return false, err
		}

		// Executing
		logger.Get().Debug().Str("op", "copy").Msg("进入执行阶段")
		if err = e.copyVerify(src, dst); err != nil {
			return false, Classify("copy", src, err)
		}

		state = StateCommitted
		logger.Get().Info().Str("source", src).Str("destination", dst).Msg("文件复制完成")
		return true, nil
	})
}

// Delete 删除文件或目录
// secure 为 true 时先用零字节覆写普通文件的内容再删除；
// 目录始终走普通递归删除，secure 标志对目录无效
func (e *Engine) Delete(path string, secure bool) Result[bool] {
	return Run("delete", path, func() (done bool, err error) {
		state := StateFailed
		defer func() {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			e.record("delete", path, "", state, msg)
		}()

		logger.Get().Debug().Str("path", path).Bool("secure", secure).Msg("开始删除")

		// Validating
		cleaned, err := cleanOp("delete", path)
		if err != nil {
			return false, err
		}

		// Preflight: 删除不存在的路径必须报 not_found，绝不静默成功
		stat, err := e.fs.Stat(cleaned)
		if err != nil {
			return false, Classify("delete", cleaned, err)
		}

		// Executing
		logger.Get().Debug().Str("op", "delete").Msg("进入执行阶段")
		if stat.IsDir() {
			if err = e.fs.RemoveAll(cleaned); err != nil {
				return false, Classify("delete", cleaned, err)
			}
		} else {
			if secure {
				if err = e.secureWipe(cleaned, stat.Size()); err != nil {
					return false, Classify("delete", cleaned, err)
				}
			}
			if err = e.fs.Remove(cleaned); err != nil {
				return false, Classify("delete", cleaned, err)
			}
		}

		state = StateCommitted
		logger.Get().Info().Str("path", cleaned).Bool("secure", secure).Msg("删除完成")
		return true, nil
	})
}

// Rename 在原目录内把文件改名为 newName，返回新的绝对路径
// 目标名已存在时失败，不会覆盖
func (e *Engine) Rename(path, newName string) Result[string] {
	return Run("rename", path, func() (newPath string, err error) {
		state := StateFailed
		defer func() {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			e.record("rename", path, newName, state, msg)
		}()

		logger.Get().Debug().Str("path", path).Str("new_name", newName).Msg("开始重命名")

		// Validating
		cleaned, err := cleanOp("rename", path)
		if err != nil {
			return "", err
		}
		if err = pathcheck.CheckName(newName); err != nil {
			return "", NewError(KindValidation, "rename", newName, err)
		}

		// Preflight
		logger.Get().Debug().Str("op", "rename").Msg("进入预检阶段")
		if _, err = e.fs.Stat(cleaned); err != nil {
			return "", Classify("rename", cleaned, err)
		}
		dst := filepath.Join(filepath.Dir(cleaned), newName)
		exists, err := afero.Exists(e.fs, dst)
		if err != nil {
			return "", Classify("rename", dst, err)
		}
		if exists {
			return "", NewError(KindExists, "rename", dst, fmt.Errorf("目标名已存在"))
		}

		// Executing
		logger.Get().Debug().Str("op", "rename").Msg("进入执行阶段")
		if err = e.fs.Rename(cleaned, dst); err != nil {
			return "", Classify("rename", cleaned, err)
		}

		state = StateCommitted
		logger.Get().Info().Str("path", cleaned).Str("new_path", dst).Msg("重命名完成")
		return dst, nil
	})
}

// preflightTransfer 传输类操作（move/copy）的前置检查
// 源必须是已存在的普通文件；目标已存在且未允许覆盖时失败；
// 目标父目录不存在时创建
func (e *Engine) preflightTransfer(op, src, dst string, overwrite bool) error {
	stat, err := e.fs.Stat(src)
	if err != nil {
		return Classify(op, src, err)
	}
	if !stat.Mode().IsRegular() {
		return NewError(KindValidation, op, src, fmt.Errorf("源路径不是普通文件"))
	}

	exists, err := afero.Exists(e.fs, dst)
	if err != nil {
		return Classify(op, dst, err)
	}
	if exists && !overwrite {
		return NewError(KindExists, op, dst, fmt.Errorf("目标已存在且未允许覆盖"))
	}

	if err := e.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return Classify(op, dst, err)
	}
	return nil
}

// moveFile 执行移动
// 优先原地重命名；失败（常见于跨卷）时退化为复制+校验+删除源。
// 返回的 rolledBack 表示失败后目标侧的残留是否已被成功清理
func (e *Engine) moveFile(src, dst string) (rolledBack bool, err error) {
	if err := e.fs.Rename(src, dst); err == nil {
		return false, nil
	}

	logger.Get().Debug().
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := e.copyVerify(src, dst); err != nil {
		// copyVerify 只在校验通过后才替换目标，无需额外回滚
		return true, Classify("move", src, err)
	}

	if err := e.fs.Remove(src); err != nil {
		// 目标已写入但源删除失败：回滚目标，保留源
		if rbErr := e.fs.Remove(dst); rbErr != nil {
			return false, NewError(KindPartial, "move", src,
				fmt.Errorf("源文件删除失败(%v)且目标回滚失败(%v)，可能需要手动清理 %s", err, rbErr, dst))
		}
		logger.Get().Warn().Str("source", src).Str("destination", dst).Msg("移动中途失败，目标已回滚")
		return true, Classify("move", src, err)
	}

	return false, nil
}

// copyVerify 复制 src 到 dst
// 先写入带随机后缀的临时文件，内容校验通过后改名到目标位置；
// 任何一步失败都会清理临时文件，目标位置不会出现半成品
func (e *Engine) copyVerify(src, dst string) error {
	tmp := dst + ".tmp-" + uuid.NewString()

	if err := e.copyContents(src, tmp); err != nil {
		_ = e.fs.Remove(tmp)
		return err
	}

	srcSum, err := hasher.FastSum(e.fs, src)
	if err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("校验源文件失败: %w", err)
	}
	tmpSum, err := hasher.FastSum(e.fs, tmp)
	if err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("校验目标文件失败: %w", err)
	}
	if srcSum != tmpSum {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("复制校验失败: 源与目标内容不一致")
	}

	if err := e.fs.Rename(tmp, dst); err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("替换目标文件失败: %w", err)
	}
	return nil
}

// copyContents 按块复制文件内容并保留权限位
func (e *Engine) copyContents(src, dst string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	buf := make([]byte, hasher.BufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("写入目标文件失败: %w", err)
	}
	return nil
}

// secureWipe 用零字节按块覆写文件内容并落盘，降低内容被恢复的可能
func (e *Engine) secureWipe(path string, size int64) error {
	file, err := e.fs.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("打开文件进行覆写失败: %w", err)
	}
	defer file.Close()

	buf := make([]byte, hasher.BufferSize)
	var written int64
	for written < size {
		n := int64(len(buf))
		if size-written < n {
			n = size - written
		}
		if _, err := file.Write(buf[:n]); err != nil {
			return fmt.Errorf("覆写文件内容失败: %w", err)
		}
		written += n
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("刷新覆写内容失败: %w", err)
	}
	return nil
}
