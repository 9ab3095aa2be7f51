package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/internal/category"
	"github.com/moyu-x/folder-manager/pkg/logger"
)

// OrganizeOptions 整理操作的选项
type OrganizeOptions struct {
	Copy  bool // 复制而非移动
	Sniff bool // 对无法按扩展名分类的文件尝试按内容识别类型
}

// Organize 按分类整理源目录中的文件
// 在 masterDir 下为每个分类建立子目录，遍历 sourceDir 的整棵子树，
// 把每个普通文件移动（或复制）到其分类目录中。
// 目标名冲突时追加 " (copy N)" 后缀，绝不覆盖已有文件。
// 单个文件失败只记日志并计数，不中断整体流程。
// 返回各分类整理成功的文件数量
func (e *Engine) Organize(sourceDir, masterDir string, opts OrganizeOptions) Result[map[string]int] {
	return Run("organize", sourceDir, func() (counts map[string]int, err error) {
		state := StateFailed
		defer func() {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			e.record("organize", sourceDir, masterDir, state, msg)
		}()

		logger.Get().Info().Str("source", sourceDir).Str("master", masterDir).Msg("开始整理文件")

		// Validating
		src, err := cleanOp("organize", sourceDir)
		if err != nil {
			return nil, err
		}
		master, err := cleanOp("organize", masterDir)
		if err != nil {
			return nil, err
		}

		// Preflight
		stat, err := e.fs.Stat(src)
		if err != nil {
			return nil, Classify("organize", src, err)
		}
		if !stat.IsDir() {
			return nil, NewError(KindValidation, "organize", src, fmt.Errorf("源路径不是目录"))
		}

		table := e.rules.Load()

		// 确保各分类目录（含兜底分类）存在
		for _, name := range append(table.Names(), category.Fallback) {
			if err = e.fs.MkdirAll(filepath.Join(master, name), 0755); err != nil {
				return nil, Classify("organize", master, err)
			}
		}

		// Executing
		counts = make(map[string]int)
		failures := 0

		err = afero.Walk(e.fs, src, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				logger.Get().Debug().Err(walkErr).Str("path", path).Msg("访问路径出错，跳过")
				return nil
			}
			if info.IsDir() {
				// 整理目标位于源目录内部时不要递归处理已整理的文件
				if path != src && strings.HasPrefix(path+string(filepath.Separator), master+string(filepath.Separator)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			cat := table.MatchFilename(info.Name())
			if cat == category.Fallback && opts.Sniff {
				if ext := category.SniffExtension(e.fs, path); ext != "" {
					cat = table.Match(ext)
				}
			}

			dst, nameErr := e.availableName(filepath.Join(master, cat, info.Name()))
			if nameErr != nil {
				failures++
				logger.Get().Warn().Err(nameErr).Str("file", path).Msg("解析目标文件名失败")
				return nil
			}

			var opErr error
			if opts.Copy {
				opErr = e.copyVerify(path, dst)
			} else {
				_, opErr = e.moveFile(path, dst)
			}
			if opErr != nil {
				failures++
				logger.Get().Warn().Err(opErr).Str("file", path).Msg("整理文件失败")
				return nil
			}

			counts[cat]++
			logger.Get().Debug().Str("file", path).Str("destination", dst).Str("category", cat).Msg("文件整理完成")
			return nil
		})
		if err != nil {
			return nil, Classify("organize", src, err)
		}

		if failures > 0 {
			logger.Get().Warn().Int("failures", failures).Msg("部分文件整理失败")
		}

		state = StateCommitted
		logger.Get().Info().Int("failures", failures).Msg("整理完成")
		return counts, nil
	})
}

// availableName 目标名已存在时追加 " (copy N)" 后缀，取最小可用的 N
func (e *Engine) availableName(dst string) (string, error) {
	exists, err := afero.Exists(e.fs, dst)
	if err != nil {
		return "", err
	}
	if !exists {
		return dst, nil
	}

	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(dst, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (copy %d)%s", stem, i, ext)
		exists, err := afero.Exists(e.fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
