// Package analyzer 实现目录树的遍历与统计聚合。
// 单个条目的读取失败只计入跳过数，不会中断整次分析。
package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/internal/category"
	"github.com/moyu-x/folder-manager/internal/fileops"
	"github.com/moyu-x/folder-manager/pkg/hasher"
	"github.com/moyu-x/folder-manager/pkg/logger"
	"github.com/moyu-x/folder-manager/pkg/pathcheck"
)

// DefaultWorkers 重复分组哈希计算的默认并发数
const DefaultWorkers = 4

// Options 目录分析选项
type Options struct {
	IncludeHidden bool     // 是否统计以点开头的隐藏条目
	Excluded      []string // 按名称整体排除的条目（如 .git、node_modules）
	Hashes        bool     // 计算快速哈希并输出内容一致的文件分组
	DetectContent bool     // 无法按扩展名分类时尝试按内容识别
	Workers       int      // 哈希计算的并发数，<=0 时使用默认值
}

// CategoryStat 单个分类的聚合信息
type CategoryStat struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}

// Stats 一次目录分析的聚合结果
// 构建完成后不再修改，也不做持久化
type Stats struct {
	TotalSize  int64                   `json:"total_size"`
	FileCount  int                     `json:"file_count"`
	DirCount   int                     `json:"dir_count"` // 不含根目录
	Extensions map[string]int          `json:"extensions"`
	ByCategory map[string]CategoryStat `json:"by_category"`
	// Skipped 因权限等原因未能统计的条目数
	Skipped int `json:"skipped"`
	// DuplicateGroups 内容完全一致（快速哈希相同）的文件分组，
	// 仅在请求哈希分析时填充；组内与组间都按路径排序，结果可复现
	DuplicateGroups [][]string `json:"duplicate_groups,omitempty"`
}

// Analyzer 目录分析器
type Analyzer struct {
	fs    afero.Fs
	rules *category.Store
}

// New 创建目录分析器
func New(fs afero.Fs, rules *category.Store) *Analyzer {
	return &Analyzer{fs: fs, rules: rules}
}

// Analyze 遍历 root 下的整棵子树并聚合统计信息
// 根路径不存在或不可访问时整体失败；其余条目的失败只计入 Skipped
func (a *Analyzer) Analyze(root string, opts Options) fileops.Result[*Stats] {
	return fileops.Run("analyze", root, func() (*Stats, error) {
		cleaned, err := cleanRoot(root)
		if err != nil {
			return nil, err
		}

		stat, err := a.fs.Stat(cleaned)
		if err != nil {
			return nil, fileops.Classify("analyze", cleaned, err)
		}
		if !stat.IsDir() {
			return nil, fileops.NewError(fileops.KindValidation, "analyze", cleaned,
				fmt.Errorf("路径不是目录"))
		}

		logger.Get().Debug().Str("root", cleaned).Msg("开始分析目录")

		table := a.rules.Load()
		excluded := make(map[string]struct{}, len(opts.Excluded))
		for _, name := range opts.Excluded {
			excluded[name] = struct{}{}
		}

		stats := &Stats{
			Extensions: make(map[string]int),
			ByCategory: make(map[string]CategoryStat),
		}
		var hashTargets []hasher.Task

		err = afero.Walk(a.fs, cleaned, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				if path == cleaned {
					// 根目录本身不可访问，中断整次分析
					return walkErr
				}
				stats.Skipped++
				logger.Get().Debug().Err(walkErr).Str("path", path).Msg("访问条目出错，跳过")
				return nil
			}

			name := info.Name()
			if path != cleaned {
				if _, skip := excluded[name]; skip {
					if info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
					if info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}

			if info.IsDir() {
				if path != cleaned {
					stats.DirCount++
				}
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			stats.FileCount++
			stats.TotalSize += info.Size()

			ext := category.NormalizeExt(filepath.Ext(name))
			stats.Extensions[ext]++

			cat := table.Match(ext)
			if cat == category.Fallback && opts.DetectContent {
				if sniffed := category.SniffExtension(a.fs, path); sniffed != "" {
					cat = table.Match(sniffed)
				}
			}
			cs := stats.ByCategory[cat]
			cs.Count++
			cs.TotalSize += info.Size()
			stats.ByCategory[cat] = cs

			if opts.Hashes {
				hashTargets = append(hashTargets, hasher.Task{Path: path, Size: info.Size()})
			}
			return nil
		})
		if err != nil {
			return nil, fileops.Classify("analyze", cleaned, err)
		}

		if opts.Hashes && len(hashTargets) > 0 {
			stats.DuplicateGroups = a.duplicateGroups(hashTargets, opts.Workers)
		}

		logger.Get().Info().
			Str("root", cleaned).
			Int("files", stats.FileCount).
			Int("dirs", stats.DirCount).
			Int("skipped", stats.Skipped).
			Msg("目录分析完成")

		return stats, nil
	})
}

// cleanRoot 分析入口的路径校验
func cleanRoot(root string) (string, error) {
	cleaned, err := pathcheck.CleanPath(root)
	if err != nil {
		return "", fileops.NewError(fileops.KindValidation, "analyze", root, err)
	}
	return cleaned, nil
}

// duplicateGroups 并发计算快速哈希并聚合出内容一致的文件分组
// 哈希计算失败的文件只记日志，不计入任何分组
func (a *Analyzer) duplicateGroups(targets []hasher.Task, workers int) [][]string {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	pool := hasher.NewPool(a.fs, workers)
	if err := pool.Start(); err != nil {
		logger.Get().Warn().Err(err).Msg("启动哈希计算池失败，跳过重复分组")
		return nil
	}

	byDigest := make(map[string][]string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range pool.Results() {
			if res.Err != nil {
				logger.Get().Debug().Err(res.Err).Str("file", res.Path).Msg("哈希计算失败，跳过")
				continue
			}
			byDigest[res.Digest] = append(byDigest[res.Digest], res.Path)
		}
	}()

	for _, task := range targets {
		pool.Add(task)
	}
	pool.Close()
	<-done

	var groups [][]string
	for _, paths := range byDigest {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, paths)
	}
	// 结果排序与工作协程的完成顺序无关，保证可复现
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}

// String 以可读的形式汇总统计结果
func (s *Stats) String() string {
	var buf bytes.Buffer

	buf.WriteString("========== 目录统计 ==========\n")
	buf.WriteString(fmt.Sprintf("文件数: %d\n", s.FileCount))
	buf.WriteString(fmt.Sprintf("目录数: %d\n", s.DirCount))
	buf.WriteString(fmt.Sprintf("总大小: %d 字节\n", s.TotalSize))
	if s.Skipped > 0 {
		buf.WriteString(fmt.Sprintf("跳过条目: %d\n", s.Skipped))
	}

	if len(s.ByCategory) > 0 {
		buf.WriteString("按分类:\n")
		names := make([]string, 0, len(s.ByCategory))
		for name := range s.ByCategory {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cs := s.ByCategory[name]
			buf.WriteString(fmt.Sprintf("  %s: %d 个文件, %d 字节\n", name, cs.Count, cs.TotalSize))
		}
	}

	if len(s.DuplicateGroups) > 0 {
		buf.WriteString(fmt.Sprintf("重复分组: %d 组\n", len(s.DuplicateGroups)))
	}

	buf.WriteString("============================")
	return buf.String()
}
