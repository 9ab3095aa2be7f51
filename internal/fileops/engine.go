// Package fileops 实现安全的文件操作引擎。
// 每个操作都经历 Validating -> Preflight -> Executing ->
// Committed | RolledBack | Failed 的状态流转，
// 并以统一的结果信封返回给调用方。
package fileops

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/internal/category"
	"github.com/moyu-x/folder-manager/pkg/hasher"
	"github.com/moyu-x/folder-manager/pkg/logger"
	"github.com/moyu-x/folder-manager/pkg/pathcheck"
)

// DefaultAlgorithm 哈希查询的默认算法
const DefaultAlgorithm = "sha256"

// Engine 文件操作引擎
// 自身不持有可变状态，规则表通过 Store 原子读取，
// 因此多个操作并发调用同一个引擎是安全的
type Engine struct {
	fs      afero.Fs
	rules   *category.Store
	journal Journal
}

// New 创建文件操作引擎
// journal 为 nil 时不记录操作日志
func New(fs afero.Fs, rules *category.Store, journal Journal) *Engine {
	return &Engine{fs: fs, rules: rules, journal: journal}
}

// record 写入操作日志，journal 未配置时忽略
func (e *Engine) record(op, source, dest, state, errMsg string) {
	if e.journal == nil {
		return
	}
	e.journal.Record(op, source, dest, state, errMsg)
}

// cleanOp 路径校验（Validating 阶段），失败返回 validation 错误
func cleanOp(op, raw string) (string, error) {
	cleaned, err := pathcheck.CleanPath(raw)
	if err != nil {
		return "", NewError(KindValidation, op, raw, err)
	}
	return cleaned, nil
}

// Info 获取单个文件或目录的描述信息
// 普通文件会按当前规则表附带分类
func (e *Engine) Info(path string) Result[FileInfo] {
	return Run("info", path, func() (FileInfo, error) {
		cleaned, err := cleanOp("info", path)
		if err != nil {
			return FileInfo{}, err
		}

		stat, err := e.fs.Stat(cleaned)
		if err != nil {
			return FileInfo{}, Classify("info", cleaned, err)
		}

		info := FileInfo{
			Name:     stat.Name(),
			Path:     cleaned,
			Size:     stat.Size(),
			Modified: stat.ModTime().UTC(),
			IsDir:    stat.IsDir(),
			IsFile:   stat.Mode().IsRegular(),
		}
		if info.IsFile {
			info.Category = e.rules.Load().MatchFilename(info.Name)
		}
		return info, nil
	})
}

// Hash 计算文件的内容哈希，algorithm 为空时使用 sha256
// 算法名非法时在任何 I/O 之前失败
func (e *Engine) Hash(path, algorithm string) Result[FileHash] {
	return Run("hash", path, func() (FileHash, error) {
		if algorithm == "" {
			algorithm = DefaultAlgorithm
		}
		algorithm = strings.ToLower(algorithm)
		if !hasher.Supported(algorithm) {
			return FileHash{}, NewError(KindValidation, "hash", path,
				fmt.Errorf("不支持的哈希算法: %q", algorithm))
		}

		cleaned, err := cleanOp("hash", path)
		if err != nil {
			return FileHash{}, err
		}

		stat, err := e.fs.Stat(cleaned)
		if err != nil {
			return FileHash{}, Classify("hash", cleaned, err)
		}
		if !stat.Mode().IsRegular() {
			return FileHash{}, NewError(KindNotFound, "hash", cleaned,
				fmt.Errorf("路径不是普通文件"))
		}

		digest, err := hasher.Sum(e.fs, cleaned, algorithm)
		if err != nil {
			return FileHash{}, Classify("hash", cleaned, err)
		}

		logger.Get().Debug().
			Str("file", cleaned).
			Str("algorithm", algorithm).
			Str("hash", digest).
			Msg("哈希查询完成")

		return FileHash{
			Algorithm: algorithm,
			HashValue: digest,
			FilePath:  cleaned,
		}, nil
	})
}

// Fs 返回引擎使用的文件系统接口
func (e *Engine) Fs() afero.Fs {
	return e.fs
}

// Rules 返回引擎使用的规则表容器
func (e *Engine) Rules() *category.Store {
	return e.rules
}
