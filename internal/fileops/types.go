package fileops

import "time"

// FileInfo 单个文件系统条目的描述信息
// 每次查询都重新构建，构建后不再修改
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"` // UTC
	IsDir    bool      `json:"is_dir"`
	IsFile   bool      `json:"is_file"`
	Category string    `json:"category,omitempty"` // 仅普通文件有分类
}

// FileHash 哈希计算结果
type FileHash struct {
	Algorithm string `json:"algorithm"`
	HashValue string `json:"hash_value"`
	FilePath  string `json:"file_path"`
}

// 操作的终态，写入操作日志
const (
	StateCommitted  = "committed"
	StateRolledBack = "rolled_back"
	StateFailed     = "failed"
)

// Journal 操作日志接口，由 internal/journal 实现
// nil 表示不记录；记录失败由实现方自行消化，不影响操作结果
type Journal interface {
	Record(op, source, dest, state, errMsg string)
}
