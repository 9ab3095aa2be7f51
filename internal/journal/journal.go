// Package journal 把每次文件变更操作及其终态记录到 sqlite 数据库，
// 供事后审计。写入失败只记日志，绝不影响操作本身的结果。
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/folder-manager/pkg/logger"
)

// Entry 一次文件变更操作的落库记录
type Entry struct {
	ID        int64     `gorm:"primaryKey"`
	Op        string    `gorm:"index;not null"`
	Source    string    `gorm:"not null"`
	Dest      string
	State     string    `gorm:"index;not null"`
	Error     string
	CreatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "operation_journal"
}

// Journal 基于 sqlite 的操作日志
type Journal struct {
	db *gorm.DB
}

// Open 打开（或创建）日志数据库
func Open(dbPath string) (*Journal, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("扩展数据库路径失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("打开日志数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("创建日志表失败: %w", err)
	}

	logger.Get().Debug().Str("path", expandedPath).Msg("操作日志数据库就绪")
	return &Journal{db: db}, nil
}

// Record 记录一次操作及其终态
// 写入失败以 warn 级别记日志后忽略，不向调用方传播
func (j *Journal) Record(op, source, dest, state, errMsg string) {
	entry := Entry{
		Op:        op,
		Source:    source,
		Dest:      dest,
		State:     state,
		Error:     errMsg,
		CreatedAt: time.Now().UTC(),
	}
	if err := j.db.Create(&entry).Error; err != nil {
		logger.Get().Warn().Err(err).Str("op", op).Str("source", source).Msg("写入操作日志失败")
	}
}

// Recent 返回最近 n 条操作记录（新到旧）
func (j *Journal) Recent(n int) ([]Entry, error) {
	var entries []Entry
	if err := j.db.Order("id DESC").Limit(n).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("查询操作日志失败: %w", err)
	}
	return entries, nil
}

// Close 关闭数据库连接
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// expandPath 展开前导 ~ 为用户主目录
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
