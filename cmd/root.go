package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/folder-manager/config"
	"github.com/moyu-x/folder-manager/internal/category"
	"github.com/moyu-x/folder-manager/internal/fileops"
	"github.com/moyu-x/folder-manager/internal/journal"
	"github.com/moyu-x/folder-manager/pkg/logger"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folder-manager",
	Short: "一个安全整理本地文件的工具",
	Long: `Folder Manager 是一个命令行工具，用于检查、分类和安全地整理本地文件。

主要功能:
- 查看单个文件的信息和所属分类
- 安全地移动、复制、删除、重命名文件（带预检和回滚）
- 计算文件的内容哈希
- 分析目录树并按扩展名/分类聚合统计
- 按分类整理目录中的文件`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示调试日志")
}

// setup 加载配置、初始化日志并构建文件操作引擎
// 返回的 cleanup 用于关闭操作日志数据库
func setup() (*fileops.Engine, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.File); err != nil {
		return nil, nil, nil, err
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, nil, nil, err
	}
	store := category.NewStore(table)

	var jnl fileops.Journal
	cleanup := func() {}
	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("打开操作日志失败，本次运行不记录操作")
		} else {
			jnl = j
			cleanup = func() { _ = j.Close() }
		}
	}

	return fileops.New(afero.NewOsFs(), store, jnl), cfg, cleanup, nil
}
