// Package config 负责加载运行配置。
// 分类规则在这里只是数据，核心引擎通过 category.Store 以只读方式使用；
// 重载配置时构建新的规则表整表替换。
package config

import (
	"github.com/spf13/viper"

	"github.com/moyu-x/folder-manager/internal/category"
)

// CategoryRule 配置中的单条分类规则
type CategoryRule struct {
	Name       string   `mapstructure:"name"`
	Extensions []string `mapstructure:"extensions"`
	Priority   int      `mapstructure:"priority"`
}

// Config 运行配置
type Config struct {
	Categories []CategoryRule `mapstructure:"categories"`
	Logging    struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
	Journal struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"journal"`
	Analyzer struct {
		IncludeHidden bool     `mapstructure:"include_hidden"`
		Excluded      []string `mapstructure:"excluded"`
	} `mapstructure:"analyzer"`
	Performance struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"performance"`
}

// Load 从配置文件加载配置，找不到配置文件时使用内置默认值
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.folder-manager")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/folder-manager")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("journal.enabled", true)
	viper.SetDefault("journal.path", "~/.folder-manager/journal.db")
	viper.SetDefault("analyzer.include_hidden", false)
	viper.SetDefault("analyzer.excluded", defaultExcluded())
	viper.SetDefault("performance.workers", 4)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}

	return &cfg, nil
}

// Table 按注册顺序构建分类规则表
func (c *Config) Table() (*category.Table, error) {
	rules := make([]category.RuleConfig, 0, len(c.Categories))
	for _, r := range c.Categories {
		rules = append(rules, category.RuleConfig{
			Name:       r.Name,
			Extensions: r.Extensions,
			Priority:   r.Priority,
		})
	}
	return category.NewTable(rules)
}

// DefaultCategories 内置分类规则
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Name: "code", Priority: 1, Extensions: []string{
			".go", ".py", ".js", ".java", ".cpp", ".h", ".html", ".css", ".php",
		}},
		{Name: "documents", Priority: 2, Extensions: []string{
			".pdf", ".doc", ".docx", ".txt", ".md", ".xlsx", ".csv",
		}},
		{Name: "images", Priority: 3, Extensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".raw",
		}},
		{Name: "music", Priority: 4, Extensions: []string{
			".mp3", ".wav", ".flac", ".m4a", ".aac", ".ogg",
		}},
		{Name: "videos", Priority: 5, Extensions: []string{
			".mp4", ".avi", ".mov", ".wmv", ".flv", ".mkv",
		}},
		{Name: "archives", Priority: 6, Extensions: []string{
			".zip", ".rar", ".7z", ".tar", ".gz", ".bz2",
		}},
		{Name: "applications", Priority: 7, Extensions: []string{
			".app", ".exe", ".dmg", ".pkg",
		}},
		{Name: "development", Priority: 8, Extensions: []string{
			".env", ".json", ".yaml", ".xml",
		}},
	}
}

func defaultExcluded() []string {
	return []string{".git", "__pycache__", "node_modules", ".DS_Store", ".Trash"}
}
