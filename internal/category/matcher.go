// Package category 实现基于扩展名的文件分类。
// 规则表由配置加载方构建，构建后不可变；重载配置时整表替换。
package category

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Fallback 未命中任何规则时的兜底分类
const Fallback = "uncategorized"

// maxNameLength 分类名的最大长度
const maxNameLength = 50

// extPattern 规范化后扩展名的合法格式
var extPattern = regexp.MustCompile(`^\.[a-z0-9]+$`)

// RuleConfig 配置加载方传入的单条规则
type RuleConfig struct {
	Name       string
	Extensions []string
	Priority   int
}

// rule 内部规则表示，扩展名已规范化去重
type rule struct {
	name       string
	extensions map[string]struct{}
	priority   int
}

// Table 不可变的分类规则表
// 规则按注册顺序保存：优先级数值小者优先，数值相同时先注册的规则胜出，
// 保证同一张表在多次运行之间给出完全一致的分类结果
type Table struct {
	rules []rule
}

// NewTable 校验并构建规则表
// 扩展名统一规范化为小写加单个前导点，同一规则内去重
func NewTable(configs []RuleConfig) (*Table, error) {
	rules := make([]rule, 0, len(configs))
	for _, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" || len(name) > maxNameLength {
			return nil, fmt.Errorf("分类名非法: %q（长度须为 1-%d）", cfg.Name, maxNameLength)
		}

		extensions := make(map[string]struct{}, len(cfg.Extensions))
		for _, raw := range cfg.Extensions {
			ext := NormalizeExt(raw)
			if ext == "" || !extPattern.MatchString(ext) {
				return nil, fmt.Errorf("分类 %q 包含非法扩展名: %q", name, raw)
			}
			extensions[ext] = struct{}{}
		}

		rules = append(rules, rule{
			name:       name,
			extensions: extensions,
			priority:   cfg.Priority,
		})
	}
	return &Table{rules: rules}, nil
}

// NormalizeExt 规范化扩展名：去空白、转小写、保证单个前导点
// 空输入或只有点的输入返回空串
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// Match 根据扩展名解析分类
// 命中多条规则时取优先级数值最小者；数值相同时先注册的规则胜出；
// 无规则命中时返回兜底分类
func (t *Table) Match(ext string) string {
	ext = NormalizeExt(ext)
	if ext == "" {
		return Fallback
	}

	best := ""
	bestPriority := 0
	for _, r := range t.rules {
		if _, ok := r.extensions[ext]; !ok {
			continue
		}
		// 严格小于才替换，保证同优先级时保留先注册的规则
		if best == "" || r.priority < bestPriority {
			best = r.name
			bestPriority = r.priority
		}
	}

	if best == "" {
		return Fallback
	}
	return best
}

// MatchFilename 从文件名提取扩展名并解析分类
func (t *Table) MatchFilename(name string) string {
	return t.Match(filepath.Ext(name))
}

// Names 按注册顺序返回去重后的分类名列表
func (t *Table) Names() []string {
	seen := make(map[string]struct{}, len(t.rules))
	names := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		if _, ok := seen[r.name]; ok {
			continue
		}
		seen[r.name] = struct{}{}
		names = append(names, r.name)
	}
	return names
}

// Len 返回规则数量
func (t *Table) Len() int {
	return len(t.rules)
}
