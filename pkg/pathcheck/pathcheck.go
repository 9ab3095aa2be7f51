// Package pathcheck 提供路径与文件名的校验和规范化，
// 是所有文件操作共用的叶子依赖。
// 只做字符串层面的检查，不访问磁盘，也不解析符号链接。
package pathcheck

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxNameLength 文件名的最大长度
const MaxNameLength = 255

// reservedChars 文件名中不允许出现的保留字符
const reservedChars = `<>:"|?*`

// CleanPath 校验并规范化一个绝对路径
// 规则:
//   - 不能为空或仅含空白字符
//   - 必须是绝对路径
//   - 任何位置出现 ".." 段都会被拒绝（不做解析消除，直接视为非法输入）
//   - 名称部分须通过 CheckName 的文件名规则
//
// 返回规范化（清理冗余分隔符和 "." 段）后的路径
func CleanPath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	if !filepath.IsAbs(raw) {
		return "", fmt.Errorf("路径必须是绝对路径: %q", raw)
	}
	for _, seg := range strings.Split(raw, string(filepath.Separator)) {
		if seg == ".." {
			return "", fmt.Errorf("路径包含上级目录引用: %q", raw)
		}
	}

	cleaned := filepath.Clean(raw)

	// 根路径没有名称部分，无需检查文件名规则
	if cleaned != string(filepath.Separator) {
		if err := CheckName(filepath.Base(cleaned)); err != nil {
			return "", err
		}
	}

	return cleaned, nil
}

// CheckName 校验单个文件名（不含任何路径部分）
// 规则: 非空、无首尾空白、长度 1-255、不含路径分隔符、不含保留字符 <>:"|?*
func CheckName(name string) error {
	if name == "" || strings.TrimSpace(name) != name {
		return fmt.Errorf("文件名不能为空或带有首尾空白: %q", name)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("文件名过长: %d 字符，上限 %d", len(name), MaxNameLength)
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return fmt.Errorf("文件名不能包含路径分隔符: %q", name)
	}
	if strings.ContainsAny(name, reservedChars) {
		return fmt.Errorf("文件名包含保留字符 %s: %q", reservedChars, name)
	}
	return nil
}
