package category

import (
	"testing"

	"github.com/spf13/afero"
)

func mustTable(t *testing.T, configs []RuleConfig) *Table {
	t.Helper()
	table, err := NewTable(configs)
	if err != nil {
		t.Fatalf("构建规则表失败: %v", err)
	}
	return table
}

func TestMatch_Basic(t *testing.T) {
	table := mustTable(t, []RuleConfig{
		{Name: "documents", Extensions: []string{".pdf", ".txt"}, Priority: 1},
		{Name: "images", Extensions: []string{".jpg", ".png"}, Priority: 2},
	})

	if got := table.Match(".pdf"); got != "documents" {
		t.Errorf("Match(.pdf) = %q, 期望 documents", got)
	}
	if got := table.Match(".png"); got != "images" {
		t.Errorf("Match(.png) = %q, 期望 images", got)
	}
	if got := table.Match(".xyz"); got != Fallback {
		t.Errorf("未命中规则时应当返回 %q, 实际 %q", Fallback, got)
	}
	if got := table.Match(""); got != Fallback {
		t.Errorf("空扩展名应当返回 %q, 实际 %q", Fallback, got)
	}
}

func TestMatch_Normalization(t *testing.T) {
	table := mustTable(t, []RuleConfig{
		{Name: "documents", Extensions: []string{"PDF"}, Priority: 1},
	})

	// 大小写与前导点都应被规范化
	for _, ext := range []string{".pdf", "pdf", ".PDF", "PDF", "..pdf"} {
		if got := table.Match(ext); got != "documents" {
			t.Errorf("Match(%q) = %q, 期望 documents", ext, got)
		}
	}
}

func TestMatch_PriorityWins(t *testing.T) {
	table := mustTable(t, []RuleConfig{
		{Name: "development", Extensions: []string{".json"}, Priority: 8},
		{Name: "code", Extensions: []string{".json"}, Priority: 1},
	})

	if got := table.Match(".json"); got != "code" {
		t.Errorf("优先级数值更小的规则应当胜出, 实际 %q", got)
	}
}

func TestMatch_EqualPriorityFirstRegisteredWins(t *testing.T) {
	configs := []RuleConfig{
		{Name: "alpha", Extensions: []string{".dat"}, Priority: 3},
		{Name: "beta", Extensions: []string{".dat"}, Priority: 3},
	}

	// 对同一份配置反复建表，结果必须稳定
	for i := 0; i < 100; i++ {
		table := mustTable(t, configs)
		if got := table.Match(".dat"); got != "alpha" {
			t.Fatalf("第 %d 次建表: 同优先级应当先注册者胜出, 实际 %q", i, got)
		}
	}
}

func TestMatchFilename(t *testing.T) {
	table := mustTable(t, []RuleConfig{
		{Name: "documents", Extensions: []string{".pdf"}, Priority: 1},
	})

	if got := table.MatchFilename("report.PDF"); got != "documents" {
		t.Errorf("MatchFilename(report.PDF) = %q, 期望 documents", got)
	}
	if got := table.MatchFilename("noext"); got != Fallback {
		t.Errorf("无扩展名文件应当返回 %q, 实际 %q", Fallback, got)
	}
}

func TestNewTable_Invalid(t *testing.T) {
	if _, err := NewTable([]RuleConfig{{Name: "", Extensions: []string{".a"}, Priority: 1}}); err == nil {
		t.Error("空分类名应当返回错误")
	}
	if _, err := NewTable([]RuleConfig{{Name: "x", Extensions: []string{"bad ext"}, Priority: 1}}); err == nil {
		t.Error("非法扩展名格式应当返回错误")
	}
	if _, err := NewTable([]RuleConfig{{Name: "x", Extensions: []string{"."}, Priority: 1}}); err == nil {
		t.Error("只有点的扩展名应当返回错误")
	}
}

func TestNames(t *testing.T) {
	table := mustTable(t, []RuleConfig{
		{Name: "code", Extensions: []string{".go"}, Priority: 1},
		{Name: "documents", Extensions: []string{".pdf"}, Priority: 2},
		{Name: "code", Extensions: []string{".rs"}, Priority: 3},
	})

	names := table.Names()
	want := []string{"code", "documents"}
	if len(names) != len(want) {
		t.Fatalf("Names() 返回 %v, 期望 %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, 期望 %q", i, names[i], want[i])
		}
	}
}

func TestStore_Swap(t *testing.T) {
	first := mustTable(t, []RuleConfig{
		{Name: "documents", Extensions: []string{".pdf"}, Priority: 1},
	})
	second := mustTable(t, []RuleConfig{
		{Name: "archive", Extensions: []string{".pdf"}, Priority: 1},
	})

	store := NewStore(first)
	if got := store.Load().Match(".pdf"); got != "documents" {
		t.Fatalf("替换前 Match(.pdf) = %q", got)
	}

	// 旧表引用在替换后仍然可用且结果不变
	old := store.Load()
	store.Swap(second)

	if got := store.Load().Match(".pdf"); got != "archive" {
		t.Errorf("替换后 Match(.pdf) = %q, 期望 archive", got)
	}
	if got := old.Match(".pdf"); got != "documents" {
		t.Errorf("旧表结果被修改: %q", got)
	}
}

func TestSniffExtension(t *testing.T) {
	fs := afero.NewMemMapFs()

	// PNG 魔数
	if err := afero.WriteFile(fs, "/pic", []byte("\x89PNG\r\n\x1a\n"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := afero.WriteFile(fs, "/plain", []byte("just some text"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	if got := SniffExtension(fs, "/pic"); got != ".png" {
		t.Errorf("SniffExtension(/pic) = %q, 期望 .png", got)
	}
	if got := SniffExtension(fs, "/plain"); got != "" {
		t.Errorf("无法识别的内容应当返回空串, 实际 %q", got)
	}
	if got := SniffExtension(fs, "/missing"); got != "" {
		t.Errorf("文件不存在时应当返回空串, 实际 %q", got)
	}
}
