package config

import "testing"

func TestDefaultCategoriesBuildTable(t *testing.T) {
	cfg := &Config{Categories: DefaultCategories()}

	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("内置分类规则构建规则表失败: %v", err)
	}

	tests := map[string]string{
		".go":   "code",
		".pdf":  "documents",
		".JPG":  "images",
		".mp3":  "music",
		".mkv":  "videos",
		".zip":  "archives",
		".dmg":  "applications",
		".yaml": "development",
		".wat":  "uncategorized",
	}
	for ext, want := range tests {
		if got := table.Match(ext); got != want {
			t.Errorf("Match(%s) = %q, 期望 %q", ext, got, want)
		}
	}
}

func TestTable_InvalidRule(t *testing.T) {
	cfg := &Config{Categories: []CategoryRule{
		{Name: "", Extensions: []string{".a"}, Priority: 1},
	}}
	if _, err := cfg.Table(); err == nil {
		t.Error("非法规则应当返回错误")
	}
}
