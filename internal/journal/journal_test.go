package journal

import (
	"path/filepath"
	"testing"
)

func TestJournal_RecordAndRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(dbPath)
	if err != nil {
		t.Fatalf("打开日志数据库失败: %v", err)
	}
	defer j.Close()

	j.Record("move", "/a.txt", "/b.txt", "committed", "")
	j.Record("delete", "/c.txt", "", "failed", "delete 操作失败 (/c.txt): 文件不存在")

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("查询日志失败: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("记录数 = %d, 期望 2", len(entries))
	}

	// 新到旧排序
	if entries[0].Op != "delete" || entries[0].State != "failed" {
		t.Errorf("第一条记录 = %+v", entries[0])
	}
	if entries[0].Error == "" {
		t.Error("失败记录应当携带错误消息")
	}
	if entries[1].Op != "move" || entries[1].State != "committed" {
		t.Errorf("第二条记录 = %+v", entries[1])
	}
	if entries[1].Dest != "/b.txt" {
		t.Errorf("Dest = %q", entries[1].Dest)
	}
	if entries[1].CreatedAt.IsZero() {
		t.Error("CreatedAt 不应为零值")
	}
}

func TestJournal_RecentLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(dbPath)
	if err != nil {
		t.Fatalf("打开日志数据库失败: %v", err)
	}
	defer j.Close()

	for i := 0; i < 5; i++ {
		j.Record("copy", "/src.txt", "/dst.txt", "committed", "")
	}

	entries, err := j.Recent(3)
	if err != nil {
		t.Fatalf("查询日志失败: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("记录数 = %d, 期望 3", len(entries))
	}
}
