package fileops

import (
	"testing"

	"github.com/spf13/afero"
)

func TestOrganize(t *testing.T) {
	fs := afero.NewMemMapFs()
	eng, journal := newTestEngine(t, fs)

	write(t, fs, "/in/a.pdf", "doc one")
	write(t, fs, "/in/photo.JPG", "pic")
	write(t, fs, "/in/sub/notes.txt", "notes")
	write(t, fs, "/in/unknown.xyz", "???")

	res := eng.Organize("/in", "/out", OrganizeOptions{})
	if !res.Success {
		t.Fatalf("Organize 失败: %s", res.ErrorMessage)
	}

	counts := res.Payload
	if counts["documents"] != 2 {
		t.Errorf("documents = %d, 期望 2", counts["documents"])
	}
	if counts["images"] != 1 {
		t.Errorf("images = %d, 期望 1", counts["images"])
	}
	if counts["uncategorized"] != 1 {
		t.Errorf("uncategorized = %d, 期望 1", counts["uncategorized"])
	}

	if !exists(t, fs, "/out/documents/a.pdf") ||
		!exists(t, fs, "/out/documents/notes.txt") ||
		!exists(t, fs, "/out/images/photo.JPG") ||
		!exists(t, fs, "/out/uncategorized/unknown.xyz") {
		t.Error("文件没有被归入正确的分类目录")
	}

	// 默认为移动: 源文件应当消失
	if exists(t, fs, "/in/a.pdf") || exists(t, fs, "/in/sub/notes.txt") {
		t.Error("整理后源文件仍然存在")
	}

	if entry := journal.last(t); entry.op != "organize" || entry.state != StateCommitted {
		t.Errorf("日志记录不正确: %+v", entry)
	}
}

func TestOrganize_CopyMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	eng, _ := newTestEngine(t, fs)
	write(t, fs, "/in/a.pdf", "doc")

	res := eng.Organize("/in", "/out", OrganizeOptions{Copy: true})
	if !res.Success {
		t.Fatalf("Organize 失败: %s", res.ErrorMessage)
	}
	if !exists(t, fs, "/in/a.pdf") {
		t.Error("复制模式下源文件不应被移动")
	}
	if got := read(t, fs, "/out/documents/a.pdf"); got != "doc" {
		t.Errorf("目标内容 = %q", got)
	}
}

func TestOrganize_CollisionRenaming(t *testing.T) {
	fs := afero.NewMemMapFs()
	eng, _ := newTestEngine(t, fs)
	write(t, fs, "/in/a.pdf", "first")
	write(t, fs, "/in/sub/a.pdf", "second")

	res := eng.Organize("/in", "/out", OrganizeOptions{})
	if !res.Success {
		t.Fatalf("Organize 失败: %s", res.ErrorMessage)
	}
	if res.Payload["documents"] != 2 {
		t.Fatalf("documents = %d, 期望 2", res.Payload["documents"])
	}

	// 同名文件追加 " (copy N)" 后缀，两份内容都保留
	if got := read(t, fs, "/out/documents/a.pdf"); got != "first" {
		t.Errorf("第一份内容 = %q", got)
	}
	if got := read(t, fs, "/out/documents/a (copy 1).pdf"); got != "second" {
		t.Errorf("第二份内容 = %q", got)
	}
}

func TestOrganize_SniffUncategorized(t *testing.T) {
	fs := afero.NewMemMapFs()
	eng, _ := newTestEngine(t, fs)

	// 无扩展名，但内容是 PNG
	write(t, fs, "/in/picture", "\x89PNG\r\n\x1a\n")

	res := eng.Organize("/in", "/out", OrganizeOptions{Sniff: true})
	if !res.Success {
		t.Fatalf("Organize 失败: %s", res.ErrorMessage)
	}
	if res.Payload["images"] != 1 {
		t.Errorf("按内容识别应当归入 images: %+v", res.Payload)
	}
	if !exists(t, fs, "/out/images/picture") {
		t.Error("文件没有归入 images 目录")
	}
}

func TestOrganize_PerFileFailureNotFatal(t *testing.T) {
	mem := afero.NewMemMapFs()
	// a.pdf 既无法重命名也无法删除，移动必然失败；b.txt 正常
	fs := &flakyFs{
		Fs: mem,
		failRename: func(oldname, _ string) bool {
			return oldname == "/in/a.pdf"
		},
		failRemove: func(name string) bool {
			return name == "/in/a.pdf"
		},
	}
	eng, journal := newTestEngine(t, fs)
	write(t, fs, "/in/a.pdf", "cannot move")
	write(t, fs, "/in/b.txt", "fine")

	res := eng.Organize("/in", "/out", OrganizeOptions{})
	if !res.Success {
		t.Fatalf("单个文件失败不应中断整理: %s", res.ErrorMessage)
	}
	if res.Payload["documents"] != 1 {
		t.Errorf("documents = %d, 期望 1（失败的文件不计数）", res.Payload["documents"])
	}
	if got := read(t, fs, "/out/documents/b.txt"); got != "fine" {
		t.Errorf("未受影响的文件应当被正常整理: %q", got)
	}
	if exists(t, fs, "/out/documents/a.pdf") {
		t.Error("移动失败的文件不应在目标目录残留")
	}
	if !exists(t, fs, "/in/a.pdf") {
		t.Error("移动失败的文件应当保留在源目录")
	}
	if entry := journal.last(t); entry.state != StateCommitted {
		t.Errorf("日志状态 = %q, 期望 committed", entry.state)
	}
}

func TestOrganize_SourceNotDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	eng, _ := newTestEngine(t, fs)
	write(t, fs, "/in.txt", "not a dir")

	res := eng.Organize("/in.txt", "/out", OrganizeOptions{})
	if res.Success || res.ErrorKind != KindValidation {
		t.Errorf("源不是目录时应当返回 validation, 实际 %+v", res)
	}

	res = eng.Organize("/missing", "/out", OrganizeOptions{})
	if res.Success || res.ErrorKind != KindNotFound {
		t.Errorf("源不存在时应当返回 not_found, 实际 %+v", res)
	}
}
