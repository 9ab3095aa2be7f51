package hasher

import (
	"testing"

	"github.com/spf13/afero"
)

// "abc" 的标准测试向量
var abcDigests = map[string]string{
	"md5":    "900150983cd24fb0d6963f7d28e17f72",
	"sha1":   "a9993e364706816aba3e25717850c26c9cd0d89d",
	"sha256": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	"sha512": "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
		"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
}

func TestSum_KnownVectors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/abc.txt", "abc")

	for algorithm, want := range abcDigests {
		got, err := Sum(fs, "/data/abc.txt", algorithm)
		if err != nil {
			t.Fatalf("Sum(%s) 返回错误: %v", algorithm, err)
		}
		if got != want {
			t.Errorf("Sum(%s) = %s, 期望 %s", algorithm, got, want)
		}
		if len(got) != HexLength(algorithm) {
			t.Errorf("%s 摘要长度 = %d, 期望 %d", algorithm, len(got), HexLength(algorithm))
		}
	}
}

func TestSum_SameContentDifferentPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a/one.bin", "identical content")
	writeFile(t, fs, "/b/two.dat", "identical content")

	first, err := Sum(fs, "/a/one.bin", "sha256")
	if err != nil {
		t.Fatalf("计算哈希失败: %v", err)
	}
	second, err := Sum(fs, "/b/two.dat", "sha256")
	if err != nil {
		t.Fatalf("计算哈希失败: %v", err)
	}
	if first != second {
		t.Errorf("相同内容的摘要应当一致: %s != %s", first, second)
	}
}

func TestSum_UnsupportedAlgorithm(t *testing.T) {
	fs := afero.NewMemMapFs()

	// 文件并不存在：算法校验必须发生在任何 I/O 之前
	if _, err := Sum(fs, "/no/such/file", "crc32"); err == nil {
		t.Fatal("不支持的算法应当返回错误")
	}
	if Supported("crc32") {
		t.Error("Supported(crc32) 应当为 false")
	}
	for _, algorithm := range []string{"md5", "sha1", "sha256", "sha512", "SHA256"} {
		if !Supported(algorithm) {
			t.Errorf("Supported(%s) 应当为 true", algorithm)
		}
	}
}

func TestSum_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Sum(fs, "/missing.txt", "sha256"); err == nil {
		t.Fatal("文件不存在时应当返回错误")
	}
}

func TestFastSum_Deterministic(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a.bin", "hello world")
	writeFile(t, fs, "/b.bin", "hello world")
	writeFile(t, fs, "/c.bin", "hello mars")

	a, err := FastSum(fs, "/a.bin")
	if err != nil {
		t.Fatalf("FastSum 返回错误: %v", err)
	}
	b, err := FastSum(fs, "/b.bin")
	if err != nil {
		t.Fatalf("FastSum 返回错误: %v", err)
	}
	c, err := FastSum(fs, "/c.bin")
	if err != nil {
		t.Fatalf("FastSum 返回错误: %v", err)
	}

	if a != b {
		t.Errorf("相同内容的快速摘要应当一致: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("不同内容的快速摘要不应相同: %s", a)
	}
}

func TestPool(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/p/1.bin", "content one")
	writeFile(t, fs, "/p/2.bin", "content one")
	writeFile(t, fs, "/p/3.bin", "content three")

	pool := NewPool(fs, 2)
	if err := pool.Start(); err != nil {
		t.Fatalf("启动哈希计算池失败: %v", err)
	}

	collected := make(map[string]string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range pool.Results() {
			if res.Err != nil {
				t.Errorf("哈希任务失败 %s: %v", res.Path, res.Err)
				continue
			}
			collected[res.Path] = res.Digest
		}
	}()

	for _, path := range []string{"/p/1.bin", "/p/2.bin", "/p/3.bin"} {
		pool.Add(Task{Path: path})
	}
	pool.Close()
	<-done

	if len(collected) != 3 {
		t.Fatalf("期望 3 个结果，实际 %d", len(collected))
	}
	if collected["/p/1.bin"] != collected["/p/2.bin"] {
		t.Error("相同内容的文件摘要应当一致")
	}
	if collected["/p/1.bin"] == collected["/p/3.bin"] {
		t.Error("不同内容的文件摘要不应相同")
	}
}
