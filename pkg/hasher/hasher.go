// Package hasher 提供文件内容哈希计算。
// 标准摘要算法（md5/sha1/sha256/sha512）用于对外的哈希查询，
// xxHash 用于内部的复制校验与重复文件分组。
package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/pkg/logger"
)

// BufferSize 流式读取的块大小
// 所有哈希计算按块读取，避免大文件一次性载入内存
const BufferSize = 64 * 1024

// hexLengths 各算法摘要的十六进制长度，作为计算结果的后置校验
var hexLengths = map[string]int{
	"md5":    32,
	"sha1":   40,
	"sha256": 64,
	"sha512": 128,
}

// Supported 判断算法名是否受支持（不区分大小写）
func Supported(algorithm string) bool {
	_, ok := hexLengths[strings.ToLower(algorithm)]
	return ok
}

// HexLength 返回算法摘要的十六进制长度，未知算法返回 0
func HexLength(algorithm string) int {
	return hexLengths[strings.ToLower(algorithm)]
}

func newDigest(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("不支持的哈希算法: %q", algorithm)
	}
}

// Sum 以流式方式计算文件的摘要，返回小写十六进制字符串
// 算法名非法时在任何 I/O 之前返回错误
func Sum(fs afero.Fs, path, algorithm string) (string, error) {
	h, err := newDigest(algorithm)
	if err != nil {
		return "", err
	}

	file, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	buf := make([]byte, BufferSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", fmt.Errorf("计算哈希失败: %w", err)
	}

	digest := hex.EncodeToString(h.Sum(nil))
	if want := hexLengths[strings.ToLower(algorithm)]; len(digest) != want {
		return "", fmt.Errorf("%s 摘要长度异常: 期望 %d，实际 %d", algorithm, want, len(digest))
	}

	logger.Get().Debug().Str("file", path).Str("algorithm", algorithm).Msg("哈希计算完成")
	return digest, nil
}

// FastSum 计算文件的 xxHash 摘要
// 速度远快于标准摘要算法，用于复制后的内容校验和重复文件分组
func FastSum(fs afero.Fs, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	h := xxhash.New()
	buf := make([]byte, BufferSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", fmt.Errorf("计算哈希失败: %w", err)
	}

	return strconv.FormatUint(h.Sum64(), 16), nil
}
