package category

import (
	"io"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"
)

// sniffHeaderSize 类型识别需要读取的文件头大小（字节）
const sniffHeaderSize = 261

// SniffExtension 读取文件头识别内容类型，返回带点的小写扩展名
// 读取失败或类型未知时返回空串，不修改文件本身
func SniffExtension(fs afero.Fs, path string) string {
	file, err := fs.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	buf := make([]byte, sniffHeaderSize)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return ""
	}

	kind, err := filetype.Match(buf[:n])
	if err != nil || kind == types.Unknown {
		return ""
	}
	return "." + kind.Extension
}
