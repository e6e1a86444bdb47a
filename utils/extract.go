package utils

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractData 从 domain-list-community 源码包中解出 <top>/data/ 下的规则文件
//
// 返回解出的文件数，一个都没有时返回错误。
func ExtractData(archivePath, destDir string) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("打开压缩包失败: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("解压失败: %w", err)
	}
	defer gz.Close()

	count := 0
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("读取压缩包失败: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		parts := strings.SplitN(hdr.Name, "/", 3)
		if len(parts) != 3 || parts[1] != "data" || !filepath.IsLocal(parts[2]) {
			continue
		}

		if err := writeFile(filepath.Join(destDir, filepath.FromSlash(parts[2])), tr); err != nil {
			return count, err
		}
		count++
	}

	if count == 0 {
		return 0, fmt.Errorf("压缩包中没有 data/ 规则文件")
	}
	return count, nil
}

func writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return out.Close()
}
