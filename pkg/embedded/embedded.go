// Package embedded 提供嵌入数据文件的统一访问接口
//
// embed.FS 变量声明在 data 包中（与数据文件同目录）。
// 本包提供包装函数，让其他包可以用 "data/..." 路径访问嵌入的关卡和物理配置，
// 测试中可以换成 fstest.MapFS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用。
// data 以数据目录为根（通常是 data.FS），调用方使用的 "data/" 前缀会被去掉。
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// pathPrefix 是调用方使用的路径前缀
const pathPrefix = "data/"

// normalize 检查 "data/" 前缀并转换为 dataFS 内的相对路径
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, pathPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return strings.TrimPrefix(path, pathPrefix), nil
}

// Open 打开嵌入的文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入的文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入的文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(dataFS, p)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = pathPrefix + m
	}
	return matches, nil
}
