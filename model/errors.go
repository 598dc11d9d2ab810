package model

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedFile 表示文件中没有 class/interface/enum 声明，文件被跳过，不视为失败
var ErrUnrecognizedFile = errors.New("no class, interface or enum declaration found")

// EmptyProjectError 表示整个批次没有识别出任何类，是项目级的致命错误
type EmptyProjectError struct {
	Files   int // 输入文件数
	Skipped int // 被跳过的文件数
}

func (e *EmptyProjectError) Error() string {
	return fmt.Sprintf("no classes recognized in %d source files (%d skipped)", e.Files, e.Skipped)
}

// IsEmptyProject 判断 err 链中是否包含 EmptyProjectError
func IsEmptyProject(err error) bool {
	var target *EmptyProjectError
	return errors.As(err, &target)
}
