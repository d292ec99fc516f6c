package eventlog

import "fmt"

// NotFoundError 表示日志文件不存在。
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Log file %s does not exist", e.Path)
}

// FormatError 表示某一行不是 "<timestamp>,<byte_count>" 两个整数。
type FormatError struct {
	Line    int
	Content string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid log entry format at line %d: %s", e.Line, e.Content)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
