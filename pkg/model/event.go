package model

// Event 是收发日志中的一行：时间戳 + 字节数。序号即关联键。
type Event struct {
	Timestamp int64 `json:"timestamp"`
	ByteCount int64 `json:"byte_count"`
}
