package dispatcher

import "errors"

var (
	// ErrAlreadyListening 重复调用 Listen
	ErrAlreadyListening = errors.New("dispatcher: already listening")

	// ErrUnknownStream 没有该 StreamKey 对应的连接
	ErrUnknownStream = errors.New("dispatcher: unknown stream")

	// ErrWriteBacklogFull 客户端写队列已满
	ErrWriteBacklogFull = errors.New("dispatcher: write backlog full")

	// ErrUnsupportedEndpoint 不支持的发送目标
	ErrUnsupportedEndpoint = errors.New("dispatcher: unsupported endpoint")
)
