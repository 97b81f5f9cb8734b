package proxyclient

import "errors"

var (
	// ErrNoTarget 新流没有目标主机名
	ErrNoTarget = errors.New("proxyclient: no target host for new stream")

	// ErrBacklogFull 流的待写队列已满
	ErrBacklogFull = errors.New("proxyclient: stream backlog full")

	// ErrClosed 组件已关闭
	ErrClosed = errors.New("proxyclient: closed")
)
