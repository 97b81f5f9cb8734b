package flow

import "errors"

// ErrWindowClosed 窗口所属的连接已关闭
var ErrWindowClosed = errors.New("flow: window closed")
