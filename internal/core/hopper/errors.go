package hopper

import "errors"

var (
	// ErrNoPeerTransport 下一跳是其他节点
	ErrNoPeerTransport = errors.New("hopper: no transport to peer")

	// ErrUnboundComponent 目标组件未绑定
	ErrUnboundComponent = errors.New("hopper: component unbound")
)
