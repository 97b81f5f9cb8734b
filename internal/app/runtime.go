package app

import (
	"context"
	"net"

	"github.com/dep2p/go-proxygate/internal/core/dispatcher"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// Runtime 表示一个已通过 fx 组装完成的 proxygate 运行时
type Runtime struct {
	CryptDE    pkgif.CryptDE
	Dispatcher *dispatcher.Actor

	stop func(ctx context.Context) error
}

// ListenAddrs 返回客户端监听地址
//
// 启动前为空。
func (r *Runtime) ListenAddrs() []net.Addr {
	if r.Dispatcher == nil {
		return nil
	}
	return r.Dispatcher.Addrs()
}

// Stop 停止运行时（触发 fx 生命周期 OnStop）
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}
