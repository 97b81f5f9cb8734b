package dispatcher

import (
	"net"

	"github.com/dep2p/go-proxygate/internal/core/actor"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// Actor 在独立协程中处理发送指令
type Actor struct {
	dispatcher *Dispatcher
	runner     *actor.Runner
}

// NewActor 创建 Actor
func NewActor(d *Dispatcher, capacity int) *Actor {
	a := &Actor{dispatcher: d}
	a.runner = actor.NewRunner(actor.NewMailbox(capacity), a.handle)
	return a
}

// Subs 返回对外接收端
func (a *Actor) Subs() pkgif.DispatcherSubs {
	return pkgif.DispatcherSubs{
		FromProxyServer: actor.Recipient[types.TransmitDataMsg](a.runner.Mailbox()),
	}
}

// Bind 返回绑定消息接收端
func (a *Actor) Bind() pkgif.Recipient[pkgif.BindMessage] {
	return actor.Recipient[pkgif.BindMessage](a.runner.Mailbox())
}

// Addrs 返回监听地址
func (a *Actor) Addrs() []net.Addr {
	return a.dispatcher.Addrs()
}

// Start 打开监听器并启动消息循环
func (a *Actor) Start() error {
	if err := a.dispatcher.Listen(); err != nil {
		return err
	}
	a.runner.Start()
	return nil
}

// Stop 停止消息循环并关闭所有连接
func (a *Actor) Stop() error {
	a.runner.Stop()
	return a.dispatcher.Close()
}

func (a *Actor) handle(msg any) {
	switch m := msg.(type) {
	case pkgif.BindMessage:
		a.dispatcher.HandleBind(m)
	case types.TransmitDataMsg:
		a.dispatcher.HandleTransmitData(m)
	default:
		logger.Warn("未知消息类型", "type", m)
	}
}
