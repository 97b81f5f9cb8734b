package proxyserver

import (
	"github.com/dep2p/go-proxygate/internal/core/actor"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// Actor 在独立协程中驱动 ProxyServer
//
// 所有消息共享一个邮箱，同一发送方的消息按提交顺序处理。
type Actor struct {
	server *ProxyServer
	runner *actor.Runner
}

// NewActor 创建 Actor
func NewActor(server *ProxyServer, capacity int) *Actor {
	a := &Actor{server: server}
	a.runner = actor.NewRunner(actor.NewMailbox(capacity), a.handle)
	return a
}

// Subs 返回对外接收端
func (a *Actor) Subs() pkgif.ProxyServerSubs {
	mb := a.runner.Mailbox()
	return pkgif.ProxyServerSubs{
		FromDispatcher: actor.Recipient[types.InboundClientData](mb),
		FromHopper:     actor.Recipient[*types.ExpiredCoresPackage](mb),
	}
}

// Bind 返回绑定消息接收端
func (a *Actor) Bind() pkgif.Recipient[pkgif.BindMessage] {
	return actor.Recipient[pkgif.BindMessage](a.runner.Mailbox())
}

// Start 启动
func (a *Actor) Start() { a.runner.Start() }

// Stop 停止
func (a *Actor) Stop() { a.runner.Stop() }

func (a *Actor) handle(msg any) {
	switch m := msg.(type) {
	case pkgif.BindMessage:
		a.server.HandleBind(m)
	case types.InboundClientData:
		a.server.HandleInboundClientData(m)
	case *types.ExpiredCoresPackage:
		a.server.HandleExpiredCoresPackage(m)
	default:
		logger.Warn("未知消息类型", "type", m)
	}
}
