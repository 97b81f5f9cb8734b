package proxyclient

import (
	"github.com/dep2p/go-proxygate/internal/core/actor"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// Actor 在独立协程中驱动 ProxyClient
type Actor struct {
	client *ProxyClient
	runner *actor.Runner
}

// NewActor 创建 Actor
func NewActor(client *ProxyClient, capacity int) *Actor {
	a := &Actor{client: client}
	a.runner = actor.NewRunner(actor.NewMailbox(capacity), a.handle)
	return a
}

// Subs 返回对外接收端
func (a *Actor) Subs() pkgif.ProxyClientSubs {
	return pkgif.ProxyClientSubs{
		FromHopper: actor.Recipient[*types.ExpiredCoresPackage](a.runner.Mailbox()),
	}
}

// Bind 返回绑定消息接收端
func (a *Actor) Bind() pkgif.Recipient[pkgif.BindMessage] {
	return actor.Recipient[pkgif.BindMessage](a.runner.Mailbox())
}

// Start 启动
func (a *Actor) Start() { a.runner.Start() }

// Stop 停止邮箱消费并关闭所有上游连接
func (a *Actor) Stop() error {
	a.runner.Stop()
	return a.client.Close()
}

func (a *Actor) handle(msg any) {
	switch m := msg.(type) {
	case pkgif.BindMessage:
		a.client.HandleBind(m)
	case *types.ExpiredCoresPackage:
		a.client.HandleExpiredCoresPackage(m)
	default:
		logger.Warn("未知消息类型", "type", m)
	}
}
