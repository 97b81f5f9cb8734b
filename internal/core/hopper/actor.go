package hopper

import (
	"github.com/dep2p/go-proxygate/internal/core/actor"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// Actor 在独立协程中驱动 Hopper
type Actor struct {
	hopper *Hopper
	runner *actor.Runner
}

// NewActor 创建 Actor
func NewActor(h *Hopper, capacity int) *Actor {
	a := &Actor{hopper: h}
	a.runner = actor.NewRunner(actor.NewMailbox(capacity), a.handle)
	return a
}

// Subs 返回对外接收端
func (a *Actor) Subs() pkgif.HopperSubs {
	return pkgif.HopperSubs{
		FromHopperClient: actor.Recipient[*types.IncipientCoresPackage](a.runner.Mailbox()),
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
		a.hopper.HandleBind(m)
	case *types.IncipientCoresPackage:
		a.hopper.HandleIncipientCoresPackage(m)
	default:
		logger.Warn("未知消息类型", "type", m)
	}
}
