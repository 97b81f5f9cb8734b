package hopper

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-proxygate/internal/core/actor"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	"github.com/dep2p/go-proxygate/internal/core/route"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/hopper")

// Hopper 多跳传输状态机
//
// 只在 Actor 协程中使用，不加锁。
type Hopper struct {
	cryptde  pkgif.CryptDE
	reporter metrics.Reporter

	components map[types.Component]pkgif.Recipient[*types.ExpiredCoresPackage]
	bound      bool
}

// New 创建 Hopper
func New(cryptde pkgif.CryptDE, reporter metrics.Reporter) *Hopper {
	if reporter == nil {
		reporter = metrics.NopReporter{}
	}
	return &Hopper{cryptde: cryptde, reporter: reporter}
}

// HandleBind 记录各组件的接收端
//
// 重复绑定被忽略。
func (h *Hopper) HandleBind(msg pkgif.BindMessage) {
	if h.bound {
		logger.Warn("Hopper 已绑定，忽略重复的绑定消息")
		return
	}
	h.bound = true
	h.components = make(map[types.Component]pkgif.Recipient[*types.ExpiredCoresPackage])
	if r := msg.PeerActors.ProxyServer.FromHopper; r != nil {
		h.components[types.ComponentProxyServer] = r
	}
	if r := msg.PeerActors.ProxyClient.FromHopper; r != nil {
		h.components[types.ComponentProxyClient] = r
	}
}

// HandleIncipientCoresPackage 沿路由处理一个包
func (h *Hopper) HandleIncipientCoresPackage(pkg *types.IncipientCoresPackage) {
	me := h.cryptde.PublicKey()
	remaining := pkg.Route

	for {
		hop, rest, err := route.Shift(remaining, h.cryptde)
		if err != nil {
			logger.Error("无法解开路由头，丢弃包", "error", err)
			return
		}
		remaining = rest

		if hop.IsDelivery() {
			h.deliver(hop.Component, pkg.Payload, remaining)
			return
		}
		if !hop.Next.Equal(me) {
			logger.Error("丢弃发往其他节点的包", "next", hop.Next.ShortString(), "error", ErrNoPeerTransport)
			return
		}
	}
}

// deliver 解密载荷并交付给组件
func (h *Hopper) deliver(component types.Component, sealed types.CryptData, remaining types.Route) {
	target, ok := h.components[component]
	if !ok {
		logger.Error("目标组件未绑定，丢弃包", "component", component, "error", ErrUnboundComponent)
		return
	}

	plain, err := h.cryptde.Decode(sealed)
	if err != nil {
		logger.Error("无法解密载荷，丢弃包", "component", component, "error", err)
		return
	}

	logger.Debug("交付包", "component", component, "bytes", len(plain), "remainingHops", remaining.Len())
	if err := target.TrySend(&types.ExpiredCoresPackage{RemainingRoute: remaining, Payload: plain}); err != nil {
		if errors.Is(err, actor.ErrMailboxClosed) {
			logger.Debug("组件已停止，丢弃包", "component", component)
			return
		}
		panic(fmt.Sprintf("%s is dead", component))
	}
	h.reporter.PackageRouted(component)
}
