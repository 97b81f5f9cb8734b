package proxyserver

import (
	"github.com/dep2p/go-proxygate/internal/core/hopper"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	"github.com/dep2p/go-proxygate/internal/core/payload"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/proxyserver")

// ProxyServer 网关状态机
//
// 未绑定 → 已绑定，只有这两个状态。所有方法只在 Actor 协程中调用，不加锁。
type ProxyServer struct {
	cryptde  pkgif.CryptDE
	routes   pkgif.RouteBuilder
	factory  *ClientRequestPayloadFactory
	reporter metrics.Reporter

	dispatcher pkgif.Recipient[types.TransmitDataMsg]
	hopper     pkgif.Recipient[*types.IncipientCoresPackage]
	bound      bool
}

// New 创建网关
func New(cryptde pkgif.CryptDE, routes pkgif.RouteBuilder, reporter metrics.Reporter) *ProxyServer {
	if reporter == nil {
		reporter = metrics.NopReporter{}
	}
	return &ProxyServer{
		cryptde:  cryptde,
		routes:   routes,
		factory:  NewClientRequestPayloadFactory(),
		reporter: reporter,
	}
}

// IsBound 是否已绑定
func (s *ProxyServer) IsBound() bool {
	return s.bound
}

// HandleBind 记录 Dispatcher 和 Hopper 的接收端
//
// 只有第一次绑定生效，之后的绑定消息被忽略并记录警告。
func (s *ProxyServer) HandleBind(msg pkgif.BindMessage) {
	if s.bound {
		logger.Warn("ProxyServer 已绑定，忽略重复的绑定消息")
		return
	}
	s.dispatcher = msg.PeerActors.Dispatcher.FromProxyServer
	s.hopper = msg.PeerActors.Hopper.FromHopperClient
	s.bound = true
}

// HandleInboundClientData 把客户端数据封装成包交给 Hopper
func (s *ProxyServer) HandleInboundClientData(msg types.InboundClientData) {
	if s.hopper == nil {
		panic("Hopper unbound in ProxyServer")
	}

	req, ok := s.factory.Make(msg, s.cryptde)
	if !ok {
		logger.Error("Couldn't create ClientRequestPayload", "stream", msg.StreamKey)
		s.reporter.RequestDropped()
		return
	}

	r, err := s.routes.BuildRoute(s.cryptde)
	if err != nil {
		logger.Error("路由构造失败", "error", err)
		panic("Couldn't create route")
	}

	me := s.cryptde.PublicKey()
	pkg, err := hopper.NewIncipientCoresPackage(r, req, me, s.cryptde)
	if err != nil {
		logger.Error("包构造失败", "error", err)
		panic("Couldn't create IncipientCoresPackage")
	}

	logger.Debug("发出请求包",
		"stream", msg.StreamKey,
		"protocol", req.Protocol,
		"host", req.TargetHostname,
		"port", req.TargetPort,
		"bytes", len(req.Data),
		"last", req.LastData)

	if err := s.hopper.TrySend(pkg); err != nil {
		panic("Hopper is dead")
	}
	s.reporter.RequestSent(req.Protocol, req.HasTargetHostname())
}

// HandleExpiredCoresPackage 把回程响应交给 Dispatcher 送回客户端套接字
func (s *ProxyServer) HandleExpiredCoresPackage(pkg *types.ExpiredCoresPackage) {
	resp, err := payload.DecodeClientResponse(pkg.Payload)
	if err != nil {
		logger.Error("ClientResponsePayload is not OK", "error", err)
		s.reporter.ResponseRejected()
		return
	}

	logger.Debug("转发响应到 Dispatcher", "stream", resp.StreamKey, "bytes", len(resp.Data), "last", resp.LastResponse)

	if s.dispatcher == nil {
		panic("Dispatcher unbound in ProxyServer")
	}
	err = s.dispatcher.TrySend(types.TransmitDataMsg{
		Endpoint: types.SocketEndpoint(resp.StreamKey),
		LastData: resp.LastResponse,
		Data:     resp.Data,
	})
	if err != nil {
		panic("Dispatcher is dead")
	}
	s.reporter.ResponseRelayed(resp.LastResponse)
}
