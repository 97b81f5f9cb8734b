package proxyclient

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"golang.org/x/net/proxy"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/actor"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/internal/core/hopper"
	"github.com/dep2p/go-proxygate/internal/core/payload"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/proxyclient")

// ProxyClient 请求处理组件
//
// HandleBind 和 HandleExpiredCoresPackage 只在 Actor 协程中调用，且从不阻塞；
// 流的读写协程只通过 respond、finish 和 forget 与组件交互。
//
// 由本节点网关发起的流使用 Dispatcher 为该连接打开的窗口：
// 上游数据发出前占用下行窗口，请求写入上游后归还上行窗口。
// 每个流结束时都会发送一个 last_response，除非整个组件正在关闭。
type ProxyClient struct {
	cfg     config.ProxyClientConfig
	cryptde pkgif.CryptDE
	dialer  proxy.ContextDialer
	flow    *flow.Controller

	mu     sync.RWMutex
	hopper pkgif.Recipient[*types.IncipientCoresPackage]
	bound  bool

	streams *lru.Cache[streamID, *stream]
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New 创建请求处理组件
//
// fc 为 nil 时不做流控。
func New(cfg config.ProxyClientConfig, cryptde pkgif.CryptDE, dialer proxy.ContextDialer, fc *flow.Controller) (*ProxyClient, error) {
	// 被挤出的流关闭上游连接，它的协程随后发送 last_response
	streams, err := lru.NewWithEvict[streamID, *stream](cfg.MaxStreams, func(_ streamID, s *stream) {
		_ = s.close()
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ProxyClient{
		cfg:     cfg,
		cryptde: cryptde,
		dialer:  dialer,
		flow:    fc,
		streams: streams,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// HandleBind 记录 Hopper 的接收端
func (c *ProxyClient) HandleBind(msg pkgif.BindMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound {
		logger.Warn("ProxyClient 已绑定，忽略重复的绑定消息")
		return
	}
	c.hopper = msg.PeerActors.Hopper.FromHopperClient
	c.bound = true
}

// StreamCount 返回活动流数量
func (c *ProxyClient) StreamCount() int {
	return c.streams.Len()
}

// HandleExpiredCoresPackage 处理一个请求包
func (c *ProxyClient) HandleExpiredCoresPackage(pkg *types.ExpiredCoresPackage) {
	req, err := payload.DecodeClientRequest(pkg.Payload)
	if err != nil {
		logger.Error("ClientRequestPayload is not OK", "error", err)
		return
	}

	id := newStreamID(req)
	s, ok := c.streams.Get(id)
	if !ok {
		ws := c.windowsFor(req)
		if !req.HasTargetHostname() {
			logger.Warn("丢弃请求", "stream", req.StreamKey, "error", ErrNoTarget)
			ws.Upstream.Release()
			c.spawn(func() {
				c.finish(newStream(c.ctx, id, "", pkg.RemainingRoute, req.OriginatorPublicKey, ws))
			})
			return
		}
		s = newStream(c.ctx, id, targetAddress(req.TargetHostname, req.TargetPort), pkg.RemainingRoute, req.OriginatorPublicKey, ws)
		c.streams.Add(id, s)
		c.spawn(func() { c.runWriter(s) })
		logger.Debug("新建上游流", "stream", req.StreamKey, "target", s.target, "protocol", req.Protocol)
	}

	if err := s.enqueue(chunk{data: req.Data, last: req.LastData}); err != nil {
		logger.Warn("无法写入上游流，关闭", "stream", req.StreamKey, "error", err)
		s.flow.Upstream.Release()
		c.forget(s)
	}
}

// windowsFor 查找本节点网关为该连接打开的窗口
func (c *ProxyClient) windowsFor(req *types.ClientRequestPayload) flow.Windows {
	if !req.OriginatorPublicKey.Equal(c.cryptde.PublicKey()) {
		return flow.Windows{}
	}
	ws, _ := c.flow.Lookup(req.StreamKey)
	return ws
}

func (c *ProxyClient) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// runWriter 连接上游并顺序写入
//
// 上游连接建立后由读协程负责发送 last_response。
func (c *ProxyClient) runWriter(s *stream) {
	conn, err := c.dialer.DialContext(s.ctx, "tcp", s.target)
	if err != nil {
		if s.ctx.Err() == nil {
			logger.Warn("连接上游失败", "target", s.target, "error", err)
			c.forget(s)
		}
		c.finish(s)
		return
	}
	if !s.setConn(conn) {
		_ = conn.Close()
		c.finish(s)
		return
	}

	c.spawn(func() { c.runReader(s, conn) })

	drained := s.flow.Upstream.Drained()
	for {
		select {
		case <-s.ctx.Done():
			c.discard(s)
			return
		case <-s.flow.Downstream.Done():
			logger.Debug("客户端连接已关闭，关闭上游", "target", s.target)
			c.forget(s)
		case <-drained:
			drained = nil
			c.closeWrite(s, conn)
		case ch := <-s.writes:
			if len(ch.data) > 0 {
				if err := conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout.Duration())); err != nil {
					logger.Debug("设置写超时失败", "target", s.target, "error", err)
				}
				if _, err := conn.Write(ch.data); err != nil {
					logger.Debug("写入上游失败", "target", s.target, "error", err)
					s.flow.Upstream.Release()
					c.forget(s)
					continue
				}
			}
			s.flow.Upstream.Release()
			if ch.last {
				c.closeWrite(s, conn)
			}
		}
	}
}

func (c *ProxyClient) closeWrite(s *stream, conn net.Conn) {
	if err := closeWrite(conn); err != nil {
		logger.Debug("半关闭上游失败", "target", s.target, "error", err)
	}
}

// discard 归还队列中尚未写出的数据占用的上行窗口
func (c *ProxyClient) discard(s *stream) {
	for {
		select {
		case <-s.writes:
			s.flow.Upstream.Release()
		default:
			return
		}
	}
}

// runReader 把上游数据沿回程路由送回
//
// 下行窗口用尽时停止读取，背压经由 TCP 传给上游。
func (c *ProxyClient) runReader(s *stream, conn io.Reader) {
	defer c.finish(s)

	buf := make([]byte, c.cfg.ReadBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if rerr := c.respond(s.ctx, s, append([]byte(nil), buf[:n]...), false); rerr != nil {
				logger.Debug("停止转发上游响应", "target", s.target, "error", rerr)
				c.forget(s)
				return
			}
		}
		if err != nil {
			if s.ctx.Err() == nil {
				logger.Debug("上游连接结束", "target", s.target, "error", err)
				c.forget(s)
			}
			return
		}
	}
}

// finish 发送流的 last_response，每个流只发送一次
//
// 组件关闭时不发送；客户端连接已关闭时下行窗口拒绝占用，同样不发送。
func (c *ProxyClient) finish(s *stream) {
	s.finished.Do(func() {
		if c.ctx.Err() != nil {
			return
		}
		if err := c.respond(c.ctx, s, nil, true); err != nil {
			logger.Debug("未发送 last_response", "stream", s.id.key, "error", err)
		}
	})
}

// respond 占用下行窗口后发送一块响应
func (c *ProxyClient) respond(ctx context.Context, s *stream, data []byte, last bool) error {
	c.mu.RLock()
	h := c.hopper
	c.mu.RUnlock()
	if h == nil {
		panic("Hopper unbound in ProxyClient")
	}

	if err := s.flow.Downstream.Acquire(ctx); err != nil {
		return err
	}

	pkg, err := hopper.NewIncipientCoresPackage(s.route, &types.ClientResponsePayload{
		StreamKey:    s.id.key,
		LastResponse: last,
		Data:         data,
	}, s.originator, c.cryptde)
	if err != nil {
		s.flow.Downstream.Release()
		logger.Error("无法构造响应包", "stream", s.id.key, "error", err)
		return err
	}

	if err := h.TrySend(pkg); err != nil {
		s.flow.Downstream.Release()
		if errors.Is(err, actor.ErrMailboxClosed) {
			logger.Debug("Hopper 已停止，丢弃响应", "stream", s.id.key)
			return err
		}
		panic("Hopper is dead")
	}
	return nil
}

// forget 关闭并移除流
func (c *ProxyClient) forget(s *stream) {
	if cur, ok := c.streams.Peek(s.id); ok && cur == s {
		c.streams.Remove(s.id)
	}
	_ = s.close()
}

// Close 关闭所有上游连接并等待协程退出
func (c *ProxyClient) Close() error {
	c.cancel()

	var err error
	for _, id := range c.streams.Keys() {
		if s, ok := c.streams.Peek(id); ok {
			err = multierr.Append(err, s.close())
		}
	}
	c.streams.Purge()
	c.wg.Wait()
	return err
}
