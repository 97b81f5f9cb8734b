package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/actor"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/dispatcher")

// Dispatcher 客户端套接字多路复用
//
// 每个连接一个读协程和一个写协程。读协程发出数据前占用上行窗口，
// 写协程写出后归还下行窗口，Actor 协程从不阻塞在套接字上。
type Dispatcher struct {
	cfg      config.DispatcherConfig
	flow     *flow.Controller
	reporter metrics.Reporter

	mu          sync.RWMutex
	proxyServer pkgif.Recipient[types.InboundClientData]
	listeners   []*listener
	conns       map[types.StreamKey]*clientConn
	bound       bool

	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	workers sync.WaitGroup
}

// New 创建 Dispatcher
//
// fc 为 nil 时使用默认流控配置。
func New(cfg config.DispatcherConfig, fc *flow.Controller, reporter metrics.Reporter) *Dispatcher {
	if fc == nil {
		fc = flow.NewController(config.DefaultFlowConfig())
	}
	if reporter == nil {
		reporter = metrics.NopReporter{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	return &Dispatcher{
		cfg:      cfg,
		flow:     fc,
		reporter: reporter,
		conns:    make(map[types.StreamKey]*clientConn),
		ctx:      gctx,
		cancel:   cancel,
		group:    group,
	}
}

// Listen 打开所有监听器
//
// 任一监听失败时关闭已打开的监听器并返回错误。
func (d *Dispatcher) Listen() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.listeners) > 0 {
		return ErrAlreadyListening
	}

	for _, lc := range d.cfg.Listeners {
		l, err := newListener(lc, d.cfg)
		if err != nil {
			for _, opened := range d.listeners {
				_ = opened.close()
			}
			d.listeners = nil
			return fmt.Errorf("listen %s: %w", lc.Address, err)
		}
		d.listeners = append(d.listeners, l)
		logger.Info("监听客户端连接", "addr", l.ln.Addr().String(), "originPort", l.originPort)
	}
	return nil
}

// Addrs 返回各监听器的实际地址
func (d *Dispatcher) Addrs() []net.Addr {
	d.mu.RLock()
	defer d.mu.RUnlock()

	addrs := make([]net.Addr, 0, len(d.listeners))
	for _, l := range d.listeners {
		addrs = append(addrs, l.ln.Addr())
	}
	return addrs
}

// HandleBind 记录网关接收端并开始接受连接
func (d *Dispatcher) HandleBind(msg pkgif.BindMessage) {
	d.mu.Lock()
	if d.bound {
		d.mu.Unlock()
		logger.Warn("Dispatcher 已绑定，忽略重复的绑定消息")
		return
	}
	d.bound = true
	d.proxyServer = msg.PeerActors.ProxyServer.FromDispatcher
	listeners := append([]*listener(nil), d.listeners...)
	d.mu.Unlock()

	for _, l := range listeners {
		l := l
		d.group.Go(func() error {
			return d.acceptLoop(l)
		})
	}
}

// acceptLoop 接受连接直到监听器关闭
func (d *Dispatcher) acceptLoop(l *listener) error {
	for {
		conn, err := l.accept(d.ctx)
		if err != nil {
			if d.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Error("接受连接失败", "addr", l.ln.Addr().String(), "error", err)
			return err
		}

		key, err := streamKeyOf(conn)
		if err != nil {
			logger.Warn("无法识别连接地址", "remote", conn.RemoteAddr().String(), "error", err)
			_ = conn.Close()
			continue
		}

		cc := newClientConn(key, conn, d.flow.Open(key), d.flow.StreamWindow())
		d.mu.Lock()
		d.conns[key] = cc
		d.mu.Unlock()

		logger.Debug("新客户端连接", "stream", key, "originPort", l.originPort)
		d.workers.Add(2)
		go d.readLoop(cc, l.originPort)
		go d.writeLoop(cc)
	}
}

// readLoop 把客户端数据交给网关
//
// 上行窗口用尽时停止读取，背压经由 TCP 传给客户端。
// 客户端关闭写方向后结束上行窗口，连接保留到网关发来 last_data。
func (d *Dispatcher) readLoop(cc *clientConn, originPort uint16) {
	defer d.workers.Done()

	d.mu.RLock()
	target := d.proxyServer
	d.mu.RUnlock()

	buf := make([]byte, d.cfg.ReadBufferSize)
	for {
		n, err := cc.conn.Read(buf)
		if n > 0 {
			d.reporter.ClientBytes(metrics.DirectionIn, n)
			if target == nil {
				panic("ProxyServer unbound in Dispatcher")
			}
			if aerr := cc.flow.Upstream.Acquire(d.ctx); aerr != nil {
				return
			}
			msg := types.InboundClientData{
				StreamKey:  cc.key,
				OriginPort: originPort,
				Data:       append([]byte(nil), buf[:n]...),
			}
			if sendErr := target.TrySend(msg); sendErr != nil {
				cc.flow.Upstream.Release()
				if errors.Is(sendErr, actor.ErrMailboxClosed) {
					return
				}
				panic("ProxyServer is dead")
			}
		}
		if err != nil {
			switch {
			case d.ctx.Err() != nil, errors.Is(err, net.ErrClosed):
			case isEOF(err):
				logger.Debug("客户端关闭写方向", "stream", cc.key)
				cc.flow.Upstream.Finish()
			default:
				logger.Debug("读取客户端失败", "stream", cc.key, "error", err)
				d.drop(cc)
			}
			return
		}
	}
}

// writeLoop 顺序写出发送指令
func (d *Dispatcher) writeLoop(cc *clientConn) {
	defer d.workers.Done()

	for {
		select {
		case <-cc.done:
			return
		case <-d.ctx.Done():
			return
		case msg := <-cc.writes:
			if !d.write(cc, msg) {
				return
			}
		}
	}
}

// write 写出一条发送指令，返回 false 表示连接已关闭
func (d *Dispatcher) write(cc *clientConn, msg types.TransmitDataMsg) bool {
	if len(msg.Data) > 0 {
		if err := cc.conn.SetWriteDeadline(time.Now().Add(d.cfg.WriteTimeout.Duration())); err != nil {
			logger.Debug("设置写超时失败", "stream", cc.key, "error", err)
		}
		n, err := cc.conn.Write(msg.Data)
		d.reporter.ClientBytes(metrics.DirectionOut, n)
		if err != nil {
			logger.Debug("写入客户端失败", "stream", cc.key, "error", err)
			d.drop(cc)
			return false
		}
	}
	cc.flow.Downstream.Release()

	if msg.LastData {
		logger.Debug("关闭客户端连接", "stream", cc.key)
		d.drop(cc)
		return false
	}
	return true
}

// HandleTransmitData 把发送指令交给连接的写协程
func (d *Dispatcher) HandleTransmitData(msg types.TransmitDataMsg) {
	if msg.Endpoint.Kind != types.EndpointSocket {
		logger.Error("丢弃发送指令", "endpoint", msg.Endpoint, "error", ErrUnsupportedEndpoint)
		return
	}
	key := msg.Endpoint.Stream

	d.mu.RLock()
	cc, ok := d.conns[key]
	d.mu.RUnlock()
	if !ok {
		logger.Warn("丢弃发送指令", "stream", key, "error", ErrUnknownStream)
		return
	}

	if err := cc.enqueue(msg); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return
		}
		logger.Warn("客户端写队列已满，关闭连接", "stream", key, "error", err)
		d.drop(cc)
	}
}

// StreamCount 返回活动连接数
func (d *Dispatcher) StreamCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.conns)
}

// drop 关闭并移除连接，遗忘它的窗口
func (d *Dispatcher) drop(cc *clientConn) {
	d.mu.Lock()
	if cur, ok := d.conns[cc.key]; ok && cur == cc {
		delete(d.conns, cc.key)
	}
	d.mu.Unlock()
	_ = cc.close()
	d.flow.Forget(cc.key, cc.flow)
}

// Close 关闭监听器和所有连接
func (d *Dispatcher) Close() error {
	d.cancel()

	d.mu.Lock()
	listeners := d.listeners
	conns := d.conns
	d.conns = make(map[types.StreamKey]*clientConn)
	d.mu.Unlock()

	var err error
	for _, l := range listeners {
		err = multierr.Append(err, l.close())
	}
	err = multierr.Append(err, d.group.Wait())
	for _, cc := range conns {
		if cerr := cc.close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = multierr.Append(err, cerr)
		}
		d.flow.Forget(cc.key, cc.flow)
	}
	d.workers.Wait()
	return err
}

// streamKeyOf 取连接远端地址作为流标识
func streamKeyOf(conn net.Conn) (types.StreamKey, error) {
	if tcp, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		ap := tcp.AddrPort()
		return types.NewStreamKey(netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())), nil
	}
	return types.ParseStreamKey(conn.RemoteAddr().String())
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
