package flow

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// Windows 一个客户端连接的两个方向
type Windows struct {
	// Upstream 客户端 → 上游
	Upstream *Window

	// Downstream 上游 → 客户端
	Downstream *Window
}

func (ws Windows) close() {
	if ws.Upstream != nil {
		ws.Upstream.close()
	}
	if ws.Downstream != nil {
		ws.Downstream.close()
	}
}

// Controller 管理所有连接的窗口和会话窗口
type Controller struct {
	streamWindow int
	session      *semaphore.Weighted
	inFlight     atomic.Int64

	mu      sync.Mutex
	streams map[types.StreamKey]Windows
}

// NewController 创建流控器
func NewController(cfg config.FlowConfig) *Controller {
	return &Controller{
		streamWindow: cfg.StreamWindow,
		session:      semaphore.NewWeighted(int64(cfg.SessionWindow)),
		streams:      make(map[types.StreamKey]Windows),
	}
}

// StreamWindow 返回单流窗口大小
func (c *Controller) StreamWindow() int {
	return c.streamWindow
}

// Open 为连接打开一对窗口
//
// 同一 key 上已有的窗口被关闭。
func (c *Controller) Open(key types.StreamKey) Windows {
	ws := Windows{
		Upstream:   newWindow(c, c.streamWindow),
		Downstream: newWindow(c, c.streamWindow),
	}

	c.mu.Lock()
	old, ok := c.streams[key]
	c.streams[key] = ws
	c.mu.Unlock()

	if ok {
		old.close()
	}
	return ws
}

// Lookup 查找连接的窗口
//
// nil Controller 总是返回空的 Windows，调用方据此不做流控。
func (c *Controller) Lookup(key types.StreamKey) (Windows, bool) {
	if c == nil {
		return Windows{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ws, ok := c.streams[key]
	return ws, ok
}

// Forget 关闭连接的窗口
//
// 只有 key 仍指向 ws 时才移除登记，连接复用同一地址时新窗口不受影响。
func (c *Controller) Forget(key types.StreamKey, ws Windows) {
	c.mu.Lock()
	if cur, ok := c.streams[key]; ok && cur.Upstream == ws.Upstream {
		delete(c.streams, key)
	}
	c.mu.Unlock()
	ws.close()
}

// Len 返回登记的连接数
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.streams)
}

// InFlight 返回已占用的会话单位数
func (c *Controller) InFlight() int {
	return int(c.inFlight.Load())
}

// acquireSession 占用一个会话单位，done 关闭时放弃
func (c *Controller) acquireSession(ctx context.Context, done <-chan struct{}) error {
	if c.session.TryAcquire(1) {
		c.inFlight.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-done:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := c.session.Acquire(ctx, 1); err != nil {
		select {
		case <-done:
			return ErrWindowClosed
		default:
			return err
		}
	}
	c.inFlight.Add(1)
	return nil
}

func (c *Controller) releaseSession(n int) {
	c.inFlight.Add(-int64(n))
	c.session.Release(int64(n))
}
