package proxygate

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/app"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/node")

// NodeState 节点状态
type NodeState int

const (
	// StateIdle 已创建，未启动
	StateIdle NodeState = iota
	// StateRunning 运行中
	StateRunning
	// StateClosed 已关闭，不可重新启动
	StateClosed
)

// String 返回状态名称
func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Node 代理网关节点
type Node struct {
	mu        sync.Mutex
	config    *config.Config
	bootstrap *app.Bootstrap
	runtime   *app.Runtime
	state     NodeState
}

// New 创建节点（不启动）
func New(opts ...Option) (*Node, error) {
	cfg := config.NewConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Node{
		config:    cfg,
		bootstrap: app.NewBootstrap(cfg),
	}, nil
}

// Start 快捷启动函数
//
// 等价于 New() + Node.Start()。
func Start(ctx context.Context, opts ...Option) (*Node, error) {
	n, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := n.Start(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

// Start 启动节点
//
// 打开监听器并完成 Actor 绑定后返回。
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateClosed:
		return ErrNodeClosed
	case StateRunning:
		return ErrAlreadyStarted
	}

	logger.Info("正在启动节点")
	rt, err := n.bootstrap.Start(ctx)
	if err != nil {
		logger.Error("节点启动失败", "error", err)
		return fmt.Errorf("start: %w", err)
	}
	n.runtime = rt
	n.state = StateRunning
	return nil
}

// Stop 停止节点
//
// 停止后节点不可重新启动。
func (n *Node) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateClosed:
		return ErrNodeClosed
	case StateIdle:
		return ErrNotStarted
	}

	n.state = StateClosed
	if err := n.runtime.Stop(ctx); err != nil {
		logger.Error("停止节点失败", "error", err)
		return fmt.Errorf("stop: %w", err)
	}
	logger.Info("节点已停止")
	return nil
}

// Close 关闭节点并释放所有资源
//
// 可重复调用。
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	prev := n.state
	n.state = StateClosed
	if prev != StateRunning {
		return nil
	}
	return n.runtime.Stop(context.Background())
}

// State 返回节点状态
func (n *Node) State() NodeState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Config 返回生效的配置副本
func (n *Node) Config() config.Config {
	return *n.config
}

// PublicKey 返回节点公钥
//
// 未启动时返回空。
func (n *Node) PublicKey() types.PublicKey {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.runtime == nil || n.runtime.CryptDE == nil {
		return nil
	}
	return n.runtime.CryptDE.PublicKey()
}

// ListenAddrs 返回客户端监听地址
func (n *Node) ListenAddrs() []net.Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != StateRunning {
		return nil
	}
	return n.runtime.ListenAddrs()
}
