package actor

import (
	"context"
	"sync"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// DefaultCapacity 默认邮箱容量
const DefaultCapacity = 1024

// Mailbox 有界 FIFO 邮箱
type Mailbox struct {
	mu     sync.RWMutex
	ch     chan any
	closed bool
}

// NewMailbox 创建邮箱
//
// capacity <= 0 时使用 DefaultCapacity。
func NewMailbox(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Mailbox{ch: make(chan any, capacity)}
}

// post 非阻塞投递
func (m *Mailbox) post(msg any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrMailboxClosed
	}

	select {
	case m.ch <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Receive 返回消息通道（仅供唯一消费者使用）
func (m *Mailbox) Receive() <-chan any {
	return m.ch
}

// Len 返回待处理消息数
func (m *Mailbox) Len() int {
	return len(m.ch)
}

// Cap 返回邮箱容量
func (m *Mailbox) Cap() int {
	return cap(m.ch)
}

// Close 关闭邮箱
//
// 关闭后投递返回 ErrMailboxClosed，已入队的消息仍会被消费者读出。
// 可以多次调用。
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	close(m.ch)
}

// ============================================================================
//                              Recipient
// ============================================================================

type recipient[T any] struct {
	mb *Mailbox
}

func (r recipient[T]) TrySend(msg T) error {
	return r.mb.post(msg)
}

// Recipient 返回只能投递 T 类型消息的发送端
func Recipient[T any](mb *Mailbox) pkgif.Recipient[T] {
	return recipient[T]{mb: mb}
}

// ============================================================================
//                              消费循环
// ============================================================================

// Run 顺序消费邮箱直到 ctx 取消或邮箱关闭
//
// handle 中的 panic 不会被捕获：Actor 的致命错误终止整个进程。
func Run(ctx context.Context, mb *Mailbox, handle func(msg any)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-mb.Receive():
			if !ok {
				return
			}
			handle(msg)
		}
	}
}
