package mocks

import (
	"errors"
	"sync"
	"time"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// ErrRecorderFull Recorder 模拟邮箱已满时返回的错误
var ErrRecorderFull = errors.New("mocks: recipient full")

// Recorder 记录收到的消息
//
// 实现 interfaces.Recipient[T]，并发安全。
type Recorder[T any] struct {
	mu       sync.Mutex
	messages []T
	notify   chan struct{}

	// Full 为 true 时 TrySend 返回 ErrRecorderFull 且不记录
	Full bool

	// TrySendFunc 自定义行为（优先于 Full）
	TrySendFunc func(msg T) error
}

var _ pkgif.Recipient[int] = (*Recorder[int])(nil)

// NewRecorder 创建 Recorder
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{notify: make(chan struct{}, 1)}
}

// NewFullRecorder 创建始终拒绝消息的 Recorder
func NewFullRecorder[T any]() *Recorder[T] {
	r := NewRecorder[T]()
	r.Full = true
	return r
}

// TrySend 实现 Recipient 接口
func (r *Recorder[T]) TrySend(msg T) error {
	if r.TrySendFunc != nil {
		if err := r.TrySendFunc(msg); err != nil {
			return err
		}
	} else if r.Full {
		return ErrRecorderFull
	}

	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
	return nil
}

// Messages 返回已记录消息的副本
func (r *Recorder[T]) Messages() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.messages...)
}

// Len 返回已记录消息数
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// Await 等待至少 n 条消息，超时返回当前已记录的消息
func (r *Recorder[T]) Await(n int, timeout time.Duration) []T {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if msgs := r.Messages(); len(msgs) >= n {
			return msgs
		}
		select {
		case <-r.notify:
		case <-deadline.C:
			return r.Messages()
		}
	}
}
