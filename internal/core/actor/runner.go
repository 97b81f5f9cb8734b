package actor

import (
	"context"
	"sync"
)

// Runner 管理一个 Actor 的消费协程
type Runner struct {
	mb     *Mailbox
	handle func(msg any)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewRunner 创建 Runner
func NewRunner(mb *Mailbox, handle func(msg any)) *Runner {
	return &Runner{mb: mb, handle: handle}
}

// Mailbox 返回被消费的邮箱
func (r *Runner) Mailbox() *Mailbox {
	return r.mb
}

// Start 启动消费协程，重复调用无效果
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		Run(ctx, r.mb, r.handle)
	}()
}

// Stop 关闭邮箱并等待消费协程退出
//
// 邮箱中尚未处理的消息被丢弃。
func (r *Runner) Stop() {
	r.mb.Close()

	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
