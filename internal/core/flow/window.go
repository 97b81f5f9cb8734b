package flow

import (
	"context"
	"sync"
)

// Window 一个连接一个方向的发送窗口
//
// 发送方每发出一块数据前 Acquire，接收方写出后 Release。
// nil Window 不做流控：Acquire 立即成功，Done 和 Drained 永不关闭。
type Window struct {
	ctrl *Controller
	size int

	mu        sync.Mutex
	held      int // 已占用的流窗口单位
	charged   int // 已占用的会话窗口单位
	closed    bool
	finished  bool
	isDrained bool
	wake      chan struct{}
	done      chan struct{}
	drained   chan struct{}
}

func newWindow(ctrl *Controller, size int) *Window {
	return &Window{
		ctrl:    ctrl,
		size:    size,
		wake:    make(chan struct{}),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Acquire 占用一个单位，流窗口或会话窗口用尽时等待
//
// 窗口关闭返回 ErrWindowClosed，ctx 取消返回 ctx.Err()。
func (w *Window) Acquire(ctx context.Context) error {
	if w == nil {
		return nil
	}

	for {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return ErrWindowClosed
		}
		if w.held < w.size {
			w.held++
			w.mu.Unlock()
			break
		}
		wake := w.wake
		w.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}

	if err := w.ctrl.acquireSession(ctx, w.done); err != nil {
		w.mu.Lock()
		if !w.closed {
			w.held--
			w.signalLocked()
		}
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.ctrl.releaseSession(1)
		return ErrWindowClosed
	}
	w.charged++
	return nil
}

// Release 归还一个单位
//
// 窗口已关闭或没有占用时不做任何事。
func (w *Window) Release() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.held == 0 {
		return
	}
	w.held--
	if w.charged > 0 {
		w.charged--
		w.ctrl.releaseSession(1)
	}
	w.signalLocked()
}

// Finish 标记发送方不再发送
//
// 之后所有已占用的单位归还时 Drained 关闭。
func (w *Window) Finish() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.finished {
		return
	}
	w.finished = true
	w.signalLocked()
}

// Drained 发送方已结束且在途数据全部写出时关闭
func (w *Window) Drained() <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.drained
}

// Done 窗口关闭时关闭
func (w *Window) Done() <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.done
}

// Held 返回已占用的单位数
func (w *Window) Held() int {
	if w == nil {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.held
}

// close 关闭窗口并归还会话单位，可重复调用
func (w *Window) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	if w.charged > 0 {
		w.ctrl.releaseSession(w.charged)
	}
	w.charged = 0
	w.held = 0
	close(w.done)
	close(w.wake)
}

// signalLocked 唤醒等待者，调用方持有 w.mu
func (w *Window) signalLocked() {
	close(w.wake)
	w.wake = make(chan struct{})
	if w.finished && w.held == 0 && !w.isDrained {
		w.isDrained = true
		close(w.drained)
	}
}
