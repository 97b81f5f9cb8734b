package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// App proxygate 应用接口
//
// App 提供进程级别的生命周期管理
type App interface {
	// Runtime 返回底层运行时
	Runtime() *Runtime

	// Wait 等待应用收到退出信号
	Wait()

	// Stop 停止应用
	Stop() error
}

// internalApp App 的内部实现
type internalApp struct {
	bootstrap *Bootstrap
	runtime   *Runtime
	stopOnce  sync.Once
	stopped   chan struct{}
}

// RunApp 运行 proxygate 应用
//
// 示例:
//
//	app, err := app.RunApp(ctx, app.NewBootstrap(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.Wait()
func RunApp(ctx context.Context, bootstrap *Bootstrap) (App, error) {
	rt, err := bootstrap.Start(ctx)
	if err != nil {
		return nil, err
	}

	return &internalApp{
		bootstrap: bootstrap,
		runtime:   rt,
		stopped:   make(chan struct{}),
	}, nil
}

// Runtime 返回底层运行时
func (a *internalApp) Runtime() *Runtime {
	return a.runtime
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		logger.Info("收到信号，正在退出", "signal", sig.String())
	case <-a.stopped:
		return
	}

	if err := a.Stop(); err != nil {
		logger.Error("停止应用失败", "error", err)
	}
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		close(a.stopped)
		if stopErr := a.bootstrap.Stop(context.Background()); stopErr != nil {
			err = fmt.Errorf("停止 bootstrap 失败: %w", stopErr)
		}
	})
	return err
}
