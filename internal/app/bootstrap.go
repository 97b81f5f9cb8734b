// Package app 提供 proxygate 应用编排层
//
// app 包负责：
// - fx 模块组装
// - Actor 之间的绑定
// - 生命周期管理
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/dispatcher"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
)

var logger = log.Logger("proxygate/app")

const (
	// startTimeout fx 启动超时
	startTimeout = 30 * time.Second

	// stopTimeout fx 停止超时
	stopTimeout = 30 * time.Second
)

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
// - 应用日志配置
// - 组装 fx 模块
// - 管理应用生命周期
type Bootstrap struct {
	config  *config.Config
	extra   []fx.Option
	fxApp   *fx.App
	logFile io.Closer

	cryptde    pkgif.CryptDE
	dispatcher *dispatcher.Actor
}

// NewBootstrap 创建引导程序
func NewBootstrap(cfg *config.Config, opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{config: cfg}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 构建节点（不启动）
func (b *Bootstrap) Build() (*Runtime, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	// 应用日志配置（必须在所有模块初始化之前）
	if err := b.setupLogging(); err != nil {
		return nil, fmt.Errorf("设置日志失败: %w", err)
	}

	b.fxApp = fx.New(
		fx.Options(b.setupModules()...),
		fx.Options(b.extra...),
		fx.WithLogger(b.fxLogger),
		fx.Populate(&b.cryptde, &b.dispatcher),
	)
	if err := b.fxApp.Err(); err != nil {
		b.closeLogFile()
		return nil, fmt.Errorf("组装模块失败: %w", err)
	}

	return &Runtime{
		CryptDE:    b.cryptde,
		Dispatcher: b.dispatcher,
		stop:       b.Stop,
	}, nil
}

// Start 构建并启动节点
func (b *Bootstrap) Start(ctx context.Context) (*Runtime, error) {
	rt, err := b.Build()
	if err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := b.fxApp.Start(startCtx); err != nil {
		b.closeLogFile()
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}
	logger.Info("节点已启动", "publicKey", b.cryptde.PublicKey().String(), "listeners", len(b.dispatcher.Addrs()))
	return rt, nil
}

// Stop 停止应用
func (b *Bootstrap) Stop(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	err := b.fxApp.Stop(stopCtx)
	b.closeLogFile()
	return err
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	modules := []fx.Option{
		// 配置
		fx.Supply(b.config),

		// 基础层: 加密引擎、路由、流控、指标
		FoundationModules(),
	}

	// 请求处理组件
	if b.config.ProxyClient.Enable {
		modules = append(modules, ProxyClientModule())
	}

	// 本地 Actor: Dispatcher、Hopper、ProxyServer
	// fx 按相反顺序停止，ProxyServer 最先停止，不会向已关闭的邮箱投递
	modules = append(modules, ActorModules())

	// 绑定必须最后装配，保证所有 Actor 已经启动
	modules = append(modules, BindModule())
	return modules
}

// setupLogging 按配置重建默认 logger
//
// 如果指定了 File，日志追加写入该文件。
func (b *Bootstrap) setupLogging() error {
	cfg := b.config.Log
	level, _ := log.ParseLevel(cfg.Level)

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
		b.logFile = file
		w = file
	}

	log.Setup(w, level, log.Format(cfg.Format))
	if cfg.File != "" {
		logger.Info("日志文件初始化成功", "path", cfg.File)
	}
	return nil
}

// fxLogger debug 级别时输出 fx 装配事件
func (b *Bootstrap) fxLogger() fxevent.Logger {
	if level, _ := log.ParseLevel(b.config.Log.Level); level == log.LevelDebug {
		if z, err := zap.NewDevelopment(); err == nil {
			return &fxevent.ZapLogger{Logger: z}
		}
	}
	return &fxevent.ZapLogger{Logger: zap.NewNop()}
}

func (b *Bootstrap) closeLogFile() {
	if b.logFile != nil {
		_ = b.logFile.Close()
		b.logFile = nil
	}
}
