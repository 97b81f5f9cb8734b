// Package main 提供 proxygate 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-proxygate"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
)

var logger = log.Logger("proxygate/cmd")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	if f.showVersion {
		printVersion()
		return nil
	}

	cfg, err := buildConfig(f, os.Getenv)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("启动 proxygate 节点", "version", proxygate.Version, "commit", proxygate.GitCommit, "buildDate", proxygate.BuildDate)

	node, err := proxygate.Start(ctx, proxygate.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		if err := node.Close(); err != nil {
			logger.Error("关闭节点失败", "error", err)
		}
	}()

	printNodeInfo(node)

	<-ctx.Done()
	fmt.Println("\n正在关闭节点...")
	return nil
}

// printNodeInfo 打印节点公钥和监听地址
func printNodeInfo(node *proxygate.Node) {
	fmt.Println()
	fmt.Printf("proxygate %s\n", proxygate.Version)
	fmt.Printf("  public key: %s\n", node.PublicKey())
	cfg := node.Config()
	for i, addr := range node.ListenAddrs() {
		origin := uint16(0)
		if i < len(cfg.Dispatcher.Listeners) {
			origin = cfg.Dispatcher.Listeners[i].OriginPort
		}
		fmt.Printf("  listening:  %s (origin port %d)\n", addr, origin)
	}
	if cfg.Metrics.Enable && cfg.Metrics.ListenAddr != "" {
		fmt.Printf("  metrics:    http://%s/metrics\n", cfg.Metrics.ListenAddr)
	}
	fmt.Println()
	fmt.Println("节点已启动，按 Ctrl+C 退出")
}

func printVersion() {
	fmt.Println(proxygate.VersionInfo())
}
