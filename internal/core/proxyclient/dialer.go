package proxyclient

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"golang.org/x/net/proxy"

	"github.com/dep2p/go-proxygate/config"
)

// NewDialer 按配置创建上游拨号器
//
// 配置了 upstream_proxy 时经该代理连接，否则直连。
func NewDialer(cfg config.ProxyClientConfig) (proxy.ContextDialer, error) {
	direct := &net.Dialer{Timeout: cfg.DialTimeout.Duration()}
	if cfg.UpstreamProxy == "" {
		return direct, nil
	}

	u, err := url.Parse(cfg.UpstreamProxy)
	if err != nil {
		return nil, fmt.Errorf("parse upstream proxy: %w", err)
	}
	d, err := proxy.FromURL(u, direct)
	if err != nil {
		return nil, fmt.Errorf("upstream proxy: %w", err)
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd, nil
	}
	return contextDialer{d}, nil
}

// contextDialer 为不支持 context 的拨号器补上 DialContext
type contextDialer struct {
	proxy.Dialer
}

func (d contextDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := d.Dial(network, addr)
		ch <- result{c, err}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// targetAddress 组合目标地址
//
// 主机名已带端口时原样使用。
func targetAddress(hostname string, port uint16) string {
	if _, _, err := net.SplitHostPort(hostname); err == nil {
		return hostname
	}
	return net.JoinHostPort(hostname, strconv.Itoa(int(port)))
}
