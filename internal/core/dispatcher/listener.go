package dispatcher

import (
	"context"
	"errors"
	"net"

	"golang.org/x/time/rate"

	"github.com/dep2p/go-proxygate/config"
)

// listener 一个客户端监听器
type listener struct {
	ln         net.Listener
	originPort uint16
	limiter    *rate.Limiter
}

func newListener(cfg config.ListenerConfig, dcfg config.DispatcherConfig) (*listener, error) {
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, err
	}

	origin := cfg.OriginPort
	if origin == 0 {
		if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
			origin = uint16(tcp.Port)
		}
	}

	l := &listener{ln: ln, originPort: origin}
	if dcfg.AcceptRate > 0 {
		burst := dcfg.AcceptBurst
		if burst <= 0 {
			burst = 1
		}
		l.limiter = rate.NewLimiter(rate.Limit(dcfg.AcceptRate), burst)
	}
	return l, nil
}

// accept 等待限速令牌后接受连接
func (l *listener) accept(ctx context.Context) (net.Conn, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return l.ln.Accept()
}

func (l *listener) close() error {
	err := l.ln.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
