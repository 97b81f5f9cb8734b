package proxyclient

import (
	"context"
	"net"
	"sync"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// streamBacklog 每个流的待写队列长度，不小于任何上行流窗口
const streamBacklog = config.MaxStreamWindow

// streamID 流标识：同一个 StreamKey 可能来自不同网关
type streamID struct {
	originator string
	key        types.StreamKey
}

func newStreamID(p *types.ClientRequestPayload) streamID {
	return streamID{originator: string(p.OriginatorPublicKey), key: p.StreamKey}
}

// chunk 一次待写数据
type chunk struct {
	data []byte
	last bool
}

// stream 一个上游连接
type stream struct {
	id         streamID
	target     string
	route      types.Route
	originator types.PublicKey
	flow       flow.Windows

	writes chan chunk
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	conn     net.Conn
	once     sync.Once
	err      error
	finished sync.Once
}

func newStream(parent context.Context, id streamID, target string, route types.Route, originator types.PublicKey, ws flow.Windows) *stream {
	ctx, cancel := context.WithCancel(parent)
	return &stream{
		id:         id,
		target:     target,
		route:      route,
		originator: originator.Clone(),
		flow:       ws,
		writes:     make(chan chunk, streamBacklog),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// enqueue 非阻塞入队
func (s *stream) enqueue(c chunk) error {
	select {
	case <-s.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case s.writes <- c:
		return nil
	default:
		return ErrBacklogFull
	}
}

func (s *stream) setConn(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.conn = c
	return true
}

// close 关闭连接，可重复调用
func (s *stream) close() error {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.conn != nil {
			s.err = s.conn.Close()
		}
	})
	return s.err
}

// closeWrite 半关闭写方向
func closeWrite(c net.Conn) error {
	if cw, ok := c.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}
