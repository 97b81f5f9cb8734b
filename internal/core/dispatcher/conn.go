package dispatcher

import (
	"net"
	"sync"

	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// clientConn 一个客户端连接
//
// 写入由独立的写协程完成，Actor 只把发送指令放入有界队列。
// 队列长度等于下行流窗口，正常流量不会写满。
type clientConn struct {
	key    types.StreamKey
	conn   net.Conn
	flow   flow.Windows
	writes chan types.TransmitDataMsg

	done chan struct{}
	once sync.Once
}

func newClientConn(key types.StreamKey, conn net.Conn, ws flow.Windows, backlog int) *clientConn {
	return &clientConn{
		key:    key,
		conn:   conn,
		flow:   ws,
		writes: make(chan types.TransmitDataMsg, backlog),
		done:   make(chan struct{}),
	}
}

// enqueue 非阻塞入队
func (c *clientConn) enqueue(msg types.TransmitDataMsg) error {
	select {
	case <-c.done:
		return net.ErrClosed
	default:
	}
	select {
	case c.writes <- msg:
		return nil
	default:
		return ErrWriteBacklogFull
	}
}

// close 关闭连接，可重复调用
func (c *clientConn) close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}
