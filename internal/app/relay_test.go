package app

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-proxygate/config"
)

// tightConfig 邮箱很小的配置：没有流控时几百个数据块就会写满邮箱
func tightConfig() *config.Config {
	cfg := testConfig()
	cfg.Dispatcher.MailboxCapacity = 32
	cfg.ProxyServer.MailboxCapacity = 32
	cfg.Hopper.MailboxCapacity = 32
	cfg.ProxyClient.MailboxCapacity = 32
	cfg.Flow = config.FlowConfig{StreamWindow: 4, SessionWindow: 16}
	return cfg
}

// rawUpstream 每个连接读完请求头后交给 serve 处理
func rawUpstream(t *testing.T, serve func(r *bufio.Reader, c net.Conn)) (addr string, accepted chan struct{}, closed chan struct{}) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	accepted = make(chan struct{}, 4)
	closed = make(chan struct{}, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			accepted <- struct{}{}
			go func(c net.Conn) {
				defer func() {
					_ = c.Close()
					closed <- struct{}{}
				}()
				r := bufio.NewReader(c)
				for {
					line, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if line == "\r\n" {
						break
					}
				}
				serve(r, c)
			}(conn)
		}
	}()
	return ln.Addr().String(), accepted, closed
}

func dialGateway(t *testing.T, rt *Runtime) net.Conn {
	t.Helper()
	addrs := rt.ListenAddrs()
	require.Len(t, addrs, 1)
	conn, err := net.DialTimeout("tcp", addrs[0].String(), testTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(testTimeout):
		t.Fatal(what)
	}
}

// ============================================================================
//                              背压
// ============================================================================

// TestRelay_LargeDownloadToSlowClient 测试大响应送给暂不读取的客户端时节点不崩溃且数据完整
func TestRelay_LargeDownloadToSlowClient(t *testing.T) {
	const size = 8 << 20
	body := bytes.Repeat([]byte("0123456789abcdef"), size/16)
	addr, _, _ := rawUpstream(t, func(_ *bufio.Reader, c net.Conn) {
		_, _ = c.Write(body)
	})

	rt := startRuntime(t, tightConfig())
	conn := dialGateway(t, rt)

	_, err := fmt.Fprintf(conn, "GET /big HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)

	// 先不读取，让上游数据堆积在整条路径上
	time.Sleep(500 * time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))
	var got bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		got.Write(buf[:n])
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, size, got.Len())
	assert.True(t, bytes.Equal(body, got.Bytes()))
}

// TestRelay_LargeUploadHalfClose 测试大请求经过慢上游时节点不崩溃，客户端半关闭传到上游
func TestRelay_LargeUploadHalfClose(t *testing.T) {
	const size = 8 << 20
	addr, _, _ := rawUpstream(t, func(r *bufio.Reader, c net.Conn) {
		time.Sleep(300 * time.Millisecond)
		n, _ := io.Copy(io.Discard, r)
		fmt.Fprintf(c, "got %d", n)
	})

	rt := startRuntime(t, tightConfig())
	conn := dialGateway(t, rt)

	_, err := fmt.Fprintf(conn, "POST /upload HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)
	_, err = conn.Write(bytes.Repeat([]byte{'x'}, size))
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))
	resp, err := io.ReadAll(conn)
	require.NoError(t, err)
	assert.Equal(t, "got "+strconv.Itoa(size), string(resp))
}

// ============================================================================
//                              流结束
// ============================================================================

// TestRelay_EvictedStreamClosesClient 测试上游流被挤出时客户端连接随之关闭
func TestRelay_EvictedStreamClosesClient(t *testing.T) {
	addr, accepted, _ := rawUpstream(t, func(r *bufio.Reader, _ net.Conn) {
		_, _ = io.Copy(io.Discard, r)
	})

	cfg := testConfig()
	cfg.ProxyClient.MaxStreams = 1
	rt := startRuntime(t, cfg)

	first := dialGateway(t, rt)
	_, err := fmt.Fprintf(first, "GET /a HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)
	waitSignal(t, accepted, "upstream did not accept first stream")

	second := dialGateway(t, rt)
	_, err = fmt.Fprintf(second, "GET /b HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(testTimeout)))
	resp, err := io.ReadAll(first)
	require.NoError(t, err, "first client should see EOF after eviction")
	assert.Empty(t, resp)
}

// TestRelay_ClientResetClosesUpstream 测试客户端异常断开时上游连接随之关闭
func TestRelay_ClientResetClosesUpstream(t *testing.T) {
	addr, accepted, closed := rawUpstream(t, func(r *bufio.Reader, _ net.Conn) {
		_, _ = io.Copy(io.Discard, r)
	})

	rt := startRuntime(t, testConfig())
	conn := dialGateway(t, rt)
	_, err := fmt.Fprintf(conn, "GET / HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)
	waitSignal(t, accepted, "upstream did not accept")

	require.NoError(t, conn.(*net.TCPConn).SetLinger(0))
	require.NoError(t, conn.Close())
	waitSignal(t, closed, "upstream connection not closed after client reset")
}

// TestRelay_UnknownHostClosesClient 测试无法确定目标主机时客户端连接被关闭
func TestRelay_UnknownHostClosesClient(t *testing.T) {
	rt := startRuntime(t, testConfig())
	conn := dialGateway(t, rt)

	_, err := conn.Write([]byte("GET / HTTP/1.1\r\nAccept: */*\r\n\r\n"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(testTimeout)))
	resp, err := io.ReadAll(conn)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(resp), "HTTP"))
}
