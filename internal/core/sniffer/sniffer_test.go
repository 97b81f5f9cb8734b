package sniffer

import (
	"crypto/tls"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-proxygate/pkg/types"
)

// minimalClientHello 最小 ClientHello，记录和握手长度字段为 0（嗅探不校验）
func minimalClientHello(host string) []byte {
	name := []byte(host)
	listLen := 1 + 2 + len(name)
	extLen := 2 + listLen

	b := []byte{
		0x16,                   // 记录类型: Handshake
		0x00, 0x00, 0x00, 0x00, // 版本和长度: 不关心
		0x01,                   // 握手类型: ClientHello
		0x00, 0x00, 0x00,       // 握手长度: 不关心
		0x00, 0x00,             // 客户端版本: 不关心
	}
	b = append(b, make([]byte, 32)...) // random
	b = append(b,
		0x00,       // session id 长度
		0x00, 0x00, // cipher suites 长度
		0x00, // compression methods 长度
	)
	total := 4 + extLen
	b = append(b, byte(total>>8), byte(total))
	b = append(b,
		0x00, 0x00, // 扩展类型: server_name
		byte(extLen>>8), byte(extLen),
		byte(listLen>>8), byte(listLen),
		0x00, // name type: host_name
		byte(len(name)>>8), byte(len(name)),
	)
	return append(b, name...)
}

// ============================================================================
//                              TLS
// ============================================================================

// TestClassify_TLSWithSNI 测试从 ClientHello 中读取主机名
func TestClassify_TLSWithSNI(t *testing.T) {
	data := minimalClientHello("server.com")

	// 扩展块长度 0x0013
	require.Equal(t, []byte{0x00, 0x13}, data[5+4+2+32+4:5+4+2+32+6])

	r := Classify(data)
	assert.Equal(t, types.ProtocolTLS, r.Protocol)
	assert.Equal(t, "server.com", r.Hostname)
	assert.Equal(t, "TLS(server.com)", r.String())
}

// TestClassify_NotClientHello 测试非 ClientHello 握手
func TestClassify_NotClientHello(t *testing.T) {
	tests := [][]byte{
		{0x16, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00},
		{0x16},
		{0x16, 0x03, 0x01},
	}
	for _, data := range tests {
		r := Classify(data)
		assert.Equal(t, types.ProtocolTLS, r.Protocol)
		assert.False(t, r.HasHostname())
	}
}

// TestClassify_TLSTruncated 测试任意位置截断都不会 panic，也没有主机名
func TestClassify_TLSTruncated(t *testing.T) {
	full := minimalClientHello("server.com")
	for n := 1; n < len(full); n++ {
		r := Classify(full[:n])
		assert.Equal(t, types.ProtocolTLS, r.Protocol, "prefix %d", n)
		assert.Empty(t, r.Hostname, "prefix %d", n)
	}
}

// TestClassify_TLSOtherExtensionsFirst 测试跳过 server_name 之前的扩展
func TestClassify_TLSOtherExtensionsFirst(t *testing.T) {
	hello := minimalClientHello("example.org")
	head := hello[:5+4+2+32+4]
	exts := hello[len(head)+2:]

	other := []byte{0x00, 0x0a, 0x00, 0x04, 0x00, 0x02, 0x00, 0x1d} // supported_groups
	allExts := append(append([]byte{}, other...), exts...)

	data := append(append([]byte{}, head...), byte(len(allExts)>>8), byte(len(allExts)))
	data = append(data, allExts...)

	assert.Equal(t, "example.org", Classify(data).Hostname)
}

// TestClassify_TLSNoServerName 测试没有 server_name 扩展
func TestClassify_TLSNoServerName(t *testing.T) {
	hello := minimalClientHello("x")
	head := hello[:5+4+2+32+4]
	data := append(append([]byte{}, head...), 0x00, 0x00)

	r := Classify(data)
	assert.Equal(t, types.ProtocolTLS, r.Protocol)
	assert.Empty(t, r.Hostname)
}

// TestClassify_RealClientHello 测试 crypto/tls 生成的 ClientHello
func TestClassify_RealClientHello(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		conn := tls.Client(client, &tls.Config{ServerName: "relay.example.net", InsecureSkipVerify: true}) //nolint:gosec // 仅用于生成 ClientHello
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
		_ = conn.Handshake()
		_ = client.Close()
	}()

	buf := make([]byte, 16*1024)
	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	n, err := server.Read(buf)
	require.NoError(t, err)

	r := Classify(buf[:n])
	assert.Equal(t, types.ProtocolTLS, r.Protocol)
	assert.Equal(t, "relay.example.net", r.Hostname)
}

// ============================================================================
//                              HTTP
// ============================================================================

// TestClassify_HTTP 测试 Host 行扫描
func TestClassify_HTTP(t *testing.T) {
	tests := []struct {
		name string
		data string
		host string
	}{
		{"simple", "GET /index.html HTTP/1.1\r\nHost: nowhere.com\r\n\r\n", "nowhere.com"},
		{"case insensitive", "GET / HTTP/1.1\r\nhOsT:   nowhere.com  \r\n\r\n", "nowhere.com"},
		{"keeps port", "GET / HTTP/1.1\r\nHost: nowhere.com:8080\r\n\r\n", "nowhere.com:8080"},
		{"after other headers", "POST / HTTP/1.1\r\nAccept: */*\r\nHost: a.b\r\n\r\nbody", "a.b"},
		{"no host", "GET / HTTP/1.1\r\nAccept: */*\r\n\r\n", ""},
		{"host in body", "GET / HTTP/1.1\r\n\r\nHost: nowhere.com\r\n", ""},
		{"unterminated", "GET / HTTP/1.1\r\nHost: nowhere.com", ""},
		{"bare LF", "GET / HTTP/1.1\nHost: nowhere.com\n\n", ""},
		{"empty value", "GET / HTTP/1.1\r\nHost:\r\n\r\n", ""},
		{"similar name", "GET / HTTP/1.1\r\nHostname: x\r\nHost: y\r\n\r\n", "y"},
		{"empty", "", ""},
		{"binary", "\xff\xfe\x00\x01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify([]byte(tt.data))
			assert.Equal(t, types.ProtocolHTTP, r.Protocol)
			assert.Equal(t, tt.host, r.Hostname)
		})
	}
}

// TestClassify_ContentDriven 测试判定只取决于首字节
func TestClassify_ContentDriven(t *testing.T) {
	assert.Equal(t, types.ProtocolHTTP, Classify([]byte{0xFF, 0x16}).Protocol)
	assert.Equal(t, types.ProtocolTLS, Classify([]byte{0x16, 'G', 'E', 'T'}).Protocol)
}
