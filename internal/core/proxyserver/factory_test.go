package proxyserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-proxygate/internal/core/cryptde"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var testStreamKey = types.MustParseStreamKey("1.2.3.4:5678")

// tlsClientHello 最小 ClientHello，SNI 为 server.com
var tlsClientHello = []byte{
	0x16,                   // content type
	0x00, 0x00, 0x00, 0x00, // version, length: don't care
	0x01,                   // handshake type: ClientHello
	0x00, 0x00, 0x00, 0x00, 0x00, // length, version: don't care
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // random
	0x00,       // session id length
	0x00, 0x00, // cipher suites length
	0x00,       // compression methods length
	0x00, 0x13, // extensions length
	0x00, 0x00, // extension type: server_name
	0x00, 0x0F, // extension length
	0x00, 0x0D, // server name list length
	0x00,       // name type: host_name
	0x00, 0x0A, // name length
	's', 'e', 'r', 'v', 'e', 'r', '.', 'c', 'o', 'm',
}

// TestFactory_Make 测试请求载荷构造
func TestFactory_Make(t *testing.T) {
	me := types.PublicKey("me")
	c := cryptde.NewNullCryptDE(me)
	f := NewClientRequestPayloadFactory()

	tests := []struct {
		name     string
		msg      types.InboundClientData
		protocol types.ProxyProtocol
		host     string
		port     uint16
	}{
		{
			name: "http with host",
			msg: types.InboundClientData{
				StreamKey:  testStreamKey,
				OriginPort: 80,
				LastData:   true,
				Data:       []byte("GET /index.html HTTP/1.1\r\nHost: nowhere.com\r\n\r\n"),
			},
			protocol: types.ProtocolHTTP,
			host:     "nowhere.com",
			port:     80,
		},
		{
			name: "tls with sni",
			msg: types.InboundClientData{
				StreamKey:  testStreamKey,
				OriginPort: 443,
				Data:       tlsClientHello,
			},
			protocol: types.ProtocolTLS,
			host:     "server.com",
			port:     443,
		},
		{
			name: "tls not client hello",
			msg: types.InboundClientData{
				StreamKey:  testStreamKey,
				OriginPort: 443,
				Data:       []byte{0x16, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00},
			},
			protocol: types.ProtocolTLS,
			port:     443,
		},
		{
			name: "http without host keeps origin port",
			msg: types.InboundClientData{
				StreamKey:  testStreamKey,
				OriginPort: 443,
				Data:       []byte{0xFF},
			},
			protocol: types.ProtocolHTTP,
			port:     443,
		},
		{
			name: "nonstandard port",
			msg: types.InboundClientData{
				StreamKey:  testStreamKey,
				OriginPort: 8443,
				Data:       tlsClientHello,
			},
			protocol: types.ProtocolTLS,
			host:     "server.com",
			port:     8443,
		},
		{
			name: "no origin port uses http default",
			msg: types.InboundClientData{
				StreamKey: testStreamKey,
				Data:      []byte("GET / HTTP/1.1\r\n\r\n"),
			},
			protocol: types.ProtocolHTTP,
			port:     80,
		},
		{
			name: "no origin port uses tls default",
			msg: types.InboundClientData{
				StreamKey: testStreamKey,
				Data:      tlsClientHello,
			},
			protocol: types.ProtocolTLS,
			host:     "server.com",
			port:     443,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := f.Make(tt.msg, c)
			require.True(t, ok)

			assert.Equal(t, tt.protocol, p.Protocol)
			assert.Equal(t, tt.host, p.TargetHostname)
			assert.Equal(t, tt.port, p.TargetPort)
			assert.Equal(t, tt.msg.StreamKey, p.StreamKey)
			assert.Equal(t, tt.msg.LastData, p.LastData)
			assert.Equal(t, types.PlainData(tt.msg.Data), p.Data)
			assert.Equal(t, me, p.OriginatorPublicKey)
		})
	}
}

// TestFactory_EmptyData 测试空数据无法构造载荷
func TestFactory_EmptyData(t *testing.T) {
	f := NewClientRequestPayloadFactory()
	p, ok := f.Make(types.InboundClientData{StreamKey: testStreamKey, OriginPort: 80}, cryptde.NewNullCryptDE(types.PublicKey("me")))
	assert.False(t, ok)
	assert.Nil(t, p)
}

// TestFactory_CopiesData 测试载荷不与输入共享底层数组
func TestFactory_CopiesData(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\n\r\n")
	p, ok := NewClientRequestPayloadFactory().Make(
		types.InboundClientData{StreamKey: testStreamKey, Data: data},
		cryptde.NewNullCryptDE(types.PublicKey("me")))
	require.True(t, ok)

	data[0] = 'X'
	assert.Equal(t, byte('G'), p.Data[0])
}
