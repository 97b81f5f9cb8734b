package sniffer

import (
	"github.com/dep2p/go-proxygate/pkg/types"
)

// recordTypeHandshake TLS Handshake 记录的内容类型
const recordTypeHandshake = 0x16

// Result 嗅探结果
type Result struct {
	// Protocol 客户端协议
	Protocol types.ProxyProtocol

	// Hostname 目标主机名，空字符串表示未知
	Hostname string
}

// HasHostname 检查是否嗅探出主机名
func (r Result) HasHostname() bool {
	return r.Hostname != ""
}

// String 返回可读表示
func (r Result) String() string {
	if r.Hostname == "" {
		return r.Protocol.String() + "(?)"
	}
	return r.Protocol.String() + "(" + r.Hostname + ")"
}

// Classify 判断协议并提取目标主机名
//
// 总会返回结果；空输入按 HTTP 处理且没有主机名。
func Classify(data []byte) Result {
	if len(data) > 0 && data[0] == recordTypeHandshake {
		return Result{Protocol: types.ProtocolTLS, Hostname: tlsServerName(data)}
	}
	return Result{Protocol: types.ProtocolHTTP, Hostname: httpHost(data)}
}
