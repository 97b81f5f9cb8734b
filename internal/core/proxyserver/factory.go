package proxyserver

import (
	"github.com/dep2p/go-proxygate/internal/core/sniffer"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// ClientRequestPayloadFactory 把客户端数据转换为请求载荷
type ClientRequestPayloadFactory struct{}

// NewClientRequestPayloadFactory 创建工厂
func NewClientRequestPayloadFactory() *ClientRequestPayloadFactory {
	return &ClientRequestPayloadFactory{}
}

// Make 构造请求载荷
//
// 空数据无法嗅探，返回 false；其余输入都会得到载荷，最多缺少主机名。
// 目标端口取监听器声明的来源端口，未声明时按协议取默认端口。
func (f *ClientRequestPayloadFactory) Make(msg types.InboundClientData, cryptde pkgif.CryptDE) (*types.ClientRequestPayload, bool) {
	if len(msg.Data) == 0 {
		return nil, false
	}

	sniffed := sniffer.Classify(msg.Data)
	port := msg.OriginPort
	if !msg.HasOriginPort() {
		port = sniffed.Protocol.DefaultPort()
	}

	return &types.ClientRequestPayload{
		StreamKey:           msg.StreamKey,
		LastData:            msg.LastData,
		Data:                append(types.PlainData(nil), msg.Data...),
		TargetHostname:      sniffed.Hostname,
		TargetPort:          port,
		Protocol:            sniffed.Protocol,
		OriginatorPublicKey: cryptde.PublicKey(),
	}, true
}
