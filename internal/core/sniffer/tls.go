package sniffer

import (
	"unicode/utf8"

	"golang.org/x/crypto/cryptobyte"
)

const (
	handshakeTypeClientHello = 0x01
	extensionServerName      = 0x0000
)

// tlsServerName 从 TLS 记录中读取 SNI 主机名
//
// 记录头和握手头中的长度字段不做校验，只按位置跳过：
// 首块数据可能只是 ClientHello 的一部分。
// 只读取 server_name 列表的第一项。
func tlsServerName(data []byte) string {
	s := cryptobyte.String(data)

	// 记录头: type(1) version(2) length(2)
	var handshakeType uint8
	if !s.Skip(5) || !s.ReadUint8(&handshakeType) {
		return ""
	}
	if handshakeType != handshakeTypeClientHello {
		return ""
	}

	// 握手长度(3) 客户端版本(2) random(32)
	var sessionID, cipherSuites, compression, extensions cryptobyte.String
	if !s.Skip(3+2+32) ||
		!s.ReadUint8LengthPrefixed(&sessionID) ||
		!s.ReadUint16LengthPrefixed(&cipherSuites) ||
		!s.ReadUint8LengthPrefixed(&compression) ||
		!s.ReadUint16LengthPrefixed(&extensions) {
		return ""
	}

	for !extensions.Empty() {
		var extType uint16
		var ext cryptobyte.String
		if !extensions.ReadUint16(&extType) || !extensions.ReadUint16LengthPrefixed(&ext) {
			return ""
		}
		if extType != extensionServerName {
			continue
		}

		var list, name cryptobyte.String
		var nameType uint8
		if !ext.ReadUint16LengthPrefixed(&list) ||
			!list.ReadUint8(&nameType) ||
			!list.ReadUint16LengthPrefixed(&name) {
			return ""
		}
		if !utf8.Valid(name) {
			return ""
		}
		return string(name)
	}
	return ""
}
