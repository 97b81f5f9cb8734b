package mocks

import (
	"bytes"
	"errors"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// MockCryptDE 模拟 CryptDE 接口实现
//
// 默认行为：Encode 返回 key||data，Decode 去掉本节点公钥前缀。
type MockCryptDE struct {
	// PublicKeyValue 本节点公钥
	PublicKeyValue types.PublicKey

	// 可覆盖的方法
	PublicKeyFunc func() types.PublicKey
	EncodeFunc    func(key types.PublicKey, data types.PlainData) (types.CryptData, error)
	DecodeFunc    func(data types.CryptData) (types.PlainData, error)

	// 调用记录
	EncodeCalls []EncodeCall
}

// EncodeCall 记录一次 Encode 调用
type EncodeCall struct {
	Key  types.PublicKey
	Data types.PlainData
}

var _ pkgif.CryptDE = (*MockCryptDE)(nil)

// NewMockCryptDE 创建带有默认值的 MockCryptDE
func NewMockCryptDE(key types.PublicKey) *MockCryptDE {
	return &MockCryptDE{PublicKeyValue: key}
}

// PublicKey 返回公钥
func (m *MockCryptDE) PublicKey() types.PublicKey {
	if m.PublicKeyFunc != nil {
		return m.PublicKeyFunc()
	}
	return m.PublicKeyValue
}

// Encode 加密数据
func (m *MockCryptDE) Encode(key types.PublicKey, data types.PlainData) (types.CryptData, error) {
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{Key: key, Data: data})
	if m.EncodeFunc != nil {
		return m.EncodeFunc(key, data)
	}
	out := append(types.CryptData(nil), key...)
	return append(out, data...), nil
}

// Decode 解密数据
func (m *MockCryptDE) Decode(data types.CryptData) (types.PlainData, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	if !bytes.HasPrefix(data, m.PublicKeyValue) {
		return nil, errors.New("mock: not for this key")
	}
	return append(types.PlainData(nil), data[len(m.PublicKeyValue):]...), nil
}
