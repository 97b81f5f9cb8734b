package cryptde

import (
	"bytes"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// NullCryptDE 不加密的加密引擎
//
// Encode 把目标公钥作为前缀拼在明文前，Decode 校验并去掉本节点公钥前缀。
// 输出是确定性的，测试可以直接比较构造出的包。
type NullCryptDE struct {
	publicKey types.PublicKey
}

var _ pkgif.CryptDE = (*NullCryptDE)(nil)

// NewNullCryptDE 创建 NullCryptDE
func NewNullCryptDE(publicKey types.PublicKey) *NullCryptDE {
	return &NullCryptDE{publicKey: publicKey.Clone()}
}

// PublicKey 返回本节点公钥
func (c *NullCryptDE) PublicKey() types.PublicKey {
	return c.publicKey.Clone()
}

// Encode 为 key 封装数据
func (c *NullCryptDE) Encode(key types.PublicKey, data types.PlainData) (types.CryptData, error) {
	if key.IsEmpty() {
		return nil, ErrEmptyKey
	}
	out := make(types.CryptData, 0, len(key)+len(data))
	out = append(out, key...)
	out = append(out, data...)
	return out, nil
}

// Decode 解开发给本节点的数据
func (c *NullCryptDE) Decode(data types.CryptData) (types.PlainData, error) {
	if !bytes.HasPrefix(data, c.publicKey) {
		return nil, ErrDecryptionFailed
	}
	return append(types.PlainData(nil), data[len(c.publicKey):]...), nil
}
