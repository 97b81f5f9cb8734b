package cryptde

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// KeySize curve25519 密钥长度
const KeySize = 32

// BoxCryptDE 基于 NaCl 匿名密封盒的加密引擎
//
// 发送方不需要自己的密钥对：每次 Encode 使用一次性临时密钥，
// 只有目标公钥的持有者能够打开。
type BoxCryptDE struct {
	publicKey  [KeySize]byte
	privateKey [KeySize]byte
	rand       io.Reader
}

var _ pkgif.CryptDE = (*BoxCryptDE)(nil)

// GenerateBoxCryptDE 生成新的密钥对
func GenerateBoxCryptDE() (*BoxCryptDE, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}
	return &BoxCryptDE{publicKey: *pub, privateKey: *priv, rand: rand.Reader}, nil
}

// NewBoxCryptDE 从私钥创建加密引擎，公钥由私钥派生
func NewBoxCryptDE(privateKey []byte) (*BoxCryptDE, error) {
	if len(privateKey) != KeySize {
		return nil, ErrInvalidKey
	}
	pub, err := curve25519.X25519(privateKey, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	c := &BoxCryptDE{rand: rand.Reader}
	copy(c.privateKey[:], privateKey)
	copy(c.publicKey[:], pub)
	return c, nil
}

// PublicKey 返回本节点公钥
func (c *BoxCryptDE) PublicKey() types.PublicKey {
	return append(types.PublicKey(nil), c.publicKey[:]...)
}

// PrivateKey 返回私钥副本（用于持久化）
func (c *BoxCryptDE) PrivateKey() []byte {
	return append([]byte(nil), c.privateKey[:]...)
}

// Encode 为 key 封装数据
func (c *BoxCryptDE) Encode(key types.PublicKey, data types.PlainData) (types.CryptData, error) {
	if key.IsEmpty() {
		return nil, ErrEmptyKey
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	var recipient [KeySize]byte
	copy(recipient[:], key)

	sealed, err := box.SealAnonymous(nil, data, &recipient, c.rand)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	return types.CryptData(sealed), nil
}

// Decode 解开发给本节点的数据
func (c *BoxCryptDE) Decode(data types.CryptData) (types.PlainData, error) {
	opened, ok := box.OpenAnonymous(nil, data, &c.publicKey, &c.privateKey)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return types.PlainData(opened), nil
}
