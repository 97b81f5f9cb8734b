package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
//                              PublicKey 测试
// ============================================================================

func TestPublicKey_String(t *testing.T) {
	assert.Equal(t, "", PublicKey(nil).String())
	assert.Equal(t, "Ldp", PublicKey{1, 2, 3}.String())
}

func TestPublicKey_ShortString(t *testing.T) {
	key := PublicKey([]byte("a fairly long public key value"))
	assert.Len(t, key.ShortString(), 8)
	assert.Equal(t, key.String()[:8], key.ShortString())

	assert.Equal(t, "Ldp", PublicKey{1, 2, 3}.ShortString())
}

func TestParsePublicKey(t *testing.T) {
	key, err := ParsePublicKey("Ldp")
	require.NoError(t, err)
	assert.True(t, key.Equal(PublicKey{1, 2, 3}))

	_, err = ParsePublicKey("")
	assert.ErrorIs(t, err, ErrEmptyPublicKey)

	// '0' 不在 Base58 字母表中
	_, err = ParsePublicKey("0OIl")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestPublicKey_RoundTrip(t *testing.T) {
	key := PublicKey([]byte("proxy server key"))

	parsed, err := ParsePublicKey(key.String())
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))
}

func TestPublicKey_Clone(t *testing.T) {
	key := PublicKey{1, 2, 3}
	clone := key.Clone()
	clone[0] = 9

	assert.Equal(t, byte(1), key[0])
	assert.Nil(t, PublicKey(nil).Clone())
	assert.True(t, PublicKey(nil).IsEmpty())
}

func TestData_Equal(t *testing.T) {
	assert.True(t, PlainData("abc").Equal(PlainData("abc")))
	assert.False(t, PlainData("abc").Equal(PlainData("abd")))
	assert.True(t, CryptData{1}.Equal(CryptData{1}))
	assert.False(t, CryptData{1}.Equal(nil))
}
