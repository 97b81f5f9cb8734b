package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-proxygate/internal/core/cryptde"
	"github.com/dep2p/go-proxygate/pkg/types"
	"github.com/dep2p/go-proxygate/tests/mocks"
)

var (
	keyA = types.PublicKey("A")
	keyB = types.PublicKey("B")
)

// TestNew_LoopbackRoute 测试自环两段路由
func TestNew_LoopbackRoute(t *testing.T) {
	c := cryptde.NewNullCryptDE(keyA)
	segments := []types.RouteSegment{
		types.NewRouteSegment([]types.PublicKey{keyA, keyA}, types.ComponentProxyClient),
		types.NewRouteSegment([]types.PublicKey{keyA, keyA}, types.ComponentProxyServer),
	}

	r, err := New(segments, c)
	require.NoError(t, err)
	require.Equal(t, 4, r.Len())

	want := []Hop{
		{Next: keyA},
		{Component: types.ComponentProxyClient},
		{Next: keyA},
		{Component: types.ComponentProxyServer},
	}
	for i, w := range want {
		var h Hop
		h, r, err = Shift(r, c)
		require.NoError(t, err, "hop %d", i)
		assert.Equal(t, w, h, "hop %d", i)
	}

	_, _, err = Shift(r, c)
	assert.ErrorIs(t, err, ErrRouteExhausted)
}

// TestNew_HopsSealedPerKey 测试每一跳只能由对应节点解开
func TestNew_HopsSealedPerKey(t *testing.T) {
	a := cryptde.NewNullCryptDE(keyA)
	b := cryptde.NewNullCryptDE(keyB)

	r, err := New([]types.RouteSegment{
		types.NewRouteSegment([]types.PublicKey{keyA, keyB}, types.ComponentProxyClient),
	}, a)
	require.NoError(t, err)

	// B 不能解开 A 的跳
	_, _, err = Shift(r, b)
	assert.ErrorIs(t, err, cryptde.ErrDecryptionFailed)

	h, rest, err := Shift(r, a)
	require.NoError(t, err)
	assert.Equal(t, keyB, h.Next)
	assert.False(t, h.IsDelivery())

	h, rest, err = Shift(rest, b)
	require.NoError(t, err)
	assert.True(t, h.IsDelivery())
	assert.Equal(t, types.ComponentProxyClient, h.Component)
	assert.True(t, rest.IsEmpty())
}

// TestShift_DoesNotMutate 测试 Shift 不修改原路由
func TestShift_DoesNotMutate(t *testing.T) {
	c := cryptde.NewNullCryptDE(keyA)
	r, err := New([]types.RouteSegment{
		types.NewRouteSegment([]types.PublicKey{keyA}, types.ComponentProxyServer),
	}, c)
	require.NoError(t, err)

	_, rest, err := Shift(r, c)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, rest.Len())
}

// TestNew_Errors 测试路由构造失败
func TestNew_Errors(t *testing.T) {
	c := cryptde.NewNullCryptDE(keyA)

	t.Run("NoSegments", func(t *testing.T) {
		_, err := New(nil, c)
		assert.ErrorIs(t, err, ErrEmptyRoute)
	})

	t.Run("EmptySegment", func(t *testing.T) {
		_, err := New([]types.RouteSegment{{Component: types.ComponentProxyServer}}, c)
		assert.ErrorIs(t, err, ErrEmptyRoute)
	})

	t.Run("Discontiguous", func(t *testing.T) {
		_, err := New([]types.RouteSegment{
			types.NewRouteSegment([]types.PublicKey{keyA}, types.ComponentProxyClient),
			types.NewRouteSegment([]types.PublicKey{keyB}, types.ComponentProxyServer),
		}, c)
		assert.ErrorIs(t, err, ErrDiscontiguousRoute)
	})

	t.Run("EncodeFailure", func(t *testing.T) {
		boom := errors.New("boom")
		failing := &mocks.MockCryptDE{
			EncodeFunc: func(types.PublicKey, types.PlainData) (types.CryptData, error) {
				return nil, boom
			},
		}
		_, err := New([]types.RouteSegment{
			types.NewRouteSegment([]types.PublicKey{keyA}, types.ComponentProxyServer),
		}, failing)
		assert.ErrorIs(t, err, ErrHopEncoding)
		assert.ErrorIs(t, err, boom)
	})
}

// TestDecodeHop_Malformed 测试损坏的跳头部
func TestDecodeHop_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated tag", []byte{0x0a}},
		{"truncated bytes", []byte{0x0a, 0x05, 'A'}},
		{"unknown component", EncodeHop(Hop{Component: types.Component(42)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHop(tt.data)
			assert.ErrorIs(t, err, ErrMalformedHop)
		})
	}
}

// TestDecodeHop_SkipsUnknownFields 测试未知字段被跳过
func TestDecodeHop_SkipsUnknownFields(t *testing.T) {
	data := EncodeHop(Hop{Next: keyB})
	data = append(data, 0x18, 0x07) // field 3, varint 7

	h, err := DecodeHop(data)
	require.NoError(t, err)
	assert.Equal(t, keyB, h.Next)
	assert.Equal(t, "next:"+keyB.ShortString(), h.String())
}
