package route

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-proxygate/pkg/types"
)

// 跳头部字段号
const (
	fieldNext      protowire.Number = 1
	fieldComponent protowire.Number = 2
)

// Hop 解开后的单跳头部
//
// 中间跳只有 Next，段末跳只有 Component。
type Hop struct {
	// Next 下一跳节点公钥
	Next types.PublicKey

	// Component 交付组件
	Component types.Component
}

// IsDelivery 检查该跳是否是段末交付
func (h Hop) IsDelivery() bool {
	return h.Component != types.ComponentNone
}

// String 返回可读表示
func (h Hop) String() string {
	if h.IsDelivery() {
		return "deliver:" + h.Component.String()
	}
	return "next:" + h.Next.ShortString()
}

// EncodeHop 编码跳头部
func EncodeHop(h Hop) []byte {
	var b []byte
	if len(h.Next) > 0 {
		b = protowire.AppendTag(b, fieldNext, protowire.BytesType)
		b = protowire.AppendBytes(b, h.Next)
	}
	if h.Component != types.ComponentNone {
		b = protowire.AppendTag(b, fieldComponent, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(h.Component))
	}
	return b
}

// DecodeHop 解码跳头部
//
// 未知字段被跳过；既没有下一跳也没有组件的头部视为损坏。
func DecodeHop(b []byte) (Hop, error) {
	var h Hop
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Hop{}, fmt.Errorf("%w: %v", ErrMalformedHop, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldNext && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Hop{}, fmt.Errorf("%w: %v", ErrMalformedHop, protowire.ParseError(n))
			}
			h.Next = append(types.PublicKey(nil), v...)
			b = b[n:]
		case num == fieldComponent && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Hop{}, fmt.Errorf("%w: %v", ErrMalformedHop, protowire.ParseError(n))
			}
			h.Component = types.Component(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Hop{}, fmt.Errorf("%w: %v", ErrMalformedHop, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if h.Next.IsEmpty() && h.Component == types.ComponentNone {
		return Hop{}, ErrMalformedHop
	}
	if h.Component != types.ComponentNone && !h.Component.Valid() {
		return Hop{}, fmt.Errorf("%w: %w", ErrMalformedHop, types.ErrUnknownComponent)
	}
	return h, nil
}
