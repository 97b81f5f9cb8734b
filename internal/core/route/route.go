package route

import (
	"fmt"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// New 由路由段构造加密路由
//
// 每一跳都用该跳节点的公钥封装，失败时返回包装了 ErrHopEncoding 的错误。
func New(segments []types.RouteSegment, cryptde pkgif.CryptDE) (types.Route, error) {
	if len(segments) == 0 {
		return types.Route{}, ErrEmptyRoute
	}
	for i, seg := range segments {
		if len(seg.Keys) == 0 {
			return types.Route{}, fmt.Errorf("%w: segment %d", ErrEmptyRoute, i)
		}
		if i > 0 && !segments[i-1].Last().Equal(seg.First()) {
			return types.Route{}, fmt.Errorf("%w: segment %d starts at %s, previous ends at %s",
				ErrDiscontiguousRoute, i, seg.First().ShortString(), segments[i-1].Last().ShortString())
		}
	}

	var hops []types.CryptData
	for _, seg := range segments {
		for i, key := range seg.Keys {
			h := Hop{Component: seg.Component}
			if i < len(seg.Keys)-1 {
				h = Hop{Next: seg.Keys[i+1]}
			}
			sealed, err := cryptde.Encode(key, types.PlainData(EncodeHop(h)))
			if err != nil {
				return types.Route{}, fmt.Errorf("%w for %s: %w", ErrHopEncoding, key.ShortString(), err)
			}
			hops = append(hops, sealed)
		}
	}
	return types.Route{Hops: hops}, nil
}

// Shift 解开首跳，返回该跳和剩余路由
//
// 原路由不被修改。
func Shift(r types.Route, cryptde pkgif.CryptDE) (Hop, types.Route, error) {
	if r.IsEmpty() {
		return Hop{}, types.Route{}, ErrRouteExhausted
	}
	plain, err := cryptde.Decode(r.Hops[0])
	if err != nil {
		return Hop{}, types.Route{}, fmt.Errorf("open hop: %w", err)
	}
	h, err := DecodeHop(plain)
	if err != nil {
		return Hop{}, types.Route{}, err
	}
	rest := types.Route{Hops: append([]types.CryptData(nil), r.Hops[1:]...)}
	return h, rest, nil
}
