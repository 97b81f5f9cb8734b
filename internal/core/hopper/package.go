package hopper

import (
	"fmt"

	"github.com/dep2p/go-proxygate/internal/core/payload"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// NewIncipientCoresPackage 编码载荷并为 key 加密
func NewIncipientCoresPackage(route types.Route, p types.Payload, key types.PublicKey, cryptde pkgif.CryptDE) (*types.IncipientCoresPackage, error) {
	plain, err := payload.Encode(p)
	if err != nil {
		return nil, err
	}
	sealed, err := cryptde.Encode(key, plain)
	if err != nil {
		return nil, fmt.Errorf("seal payload: %w", err)
	}
	return &types.IncipientCoresPackage{
		Route:                 route,
		Payload:               sealed,
		PayloadDestinationKey: key.Clone(),
	}, nil
}
