package hopper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-proxygate/internal/core/actor"
	"github.com/dep2p/go-proxygate/internal/core/cryptde"
	"github.com/dep2p/go-proxygate/internal/core/payload"
	"github.com/dep2p/go-proxygate/internal/core/route"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
	"github.com/dep2p/go-proxygate/tests/mocks"
)

var (
	me    = types.PublicKey("me")
	other = types.PublicKey("other")
)

// fixture 已绑定的 Hopper 和两个组件的记录器
type fixture struct {
	hopper      *Hopper
	cryptde     *cryptde.NullCryptDE
	proxyServer *mocks.Recorder[*types.ExpiredCoresPackage]
	proxyClient *mocks.Recorder[*types.ExpiredCoresPackage]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cryptde:     cryptde.NewNullCryptDE(me),
		proxyServer: mocks.NewRecorder[*types.ExpiredCoresPackage](),
		proxyClient: mocks.NewRecorder[*types.ExpiredCoresPackage](),
	}
	f.hopper = New(f.cryptde, nil)
	f.hopper.HandleBind(bindMessage(f.proxyServer, f.proxyClient))
	return f
}

func bindMessage(ps, pc pkgif.Recipient[*types.ExpiredCoresPackage]) pkgif.BindMessage {
	return pkgif.BindMessage{PeerActors: pkgif.PeerActors{
		ProxyServer: pkgif.ProxyServerSubs{FromHopper: ps},
		ProxyClient: pkgif.ProxyClientSubs{FromHopper: pc},
	}}
}

func (f *fixture) pkg(t *testing.T, segments ...types.RouteSegment) *types.IncipientCoresPackage {
	t.Helper()
	r, err := route.New(segments, f.cryptde)
	require.NoError(t, err)
	pkg, err := NewIncipientCoresPackage(r, &types.ClientResponsePayload{
		StreamKey: types.MustParseStreamKey("1.2.3.4:5678"),
		Data:      types.PlainData("data"),
	}, me, f.cryptde)
	require.NoError(t, err)
	return pkg
}

// ============================================================================
//                              路由测试
// ============================================================================

// TestHopper_DeliversLoopbackRoute 测试自环路由先交付 ProxyClient，剩余路由再交付 ProxyServer
func TestHopper_DeliversLoopbackRoute(t *testing.T) {
	f := newFixture(t)
	pkg := f.pkg(t,
		types.NewRouteSegment([]types.PublicKey{me, me}, types.ComponentProxyClient),
		types.NewRouteSegment([]types.PublicKey{me, me}, types.ComponentProxyServer),
	)

	f.hopper.HandleIncipientCoresPackage(pkg)
	require.Equal(t, 1, f.proxyClient.Len())
	assert.Equal(t, 0, f.proxyServer.Len())

	expired := f.proxyClient.Messages()[0]
	assert.Equal(t, 2, expired.RemainingRoute.Len())

	resp, err := payload.DecodeClientResponse(expired.Payload)
	require.NoError(t, err)
	assert.Equal(t, types.PlainData("data"), resp.Data)

	// 沿剩余路由继续
	next, err := NewIncipientCoresPackage(expired.RemainingRoute, resp, me, f.cryptde)
	require.NoError(t, err)
	f.hopper.HandleIncipientCoresPackage(next)

	require.Equal(t, 1, f.proxyServer.Len())
	assert.True(t, f.proxyServer.Messages()[0].RemainingRoute.IsEmpty())
}

// TestHopper_DropsForeignHop 测试下一跳为其他节点时丢弃
func TestHopper_DropsForeignHop(t *testing.T) {
	f := newFixture(t)
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me, other}, types.ComponentProxyServer))

	f.hopper.HandleIncipientCoresPackage(pkg)
	assert.Equal(t, 0, f.proxyServer.Len())
	assert.Equal(t, 0, f.proxyClient.Len())
}

// TestHopper_DropsHopForOtherNode 测试首跳不属于本节点时丢弃
func TestHopper_DropsHopForOtherNode(t *testing.T) {
	f := newFixture(t)
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{other}, types.ComponentProxyServer))

	f.hopper.HandleIncipientCoresPackage(pkg)
	assert.Equal(t, 0, f.proxyServer.Len())
}

// TestHopper_DropsUndecryptablePayload 测试载荷不是发给本节点时丢弃
func TestHopper_DropsUndecryptablePayload(t *testing.T) {
	f := newFixture(t)
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyServer))
	pkg.Payload = types.CryptData("garbage")

	f.hopper.HandleIncipientCoresPackage(pkg)
	assert.Equal(t, 0, f.proxyServer.Len())
}

// TestHopper_UnboundComponent 测试未绑定组件时丢弃
func TestHopper_UnboundComponent(t *testing.T) {
	h := New(cryptde.NewNullCryptDE(me), nil)
	ps := mocks.NewRecorder[*types.ExpiredCoresPackage]()
	h.HandleBind(bindMessage(ps, nil))

	f := &fixture{cryptde: cryptde.NewNullCryptDE(me)}
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyClient))

	assert.NotPanics(t, func() { h.HandleIncipientCoresPackage(pkg) })
	assert.Equal(t, 0, ps.Len())
}

// TestHopper_DeadComponentPanics 测试组件邮箱已满时 panic
func TestHopper_DeadComponentPanics(t *testing.T) {
	h := New(cryptde.NewNullCryptDE(me), nil)
	h.HandleBind(bindMessage(mocks.NewFullRecorder[*types.ExpiredCoresPackage](), nil))

	f := &fixture{cryptde: cryptde.NewNullCryptDE(me)}
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyServer))

	assert.PanicsWithValue(t, "ProxyServer is dead", func() {
		h.HandleIncipientCoresPackage(pkg)
	})
}

// TestHopper_StoppedComponentDropped 测试组件邮箱已关闭（停止过程中）时丢弃而不是 panic
func TestHopper_StoppedComponentDropped(t *testing.T) {
	mb := actor.NewMailbox(4)
	mb.Close()

	h := New(cryptde.NewNullCryptDE(me), nil)
	h.HandleBind(bindMessage(actor.Recipient[*types.ExpiredCoresPackage](mb), nil))

	f := &fixture{cryptde: cryptde.NewNullCryptDE(me)}
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyServer))

	assert.NotPanics(t, func() { h.HandleIncipientCoresPackage(pkg) })
}

// TestHopper_SecondBindIgnored 测试重复绑定被忽略
func TestHopper_SecondBindIgnored(t *testing.T) {
	f := newFixture(t)
	later := mocks.NewRecorder[*types.ExpiredCoresPackage]()
	f.hopper.HandleBind(bindMessage(later, later))

	f.hopper.HandleIncipientCoresPackage(f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyServer)))
	assert.Equal(t, 1, f.proxyServer.Len())
	assert.Equal(t, 0, later.Len())
}

// ============================================================================
//                              Actor 测试
// ============================================================================

// TestActor_Delivers 测试通过邮箱驱动 Hopper
func TestActor_Delivers(t *testing.T) {
	c := cryptde.NewNullCryptDE(me)
	a := NewActor(New(c, nil), 16)
	a.Start()
	defer a.Stop()

	ps := mocks.NewRecorder[*types.ExpiredCoresPackage]()
	require.NoError(t, a.Bind().TrySend(bindMessage(ps, nil)))

	f := &fixture{cryptde: c}
	pkg := f.pkg(t, types.NewRouteSegment([]types.PublicKey{me}, types.ComponentProxyServer))
	require.NoError(t, a.Subs().FromHopperClient.TrySend(pkg))

	assert.Len(t, ps.Await(1, time.Second), 1)
}

// TestNewIncipientCoresPackage 测试载荷为目标公钥加密
func TestNewIncipientCoresPackage(t *testing.T) {
	c := cryptde.NewNullCryptDE(me)
	p := &types.ClientResponsePayload{StreamKey: types.MustParseStreamKey("1.2.3.4:5678")}

	pkg, err := NewIncipientCoresPackage(types.Route{}, p, other, c)
	require.NoError(t, err)
	assert.Equal(t, other, pkg.PayloadDestinationKey)

	// 本节点无法解开发给 other 的载荷
	_, err = c.Decode(pkg.Payload)
	assert.ErrorIs(t, err, cryptde.ErrDecryptionFailed)

	_, err = NewIncipientCoresPackage(types.Route{}, p, nil, c)
	assert.ErrorIs(t, err, cryptde.ErrEmptyKey)
}
