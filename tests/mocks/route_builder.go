package mocks

import (
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// MockRouteBuilder 模拟 RouteBuilder 接口实现
type MockRouteBuilder struct {
	// RouteValue 默认返回的路由
	RouteValue types.Route

	// Err 默认返回的错误
	Err error

	// BuildRouteFunc 自定义行为
	BuildRouteFunc func(cryptde pkgif.CryptDE) (types.Route, error)

	// Calls 调用次数
	Calls int
}

var _ pkgif.RouteBuilder = (*MockRouteBuilder)(nil)

// BuildRoute 构建路由
func (m *MockRouteBuilder) BuildRoute(cryptde pkgif.CryptDE) (types.Route, error) {
	m.Calls++
	if m.BuildRouteFunc != nil {
		return m.BuildRouteFunc(cryptde)
	}
	return m.RouteValue, m.Err
}
