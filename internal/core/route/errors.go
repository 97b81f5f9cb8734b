package route

import "errors"

var (
	// ErrEmptyRoute 没有路由段，或某个路由段没有公钥
	ErrEmptyRoute = errors.New("route: empty route")

	// ErrDiscontiguousRoute 相邻路由段首尾不相接
	ErrDiscontiguousRoute = errors.New("route: discontiguous segments")

	// ErrHopEncoding 加密引擎无法封装某一跳
	ErrHopEncoding = errors.New("route: cannot encode hop")

	// ErrRouteExhausted 路由已无剩余跳
	ErrRouteExhausted = errors.New("route: exhausted")

	// ErrMalformedHop 跳头部无法解析
	ErrMalformedHop = errors.New("route: malformed hop")
)
