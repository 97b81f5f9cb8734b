package types

// ============================================================================
//                              Route - 路由
// ============================================================================

// RouteSegment 路由段
//
// 包需要依次经过的节点公钥序列，末端节点把包交付给 Component。
type RouteSegment struct {
	// Keys 各跳节点公钥（有序）
	Keys []PublicKey

	// Component 段末端的目标组件
	Component Component
}

// NewRouteSegment 创建路由段
func NewRouteSegment(keys []PublicKey, component Component) RouteSegment {
	cloned := make([]PublicKey, len(keys))
	for i, k := range keys {
		cloned[i] = k.Clone()
	}
	return RouteSegment{Keys: cloned, Component: component}
}

// First 返回段的第一个节点公钥
func (s RouteSegment) First() PublicKey {
	if len(s.Keys) == 0 {
		return nil
	}
	return s.Keys[0]
}

// Last 返回段的最后一个节点公钥
func (s RouteSegment) Last() PublicKey {
	if len(s.Keys) == 0 {
		return nil
	}
	return s.Keys[len(s.Keys)-1]
}

// Route 完整路由
//
// 每一跳是一个只能由该跳节点解开的加密头。
// 路由是不可变值：移除首跳会得到新的 Route。
type Route struct {
	Hops []CryptData
}

// Len 返回剩余跳数
func (r Route) Len() int {
	return len(r.Hops)
}

// IsEmpty 检查路由是否已耗尽
func (r Route) IsEmpty() bool {
	return len(r.Hops) == 0
}

// Equal 比较两条路由
func (r Route) Equal(other Route) bool {
	if len(r.Hops) != len(other.Hops) {
		return false
	}
	for i := range r.Hops {
		if !r.Hops[i].Equal(other.Hops[i]) {
			return false
		}
	}
	return true
}
