// Package hopper 实现节点内的多跳传输
//
// Hopper 接收待发出的包，逐跳解开属于本节点的路由头：
//
//   - next 指向本节点时继续解开下一跳
//   - next 指向其他节点时丢弃（节点间传输不在本节点内完成）
//   - component 跳把解密后的载荷连同剩余路由交付给对应组件
//
// 组件的接收端来自一次性的 BindMessage。
package hopper
