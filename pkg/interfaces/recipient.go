// Package interfaces 定义 proxygate 公共接口
//
// 本文件定义 Recipient 接口，即 Actor 邮箱的发送端。
package interfaces

// Recipient 类型化的消息接收方
//
// TrySend 是即发即忘的：邮箱容量有限，满了立即返回错误而不是等待。
// 调用方把错误视为对方不可用。
type Recipient[T any] interface {
	TrySend(msg T) error
}

// RecipientFunc 函数适配器
type RecipientFunc[T any] func(msg T) error

// TrySend 实现 Recipient 接口
func (f RecipientFunc[T]) TrySend(msg T) error {
	return f(msg)
}
