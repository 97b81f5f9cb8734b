// Package types 定义 proxygate 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              标识相关错误
// ============================================================================

var (
	// ErrEmptyPublicKey 空公钥
	ErrEmptyPublicKey = errors.New("types: empty public key")

	// ErrInvalidPublicKey 无效的公钥字符串
	ErrInvalidPublicKey = errors.New("types: invalid public key: must be Base58")

	// ErrInvalidStreamKey 无效的流标识
	ErrInvalidStreamKey = errors.New("types: invalid stream key")
)

// ============================================================================
//                              枚举相关错误
// ============================================================================

var (
	// ErrUnknownProtocol 未知代理协议
	ErrUnknownProtocol = errors.New("types: unknown proxy protocol")

	// ErrUnknownComponent 未知组件
	ErrUnknownComponent = errors.New("types: unknown component")
)
