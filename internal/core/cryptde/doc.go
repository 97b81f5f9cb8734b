// Package cryptde 实现加密引擎
//
// 加密引擎负责：
//   - 持有本节点的 curve25519 密钥对
//   - 为指定公钥封装数据（路由头、载荷）
//   - 用本节点私钥解开发给自己的数据
//
// 提供两种实现：
//   - BoxCryptDE: NaCl 匿名密封盒，生产使用
//   - NullCryptDE: 确定性的"加密"（公钥前缀），用于测试和排障
package cryptde
