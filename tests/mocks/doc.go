// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - Recorder: 记录发往某个 Recipient 的消息，可模拟邮箱已满
//   - MockCryptDE: 模拟 interfaces.CryptDE，默认行为与 null 引擎一致
//   - MockRouteBuilder: 模拟 interfaces.RouteBuilder
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
//
// # 使用示例
//
//	hopper := mocks.NewRecorder[*types.IncipientCoresPackage]()
//	subs := pkgif.HopperSubs{FromHopperClient: hopper}
//	...
//	pkgs := hopper.Await(1, time.Second)
package mocks
