// Package interfaces 定义 proxygate 的公共接口
//
// 本包只定义组件之间的窄契约，实现位于 internal/core 下对应目录：
//   - cryptde.go        - 加密引擎（密钥与加解密能力）
//   - recipient.go      - Actor 邮箱的发送端
//   - neighborhood.go   - 路由构建决策点（拓扑服务）
//   - peer_actors.go    - 各 Actor 的订阅句柄与绑定消息
//
// 所有跨 Actor 的交互都通过 Recipient 异步投递消息完成，
// Actor 之间不共享可变内存。
package interfaces
