// Package proxyclient 实现路由前向段末端的请求处理组件
//
// 收到 ClientRequestPayload 后，按 (发起方公钥, StreamKey) 查找上游连接：
//
//   - 新流：连接 hostname:port（可经 SOCKS5 上游代理），写入请求字节
//   - 已有流：继续写入；last_data 时半关闭写方向
//
// 每个上游连接有一个读协程，把读到的每块数据包装成 ClientResponsePayload，
// 沿请求包的剩余路由经 Hopper 送回发起方。连接结束时发送 last_response。
//
// 连接表是有界 LRU，超出上限时关闭最久未使用的连接。
package proxyclient
