// Package sniffer 从客户端数据的首块字节判断协议和目标主机
//
// 嗅探只看字节前缀，不终结协议，也不需要完整消息：
//
//   - 首字节为 0x16（TLS Handshake 记录）时按 TLS 处理，
//     从 ClientHello 的 server_name 扩展读取主机名
//   - 其余一律按 HTTP 处理，扫描请求头中的 Host 行
//
// 截断或损坏的输入不会出错，只是得不到主机名。
// 端口不从数据中解析，由监听器配置决定。
package sniffer
