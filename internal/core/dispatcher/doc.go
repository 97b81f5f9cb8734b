// Package dispatcher 拥有客户端套接字
//
// 每个配置的监听器接受 TCP 连接，连接的远端地址就是它的 StreamKey。
// 读到的每块数据作为 InboundClientData 交给网关；
// 网关发回的 TransmitDataMsg 写入对应连接，last_data 时关闭连接。
//
// 监听在启动时完成，接受连接要等到收到 BindMessage 之后才开始，
// 保证第一块数据到达时网关的接收端已知。
package dispatcher
