// Package metrics 提供 proxygate 的 Prometheus 指标
//
// 网关、Hopper 和 Dispatcher 通过 Reporter 接口记录事件，
// 禁用指标时注入 NopReporter，调用方无需判空。
//
// # 指标
//
//	proxygate_requests_total{protocol}               发出的请求包
//	proxygate_requests_without_host_total{protocol}  未嗅探出主机名的请求
//	proxygate_requests_dropped_total                 无法构造载荷而丢弃的请求
//	proxygate_responses_relayed_total{final}         送回套接字的响应
//	proxygate_responses_rejected_total               类型不符被丢弃的回程包
//	proxygate_packages_routed_total{component}       Hopper 交付的包
//	proxygate_client_bytes_total{direction}          客户端套接字字节数
//
// 配置了 metrics.listen_addr 时通过 /metrics 暴露。
package metrics
