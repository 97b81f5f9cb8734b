// Package payload 编解码跨中继边界的载荷
//
// 载荷被加密后穿越多跳传输，接收方解密得到的只是字节。
// 信封携带类型标签，解码时先核对标签再解释内容：
//
//	信封  1: kind (varint)  2: body (bytes)
//
// 请求体字段：
//
//	1 stream_key   2 last_data   3 data       4 target_hostname
//	5 target_port  6 protocol    7 originator_public_key
//
// 响应体字段：
//
//	1 stream_key   2 last_response   3 data
//
// 标签不匹配返回 ErrKindMismatch，由调用方记录并丢弃，不会导致崩溃。
package payload
