package sniffer

import (
	"bytes"
	"unicode/utf8"
)

var (
	crlf      = []byte("\r\n")
	hostField = []byte("host:")
)

// httpHost 扫描请求头中的 Host 行
//
// 只看空行之前、以 CRLF 结尾的行；字段名不区分大小写，值去掉首尾空白后原样返回。
func httpHost(data []byte) string {
	rest := data
	for {
		i := bytes.Index(rest, crlf)
		if i < 0 {
			return ""
		}
		line := rest[:i]
		rest = rest[i+len(crlf):]

		if len(line) == 0 {
			return ""
		}
		if len(line) < len(hostField) || !bytes.EqualFold(line[:len(hostField)], hostField) {
			continue
		}

		value := bytes.TrimSpace(line[len(hostField):])
		if len(value) == 0 || !utf8.Valid(value) {
			return ""
		}
		return string(value)
	}
}
