package payload

import "errors"

var (
	// ErrKindMismatch 载荷类型与期望不符
	ErrKindMismatch = errors.New("payload: kind mismatch")

	// ErrMalformed 载荷无法解析
	ErrMalformed = errors.New("payload: malformed")

	// ErrUnsupported 不支持编码的载荷类型
	ErrUnsupported = errors.New("payload: unsupported type")
)
