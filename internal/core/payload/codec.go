package payload

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-proxygate/pkg/types"
)

// 信封字段
const (
	envKind protowire.Number = 1
	envBody protowire.Number = 2
)

// 请求/响应体字段
const (
	fStreamKey  protowire.Number = 1
	fLast       protowire.Number = 2
	fData       protowire.Number = 3
	fHostname   protowire.Number = 4
	fPort       protowire.Number = 5
	fProtocol   protowire.Number = 6
	fOriginator protowire.Number = 7
)

// ============================================================================
//                              编码
// ============================================================================

// Encode 编码载荷（带类型标签）
func Encode(p types.Payload) (types.PlainData, error) {
	var body []byte
	switch v := p.(type) {
	case *types.ClientRequestPayload:
		body = encodeRequest(v)
	case *types.ClientResponsePayload:
		body = encodeResponse(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, p)
	}

	var b []byte
	b = protowire.AppendTag(b, envKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.PayloadKind()))
	b = protowire.AppendTag(b, envBody, protowire.BytesType)
	b = protowire.AppendBytes(b, body)
	return types.PlainData(b), nil
}

func encodeRequest(p *types.ClientRequestPayload) []byte {
	var b []byte
	b = appendString(b, fStreamKey, p.StreamKey.String())
	b = appendBool(b, fLast, p.LastData)
	b = appendBytes(b, fData, p.Data)
	if p.HasTargetHostname() {
		b = appendString(b, fHostname, p.TargetHostname)
	}
	b = protowire.AppendTag(b, fPort, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.TargetPort))
	b = protowire.AppendTag(b, fProtocol, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Protocol))
	b = appendBytes(b, fOriginator, p.OriginatorPublicKey)
	return b
}

func encodeResponse(p *types.ClientResponsePayload) []byte {
	var b []byte
	b = appendString(b, fStreamKey, p.StreamKey.String())
	b = appendBool(b, fLast, p.LastResponse)
	b = appendBytes(b, fData, p.Data)
	return b
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// ============================================================================
//                              解码
// ============================================================================

// Kind 读取载荷类型标签，不解析内容
func Kind(data types.PlainData) (types.PayloadKind, error) {
	kind, _, err := open(data)
	return kind, err
}

// DecodeClientRequest 解码请求载荷
func DecodeClientRequest(data types.PlainData) (*types.ClientRequestPayload, error) {
	body, err := expect(data, types.PayloadClientRequest)
	if err != nil {
		return nil, err
	}

	p := &types.ClientRequestPayload{}
	err = walk(body, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fStreamKey && typ == protowire.BytesType:
			return consumeStreamKey(b, &p.StreamKey)
		case num == fLast && typ == protowire.VarintType:
			return consumeBool(b, &p.LastData)
		case num == fData && typ == protowire.BytesType:
			return consumeBytes(b, (*[]byte)(&p.Data))
		case num == fHostname && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			p.TargetHostname = v
			return n, nil
		case num == fPort && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > 0xFFFF {
				return n, fmt.Errorf("port %d out of range", v)
			}
			p.TargetPort = uint16(v)
			return n, nil
		case num == fProtocol && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			p.Protocol = types.ProxyProtocol(v)
			if n >= 0 && !p.Protocol.Valid() {
				return n, types.ErrUnknownProtocol
			}
			return n, nil
		case num == fOriginator && typ == protowire.BytesType:
			return consumeBytes(b, (*[]byte)(&p.OriginatorPublicKey))
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeClientResponse 解码响应载荷
func DecodeClientResponse(data types.PlainData) (*types.ClientResponsePayload, error) {
	body, err := expect(data, types.PayloadClientResponse)
	if err != nil {
		return nil, err
	}

	p := &types.ClientResponsePayload{}
	err = walk(body, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fStreamKey && typ == protowire.BytesType:
			return consumeStreamKey(b, &p.StreamKey)
		case num == fLast && typ == protowire.VarintType:
			return consumeBool(b, &p.LastResponse)
		case num == fData && typ == protowire.BytesType:
			return consumeBytes(b, (*[]byte)(&p.Data))
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// open 拆开信封
func open(data []byte) (types.PayloadKind, []byte, error) {
	var (
		kind    types.PayloadKind
		body    []byte
		hasKind bool
	)
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == envKind && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			kind, hasKind = types.PayloadKind(v), true
			return n, nil
		case num == envBody && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			body = v
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	if err != nil {
		return types.PayloadUnknown, nil, err
	}
	if !hasKind {
		return types.PayloadUnknown, nil, fmt.Errorf("%w: missing kind", ErrMalformed)
	}
	return kind, body, nil
}

// expect 拆开信封并核对类型
func expect(data []byte, want types.PayloadKind) ([]byte, error) {
	kind, body, err := open(data)
	if err != nil {
		return nil, err
	}
	if kind != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, kind, want)
	}
	return body, nil
}

// walk 依次处理每个字段
//
// fn 返回已消费的字节数；负数表示 protowire 解析错误。
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, err)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func consumeStreamKey(b []byte, out *types.StreamKey) (int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return n, nil
	}
	key, err := types.ParseStreamKey(v)
	if err != nil {
		return n, err
	}
	*out = key
	return n, nil
}

func consumeBool(b []byte, out *bool) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	*out = protowire.DecodeBool(v)
	return n, nil
}

func consumeBytes(b []byte, out *[]byte) (int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*out = append([]byte(nil), v...)
	}
	return n, nil
}
