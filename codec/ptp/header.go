package ptp

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed 12-byte container header. All fields are little-endian
// on the wire.
type Header struct {
	Length        uint32 // 报文总长度，包含 12 字节报文头
	Type          uint16 // 容器类型：命令/数据/响应/事件
	Code          uint16 // 操作码、响应码或事件码
	TransactionId uint32 // 由会话层分配，编解码不生成也不校验
}

// Encode 只编码报文头，返回 HeadLength 字节
func (header *Header) Encode() []byte {
	frame := make([]byte, HeadLength)
	header.put(frame)
	return frame
}

func (header *Header) Decode(frame []byte) error {
	if len(frame) < HeadLength {
		return ErrMalformedMessage
	}
	header.Length = binary.LittleEndian.Uint32(frame[0:4])
	header.Type = binary.LittleEndian.Uint16(frame[4:6])
	header.Code = binary.LittleEndian.Uint16(frame[6:8])
	header.TransactionId = binary.LittleEndian.Uint32(frame[8:12])
	return nil
}

func (header *Header) String() string {
	return fmt.Sprintf("{ Length: %d, Type: %s, Code: %s, TransactionId: %d }",
		header.Length, TypeName(header.Type), CodeName(header.Code), header.TransactionId)
}

func (header *Header) put(frame []byte) {
	binary.LittleEndian.PutUint32(frame[0:4], header.Length)
	binary.LittleEndian.PutUint16(frame[4:6], header.Type)
	binary.LittleEndian.PutUint16(frame[6:8], header.Code)
	binary.LittleEndian.PutUint32(frame[8:12], header.TransactionId)
}

const (
	HeadLength       = 12 // 报文头长度
	ParamLength      = 4  // 单个参数长度
	MaxPayloadLength = uint64(^uint32(0)) - HeadLength
)

const (
	TypeUndefined = uint16(0x0000)
	TypeCommand   = uint16(0x0001) // 命令
	TypeData      = uint16(0x0002) // 数据
	TypeResponse  = uint16(0x0003) // 响应
	TypeEvent     = uint16(0x0004) // 事件
)

var TypeMap = map[uint16]string{
	TypeUndefined: "UNDEFINED",
	TypeCommand:   "COMMAND",
	TypeData:      "DATA",
	TypeResponse:  "RESPONSE",
	TypeEvent:     "EVENT",
}

func TypeName(t uint16) string {
	if n, ok := TypeMap[t]; ok {
		return n
	}
	return fmt.Sprintf("0x%04x", t)
}
