package codec

type IHead interface {
	Encode() []byte
	Decode([]byte) error
	String() string
}

// Codec 完整报文的编解码，Encode 在报文不一致时返回错误
type Codec interface {
	Encode() ([]byte, error)
	Decode(frame []byte) error
	String() string
}

// Sequence32 32位事务号生成器，Reset 后重新从头计数
type Sequence32 interface {
	Next() uint32
	Reset()
}
