package ptp

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/aaronwong1989/goptp/codec"
)

var (
	_ codec.IHead = (*Header)(nil)
	_ codec.Codec = (*Container)(nil)
)

// Container is a PTP message: the 12-byte header followed by a payload the
// container owns exclusively. Length always equals HeadLength plus the
// payload size for containers built by this package.
type Container struct {
	Header
	payload []byte
}

// NewContainer returns a header-only container of Length 12.
func NewContainer() *Container {
	return &Container{Header: Header{Length: HeadLength}, payload: []byte{}}
}

func New(typ uint16, code uint16) *Container {
	c := NewContainer()
	c.Type = typ
	c.Code = code
	return c
}

// FromBytes parses frame into a new container, see Decode.
func FromBytes(frame []byte) (*Container, error) {
	c := NewContainer()
	if err := c.Decode(frame); err != nil {
		return nil, err
	}
	return c, nil
}

// AddParam appends param as a little-endian 32 bit word.
func (c *Container) AddParam(param uint32) error {
	return c.AddParams(param)
}

// AddParams appends every param in order. Either all are appended or the
// container is left untouched.
func (c *Container) AddParams(params ...uint32) error {
	if len(params) == 0 {
		return nil
	}
	size := uint64(len(c.payload)) + uint64(len(params))*ParamLength
	if size > MaxPayloadLength {
		return errors.Wrapf(ErrAllocation, "payload of %d bytes exceeds %d", size, MaxPayloadLength)
	}

	payload := c.payload
	if uint64(cap(payload)) < size {
		capacity := 2 * uint64(cap(payload))
		if capacity < size {
			capacity = size
		}
		if capacity > MaxPayloadLength {
			capacity = MaxPayloadLength
		}
		grown, err := alloc(uint64(len(payload)), capacity)
		if err != nil {
			return err
		}
		copy(grown, payload)
		payload = grown
	}

	index := len(payload)
	payload = payload[:size]
	for _, p := range params {
		binary.LittleEndian.PutUint32(payload[index:index+ParamLength], p)
		index += ParamLength
	}
	c.commit(payload)
	return nil
}

// SetPayload replaces the payload with a copy of data. Parameters added
// before are discarded.
func (c *Container) SetPayload(data []byte) error {
	size := uint64(len(data))
	if size > MaxPayloadLength {
		return errors.Wrapf(ErrAllocation, "payload of %d bytes exceeds %d", size, MaxPayloadLength)
	}
	payload, err := alloc(size, size)
	if err != nil {
		return err
	}
	copy(payload, data)
	c.commit(payload)
	return nil
}

// Encode packs the container into a new frame of exactly Length bytes.
func (c *Container) Encode() ([]byte, error) {
	if uint64(c.Length) != HeadLength+uint64(len(c.payload)) {
		return nil, errors.Wrapf(ErrMalformedMessage, "length mismatch: header %d, payload %d", c.Length, len(c.payload))
	}
	frame, err := alloc(uint64(c.Length), uint64(c.Length))
	if err != nil {
		return nil, err
	}
	c.Header.put(frame)
	copy(frame[HeadLength:], c.payload)
	return frame, nil
}

// Decode replaces the container with the message in frame. The declared
// length is trusted only after it is bounded by len(frame); trailing bytes
// are ignored. On error the container keeps its previous state.
func (c *Container) Decode(frame []byte) error {
	header := Header{}
	if err := header.Decode(frame); err != nil {
		log.Debugf("[%-9s] short frame of %d bytes", "Decode", len(frame))
		return errors.Wrapf(err, "frame of %d bytes is shorter than header", len(frame))
	}
	if header.Length < HeadLength {
		log.Debugf("[%-9s] declared length %d below header length", "Decode", header.Length)
		return errors.Wrapf(ErrMalformedMessage, "declared length %d below header length", header.Length)
	}
	if uint64(len(frame)) < uint64(header.Length) {
		log.Debugf("[%-9s] declared length %d, frame has %d bytes", "Decode", header.Length, len(frame))
		return errors.Wrapf(ErrMalformedMessage, "declared length %d, frame has %d bytes", header.Length, len(frame))
	}

	size := uint64(header.Length) - HeadLength
	payload, err := alloc(size, size)
	if err != nil {
		return err
	}
	copy(payload, frame[HeadLength:header.Length])

	c.Header = header
	c.payload = payload
	return nil
}

func (c *Container) GetLength() uint32 {
	return c.Length
}

// Payload returns a copy of the payload.
func (c *Container) Payload() []byte {
	out := make([]byte, len(c.payload))
	copy(out, c.payload)
	return out
}

func (c *Container) PayloadLength() int {
	return len(c.payload)
}

// Param returns parameter n, the little-endian word at payload[4n:4n+4].
func (c *Container) Param(n uint32) (uint32, error) {
	if len(c.payload) == 0 {
		return 0, ErrNoPayload
	}
	first := uint64(n) * ParamLength
	if uint64(len(c.payload)) < first+ParamLength {
		return 0, errors.Wrapf(ErrInvalidParameter, "parameter %d needs %d bytes, payload has %d", n, first+ParamLength, len(c.payload))
	}
	return binary.LittleEndian.Uint32(c.payload[first : first+ParamLength]), nil
}

// ParamCount 完整参数个数，末尾不足4字节的部分不计
func (c *Container) ParamCount() int {
	return len(c.payload) / ParamLength
}

func (c *Container) Params() []uint32 {
	params := make([]uint32, c.ParamCount())
	for i := range params {
		params[i] = binary.LittleEndian.Uint32(c.payload[i*ParamLength : (i+1)*ParamLength])
	}
	return params
}

// Clone returns a deep copy, the two containers never share a payload.
func (c *Container) Clone() *Container {
	return &Container{Header: c.Header, payload: c.Payload()}
}

// ToResponse builds the response container for this transaction.
func (c *Container) ToResponse(code uint16, params ...uint32) (*Container, error) {
	resp := New(TypeResponse, code)
	resp.TransactionId = c.TransactionId
	if err := resp.AddParams(params...); err != nil {
		return nil, err
	}
	return resp, nil
}

// ToData builds the data phase container carrying data for this transaction.
func (c *Container) ToData(data []byte) (*Container, error) {
	dc := New(TypeData, c.Code)
	dc.TransactionId = c.TransactionId
	if err := dc.SetPayload(data); err != nil {
		return nil, err
	}
	return dc, nil
}

func (c *Container) String() string {
	const maxShown = 64
	shown := c.payload
	suffix := ""
	if len(shown) > maxShown {
		shown = shown[:maxShown]
		suffix = " ..."
	}
	return fmt.Sprintf("{ Length: %d, Type: %s, Code: %s, TransactionId: %d, Payload: [% x%s] }",
		c.Length, TypeName(c.Type), CodeName(c.Code), c.TransactionId, shown, suffix)
}

func (c *Container) commit(payload []byte) {
	c.payload = payload
	c.Length = uint32(HeadLength + len(payload))
}

// alloc 分配缓冲区，超大长度导致的 panic 转换为 ErrAllocation
func alloc(size, capacity uint64) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrapf(ErrAllocation, "%d bytes: %v", capacity, r)
		}
	}()
	return make([]byte, int(size), int(capacity)), nil
}
