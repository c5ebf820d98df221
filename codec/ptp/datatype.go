package ptp

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PTP 字符串：1字节字符数(含结尾NUL) + UCS-2 小端字符，空串只有1字节0
const maxStringChars = 255

var ucs2 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func AppendUint16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func AppendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// AppendString appends s as a PTP string.
func AppendString(dst []byte, s string) ([]byte, error) {
	if s == "" {
		return append(dst, 0), nil
	}
	units, _, err := transform.Bytes(ucs2.NewEncoder(), []byte(s))
	if err != nil {
		return dst, errors.Wrapf(err, "encode %q", s)
	}
	chars := len(units)/2 + 1
	if chars > maxStringChars {
		return dst, errors.Errorf("ptp: string of %d chars exceeds %d", chars, maxStringChars)
	}
	dst = append(dst, byte(chars))
	dst = append(dst, units...)
	return append(dst, 0, 0), nil
}

// ReadString decodes the PTP string at the start of data and returns it with
// the number of bytes consumed.
func ReadString(data []byte) (string, int, error) {
	if len(data) < 1 {
		return "", 0, errors.Wrap(ErrMalformedMessage, "missing string length")
	}
	chars := int(data[0])
	n := 1 + 2*chars
	if len(data) < n {
		return "", 0, errors.Wrapf(ErrMalformedMessage, "string of %d chars needs %d bytes, have %d", chars, n, len(data))
	}
	if chars == 0 {
		return "", 1, nil
	}
	units := data[1:n]
	// 去掉结尾 NUL
	for i := 0; i+1 < len(units); i += 2 {
		if units[i] == 0 && units[i+1] == 0 {
			units = units[:i]
			break
		}
	}
	bts, _, err := transform.Bytes(ucs2.NewDecoder(), units)
	if err != nil {
		return "", 0, errors.Wrap(ErrMalformedMessage, err.Error())
	}
	return string(bts), n, nil
}

func AppendUint16Array(dst []byte, values []uint16) []byte {
	dst = AppendUint32(dst, uint32(len(values)))
	for _, v := range values {
		dst = AppendUint16(dst, v)
	}
	return dst
}

func AppendUint32Array(dst []byte, values []uint32) []byte {
	dst = AppendUint32(dst, uint32(len(values)))
	for _, v := range values {
		dst = AppendUint32(dst, v)
	}
	return dst
}

// ReadUint16Array decodes a count prefixed array of uint16.
func ReadUint16Array(data []byte) ([]uint16, int, error) {
	count, n, err := arrayBounds(data, 2)
	if err != nil {
		return nil, 0, err
	}
	values := make([]uint16, count)
	for i := range values {
		values[i] = binary.LittleEndian.Uint16(data[4+2*i:])
	}
	return values, n, nil
}

// ReadUint32Array decodes a count prefixed array of uint32.
func ReadUint32Array(data []byte) ([]uint32, int, error) {
	count, n, err := arrayBounds(data, 4)
	if err != nil {
		return nil, 0, err
	}
	values := make([]uint32, count)
	for i := range values {
		values[i] = binary.LittleEndian.Uint32(data[4+4*i:])
	}
	return values, n, nil
}

func arrayBounds(data []byte, width uint64) (int, int, error) {
	if len(data) < 4 {
		return 0, 0, errors.Wrap(ErrMalformedMessage, "missing array count")
	}
	count := uint64(binary.LittleEndian.Uint32(data[0:4]))
	n := 4 + count*width
	if uint64(len(data)) < n {
		return 0, 0, errors.Wrapf(ErrMalformedMessage, "array of %d elements needs %d bytes, have %d", count, n, len(data))
	}
	return int(count), int(n), nil
}

// reader 顺序读取数据集，遇到第一个错误后其余读取均为空操作
type reader struct {
	data []byte
	err  error
}

func (r *reader) uint16() uint16 {
	if r.err != nil {
		return 0
	}
	if len(r.data) < 2 {
		r.err = errors.Wrap(ErrMalformedMessage, "short uint16")
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data)
	r.data = r.data[2:]
	return v
}

func (r *reader) uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if len(r.data) < 4 {
		r.err = errors.Wrap(ErrMalformedMessage, "short uint32")
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data)
	r.data = r.data[4:]
	return v
}

func (r *reader) string() string {
	if r.err != nil {
		return ""
	}
	s, n, err := ReadString(r.data)
	if err != nil {
		r.err = err
		return ""
	}
	r.data = r.data[n:]
	return s
}

func (r *reader) uint16Array() []uint16 {
	if r.err != nil {
		return nil
	}
	v, n, err := ReadUint16Array(r.data)
	if err != nil {
		r.err = err
		return nil
	}
	r.data = r.data[n:]
	return v
}
