package ptp

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// readChunk 未限长时按块读取载荷，内存随实际收到的数据增长
const readChunk = 64 << 10

// ReadContainer reads exactly one container from r. The declared length is
// bounded by maxLength before the payload is read. maxLength 0 means no limit
// beyond the u32 range; the payload buffer then only grows with bytes that
// actually arrive, but peers should still be read with a real limit.
func ReadContainer(r io.Reader, maxLength uint32) (*Container, error) {
	head := make([]byte, HeadLength)
	if _, err := io.ReadFull(r, head); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.Wrap(ErrMalformedMessage, "short header")
		}
		return nil, err
	}

	header := Header{}
	if err := header.Decode(head); err != nil {
		return nil, err
	}
	if header.Length < HeadLength {
		return nil, errors.Wrapf(ErrMalformedMessage, "declared length %d below header length", header.Length)
	}
	if maxLength > 0 && header.Length > maxLength {
		return nil, errors.Wrapf(ErrTooLarge, "declared length %d, limit %d", header.Length, maxLength)
	}

	size := uint64(header.Length) - HeadLength
	initial := size
	if initial > readChunk {
		initial = readChunk
	}
	frame, err := alloc(HeadLength, HeadLength+initial)
	if err != nil {
		return nil, err
	}
	copy(frame, head)
	body := bytes.NewBuffer(frame)
	if _, err = io.CopyN(body, r, int64(size)); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(ErrMalformedMessage, "payload truncated, declared length %d", header.Length)
		}
		return nil, err
	}
	return FromBytes(body.Bytes())
}

// WriteContainer encodes c and writes the whole frame to w.
func WriteContainer(w io.Writer, c *Container) error {
	frame, err := c.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}
