package ptp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader_Encode(t *testing.T) {
	header := Header{
		Length:        16,
		Type:          TypeCommand,
		Code:          OC_OpenSession,
		TransactionId: 1,
	}
	t.Logf("%s", header.String())
	frame := header.Encode()
	t.Logf("% x", frame)

	assert.Len(t, frame, HeadLength)
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(frame[0:4]))
	assert.Equal(t, TypeCommand, binary.LittleEndian.Uint16(frame[4:6]))
	assert.Equal(t, OC_OpenSession, binary.LittleEndian.Uint16(frame[6:8]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(frame[8:12]))
}

func TestHeader_Decode(t *testing.T) {
	frame := make([]byte, 16)
	binary.LittleEndian.PutUint32(frame[0:4], 16)
	binary.LittleEndian.PutUint16(frame[4:6], TypeResponse)
	binary.LittleEndian.PutUint16(frame[6:8], RC_OK)
	binary.LittleEndian.PutUint32(frame[8:12], 1)
	copy(frame[12:16], "1234")

	header := Header{}
	assert.NoError(t, header.Decode(frame))
	t.Logf("%v", &header)
	assert.Equal(t, Header{Length: 16, Type: TypeResponse, Code: RC_OK, TransactionId: 1}, header)

	assert.ErrorIs(t, header.Decode(frame[:11]), ErrMalformedMessage)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "COMMAND", TypeName(TypeCommand))
	assert.Equal(t, "0x0009", TypeName(9))
	assert.Equal(t, "GetDeviceInfo", CodeName(OC_GetDeviceInfo))
	assert.Equal(t, "InvalidParameter", CodeName(RC_InvalidParameter))
	assert.Equal(t, "CaptureComplete", CodeName(EC_CaptureComplete))
	assert.Equal(t, "0xc001", CodeName(0xC001))
}
