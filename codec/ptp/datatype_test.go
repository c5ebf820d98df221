package ptp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	for _, s := range []string{"", "Canon", "PowerShot A720 IS", "相机-ß"} {
		bts, err := AppendString(nil, s)
		require.NoError(t, err)
		t.Logf("%q: % x", s, bts)

		got, n, err := ReadString(append(bts, 0xFF))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.Equal(t, len(bts), n)
	}
}

func TestString_Layout(t *testing.T) {
	bts, err := AppendString(nil, "AB")
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 'A', 0, 'B', 0, 0, 0}, bts)

	bts, err = AppendString(nil, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, bts)
}

func TestString_Bounds(t *testing.T) {
	_, err := AppendString(nil, strings.Repeat("x", 255))
	assert.Error(t, err)
	_, err = AppendString(nil, strings.Repeat("x", 254))
	assert.NoError(t, err)

	_, _, err = ReadString(nil)
	assert.ErrorIs(t, err, ErrMalformedMessage)
	_, _, err = ReadString([]byte{3, 'A', 0})
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestArrays(t *testing.T) {
	bts := AppendUint16Array(nil, []uint16{OC_GetDeviceInfo, OC_OpenSession})
	assert.Equal(t, []byte{2, 0, 0, 0, 0x01, 0x10, 0x02, 0x10}, bts)
	v16, n, err := ReadUint16Array(bts)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []uint16{OC_GetDeviceInfo, OC_OpenSession}, v16)

	bts = AppendUint32Array(nil, []uint32{0x00010001, 0x00020001})
	v32, n, err := ReadUint32Array(bts)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, []uint32{0x00010001, 0x00020001}, v32)

	_, _, err = ReadUint32Array([]byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 2})
	assert.ErrorIs(t, err, ErrMalformedMessage)
	_, _, err = ReadUint16Array([]byte{1, 0})
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDeviceInfo(t *testing.T) {
	di := &DeviceInfo{
		StandardVersion:     100,
		VendorExtensionID:   0x0B,
		FunctionalMode:      0,
		OperationsSupported: []uint16{OC_GetDeviceInfo, OC_OpenSession, OC_CloseSession},
		EventsSupported:     []uint16{EC_ObjectAdded},
		Manufacturer:        "Canon Inc.",
		Model:               "PowerShot",
		DeviceVersion:       "1-6.0.1.0",
		SerialNumber:        "0123456789",
	}
	bts, err := di.Encode()
	require.NoError(t, err)
	t.Logf("% x", bts)

	got := &DeviceInfo{}
	require.NoError(t, got.Decode(bts))
	t.Logf("%s", got)
	assert.Equal(t, di.Manufacturer, got.Manufacturer)
	assert.Equal(t, di.SerialNumber, got.SerialNumber)
	assert.Equal(t, di.OperationsSupported, got.OperationsSupported)
	assert.Equal(t, di.EventsSupported, got.EventsSupported)
	assert.Empty(t, got.ImageFormats)

	// 截断的数据集不修改原值
	err = got.Decode(bts[:len(bts)-3])
	assert.ErrorIs(t, err, ErrMalformedMessage)
	assert.Equal(t, "0123456789", got.SerialNumber)
}
