package goptp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronwong1989/goptp/codec/ptp"
)

func TestRequest_Containers(t *testing.T) {
	req := &Request{}
	require.NoError(t, json.Unmarshal([]byte(`{"code": 4098, "params": [1]}`), req))

	cs, err := req.Containers(0)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	t.Logf("%s", cs[0])
	assert.Equal(t, ptp.OC_OpenSession, cs[0].Code)
	assert.Equal(t, []uint32{1}, cs[0].Params())

	req = &Request{Code: ptp.OC_SendObject, Data: []byte("jpeg")}
	cs, err = req.Containers(12)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, ptp.TypeData, cs[1].Type)
	assert.Equal(t, uint32(12), cs[1].TransactionId)
	assert.Equal(t, []byte("jpeg"), cs[1].Payload())
}

func TestRequest_TooManyParams(t *testing.T) {
	req := &Request{Code: ptp.OC_GetObjectHandles, Params: []uint32{1, 2, 3, 4, 5, 6}}
	_, err := req.Containers(1)
	assert.ErrorIs(t, err, ptp.ErrInvalidParameter)
}
