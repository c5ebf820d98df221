package device

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronwong1989/goptp/codec/ptp"
	"github.com/aaronwong1989/goptp/comm"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port
}

func startServer(t *testing.T, conf *Config) string {
	if testing.Short() {
		t.Skip("starts a tcp server")
	}
	address := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	s, err := NewServer(conf, address, false)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	select {
	case <-s.Booted():
	case err = <-done:
		t.Fatalf("server exits: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server boot timeout")
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
		s.pool.Release()
	})
	return address
}

func transact(t *testing.T, c net.Conn, req *ptp.Container) *ptp.Container {
	require.NoError(t, c.SetDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, ptp.WriteContainer(c, req))
	resp, err := ptp.ReadContainer(c, 1<<20)
	require.NoError(t, err)
	t.Logf("receive: %s", resp)
	return resp
}

func TestServer_Transactions(t *testing.T) {
	address := startServer(t, DefaultConfig())
	c, err := net.Dial("tcp", address)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	seq := comm.NewTransactionSequence()

	open := ptp.New(ptp.TypeCommand, ptp.OC_OpenSession)
	require.NoError(t, open.AddParam(1))
	resp := transact(t, c, open)
	assert.NoError(t, ptp.CheckResponse(resp))
	assert.Equal(t, uint32(0), resp.TransactionId)

	info := ptp.New(ptp.TypeCommand, ptp.OC_GetDeviceInfo)
	info.TransactionId = seq.Next()
	data := transact(t, c, info)
	assert.Equal(t, ptp.TypeData, data.Type)
	resp, err = ptp.ReadContainer(c, 1<<20)
	require.NoError(t, err)
	assert.NoError(t, ptp.CheckResponse(resp))
	assert.Equal(t, info.TransactionId, resp.TransactionId)

	di := &ptp.DeviceInfo{}
	require.NoError(t, di.Decode(data.Payload()))
	assert.Equal(t, DefaultConfig().SerialNumber, di.SerialNumber)

	chdk := ptp.New(ptp.TypeCommand, ptp.OC_CHDK)
	chdk.TransactionId = seq.Next()
	require.NoError(t, chdk.AddParam(ptp.CHDK_Version))
	resp = transact(t, c, chdk)
	assert.Equal(t, []uint32{2, 6}, resp.Params())
}

func TestServer_ClosesOnOversizedContainer(t *testing.T) {
	conf := DefaultConfig()
	conf.MaxContainerLength = 64
	address := startServer(t, conf)
	c, err := net.Dial("tcp", address)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	big := ptp.New(ptp.TypeCommand, ptp.OC_SendObject)
	require.NoError(t, big.SetPayload(make([]byte, 100)))
	require.NoError(t, c.SetDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, ptp.WriteContainer(c, big))

	_, err = ptp.ReadContainer(c, 1<<20)
	assert.Error(t, err)
}

func TestServer_PipelinedRepliesInOrder(t *testing.T) {
	conf := DefaultConfig()
	conf.MinRespMs = 1
	conf.MaxRespMs = 50
	address := startServer(t, conf)
	c, err := net.Dial("tcp", address)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	require.NoError(t, c.SetDeadline(time.Now().Add(10*time.Second)))

	// 不等待应答连续发送10个命令
	seq := comm.NewTransactionSequence()
	var tids []uint32
	for i := 0; i < 10; i++ {
		info := ptp.New(ptp.TypeCommand, ptp.OC_GetDeviceInfo)
		info.TransactionId = seq.Next()
		tids = append(tids, info.TransactionId)
		require.NoError(t, ptp.WriteContainer(c, info))
	}

	for _, tid := range tids {
		data, err := ptp.ReadContainer(c, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, ptp.TypeData, data.Type)
		assert.Equal(t, tid, data.TransactionId)

		resp, err := ptp.ReadContainer(c, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, ptp.TypeResponse, resp.Type)
		assert.Equal(t, tid, resp.TransactionId)
		assert.NoError(t, ptp.CheckResponse(resp))
	}
}

func TestServer_Stop(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a tcp server")
	}
	address := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	s, err := NewServer(DefaultConfig(), address, false)
	require.NoError(t, err)
	defer s.pool.Release()

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	select {
	case <-s.Booted():
	case <-time.After(5 * time.Second):
		t.Fatal("server boot timeout")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	select {
	case err = <-done:
		t.Logf("server exits: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server still running after Stop")
	}

	_, err = net.DialTimeout("tcp", address, time.Second)
	assert.Error(t, err)
}
