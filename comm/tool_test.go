package comm

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandNum(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandNum(5, 10)
		assert.GreaterOrEqual(t, n, 5)
		assert.Less(t, n, 10)
	}
	assert.Equal(t, 3, RandNum(3, 3))
}

func TestSavePid(t *testing.T) {
	f := filepath.Join(t.TempDir(), "ptp.pid")
	pid := SavePid(f)
	bts, err := os.ReadFile(f)
	require.NoError(t, err)
	assert.Equal(t, pid, string(bts))
	assert.Equal(t, strconv.Itoa(os.Getpid()), pid)
}
