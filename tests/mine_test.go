package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMineTinyRange sends a very small nonce range, mirroring the
// connectivity smoke test this package used to run first against a
// freshly started worker.
func TestMineTinyRange(t *testing.T) {
	addr := serverAddr()
	if !reachable(addr) {
		t.Skipf("no hasher-server reachable at %s, set HASHER_TEST_ADDR", addr)
	}

	resp, err := newTestClient().Mine(newMineRequest(0, 100))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Method)
	assert.Equal(t, uint64(101), resp.HashesAttempted)
}

// TestMineSmallRange exercises a somewhat larger range than the tiny
// case, the way the original probes escalated range size once basic
// connectivity was confirmed.
func TestMineSmallRange(t *testing.T) {
	addr := serverAddr()
	if !reachable(addr) {
		t.Skipf("no hasher-server reachable at %s, set HASHER_TEST_ADDR", addr)
	}

	resp, err := newTestClient().Mine(newMineRequest(0, 1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), resp.HashesAttempted)
}

// TestMineRejectsShortHeader asserts the server's 80-byte header
// validation round-trips through the HTTP client as an error rather
// than a malformed response.
func TestMineRejectsShortHeader(t *testing.T) {
	addr := serverAddr()
	if !reachable(addr) {
		t.Skipf("no hasher-server reachable at %s, set HASHER_TEST_ADDR", addr)
	}

	req := newMineRequest(0, 100)
	req.Header = req.Header[:79]

	_, err := newTestClient().Mine(req)
	assert.Error(t, err)
}
