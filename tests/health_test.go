package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthAndCapabilities probes GET /healthz and GET /v1/capabilities
// against a running hasher-server, confirming the HTTP surface answers
// before any mining request is attempted.
func TestHealthAndCapabilities(t *testing.T) {
	addr := serverAddr()
	if !reachable(addr) {
		t.Skipf("no hasher-server reachable at %s, set HASHER_TEST_ADDR", addr)
	}

	c := newTestClient()

	health, err := c.Health()
	require.NoError(t, err)
	assert.NotEmpty(t, health.Status)

	caps, err := c.Capabilities()
	require.NoError(t, err)
	assert.NotEmpty(t, caps.BestMethod, "server should report a best method")
	assert.NotEmpty(t, caps.Methods)
}

// TestMineAgainstUnreachableHost documents the client's behaviour when
// no worker is listening: an error, not a panic or hang.
func TestMineAgainstUnreachableHost(t *testing.T) {
	c := newTestClientAt("127.0.0.1:1")

	_, err := c.Mine(newMineRequest(0, 1000))
	assert.Error(t, err)
}
