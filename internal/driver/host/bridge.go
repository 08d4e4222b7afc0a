// Package host wraps a remote hasher-server into something the worker
// pool can dispatch nonce-range jobs to the same way it dispatches to
// a local method.
package host

import (
	"fmt"

	"hasher/internal/client"
)

// DefaultRemoteWorkerAddress is used when no address is configured.
const DefaultRemoteWorkerAddress = "127.0.0.1:8546"

// RemoteWorker represents a connection to a hasher-server instance
// running on another host.
type RemoteWorker struct {
	api        *client.APIClient
	serverAddr string
}

// NewRemoteWorker connects to the hasher-server at the default address.
func NewRemoteWorker() (*RemoteWorker, error) {
	return NewRemoteWorkerWithAddress(DefaultRemoteWorkerAddress)
}

// NewRemoteWorkerWithAddress connects to the hasher-server at addr and
// verifies it is reachable before returning.
func NewRemoteWorkerWithAddress(addr string) (*RemoteWorker, error) {
	w := &RemoteWorker{
		api:        client.NewAPIClient(addr),
		serverAddr: addr,
	}

	health, err := w.api.Health()
	if err != nil {
		return nil, fmt.Errorf("failed to reach hasher-server at %s: %w", addr, err)
	}
	if health.Status != "ok" {
		return nil, fmt.Errorf("hasher-server at %s reported status %q", addr, health.Status)
	}

	return w, nil
}

// Address returns the worker's configured address.
func (w *RemoteWorker) Address() string {
	return w.serverAddr
}

// MineRange dispatches a bounded nonce-range mining job to the remote
// worker and blocks for the result.
func (w *RemoteWorker) MineRange(header []byte, nonceStart, nonceEnd uint32) (*client.MineResponse, error) {
	return w.api.Mine(client.MineRequest{
		Header:     header,
		NonceStart: nonceStart,
		NonceEnd:   nonceEnd,
	})
}

// Capabilities reports the SIMD tiers the remote worker detected.
func (w *RemoteWorker) Capabilities() (*client.CapabilitiesResponse, error) {
	return w.api.Capabilities()
}
