package main

import (
	"sync"
	"time"

	"hasher/internal/discovery"
	"hasher/internal/driver/host"
	"hasher/internal/worker"
	"hasher/pkg/hashing/factory"
)

// orchestrator owns the local hashing method, the set of remote
// hasher-server workers, and the sharded mining pool built from both.
// It also accumulates the metrics the API surfaces over /api/v1/metrics.
type orchestrator struct {
	factory *factory.HashMethodFactory
	pool    *worker.Pool
	remotes []*host.RemoteWorker

	startTime time.Time

	mu              sync.RWMutex
	totalMines      uint64
	successfulMines uint64
	failedMines     uint64
	totalLatencyNs  uint64
	lastDiscovery   []discovery.DiscoveryResult
}

func newOrchestrator(remotes []*host.RemoteWorker) (*orchestrator, error) {
	f := factory.NewHashMethodFactory(nil)
	if err := f.InitializeBestMethod(); err != nil {
		return nil, err
	}

	return &orchestrator{
		factory:   f,
		pool:      worker.NewPool(f.GetBestMethod(), remotes),
		remotes:   remotes,
		startTime: time.Now(),
	}, nil
}

func (o *orchestrator) recordMine(latency time.Duration, found bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totalMines++
	o.totalLatencyNs += uint64(latency.Nanoseconds())
	if found {
		o.successfulMines++
	} else {
		o.failedMines++
	}
}

// rebuildPool replaces the remote worker set and the pool built from it,
// used after a fresh discovery scan picks up new hasher-server instances.
func (o *orchestrator) rebuildPool(remotes []*host.RemoteWorker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remotes = remotes
	o.pool = worker.NewPool(o.factory.GetBestMethod(), remotes)
}
