package main

import (
	"context"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hasher/internal/discovery"
	"hasher/internal/driver/host"
)

// mineRequest is the body of POST /api/v1/mine.
type mineRequest struct {
	HeaderHex  string `json:"header_hex" binding:"required"`
	NonceStart uint32 `json:"nonce_start"`
	NonceEnd   uint32 `json:"nonce_end"`
}

// mineResponse is the body of a successful POST /api/v1/mine.
type mineResponse struct {
	Nonce     uint32 `json:"nonce"`
	Found     bool   `json:"found"`
	Worker    string `json:"worker"`
	LatencyMs int64  `json:"latency_ms"`
}

func (o *orchestrator) handleMine(c *gin.Context) {
	var req mineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	header, err := hex.DecodeString(req.HeaderHex)
	if err != nil || len(header) != 80 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "header_hex must decode to exactly 80 bytes"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := o.pool.Mine(ctx, header)
	latency := time.Since(start)
	o.recordMine(latency, result.Found)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mineResponse{
		Nonce:     result.Nonce,
		Found:     result.Found,
		Worker:    result.Worker,
		LatencyMs: latency.Milliseconds(),
	})
}

// healthResponse is the body of GET /api/v1/health.
type healthResponse struct {
	Status      string `json:"status"`
	BestMethod  string `json:"best_method"`
	RemoteCount int    `json:"remote_count"`
	Uptime      string `json:"uptime"`
}

func (o *orchestrator) handleHealth(c *gin.Context) {
	best := o.factory.GetBestMethod()
	status := "healthy"
	name := "none"
	if best == nil {
		status = "degraded"
	} else {
		name = best.Name()
	}

	o.mu.RLock()
	remoteCount := len(o.remotes)
	o.mu.RUnlock()

	c.JSON(http.StatusOK, healthResponse{
		Status:      status,
		BestMethod:  name,
		RemoteCount: remoteCount,
		Uptime:      time.Since(o.startTime).String(),
	})
}

// metricsResponse is the body of GET /api/v1/metrics.
type metricsResponse struct {
	TotalMines       uint64  `json:"total_mines"`
	SuccessfulMines  uint64  `json:"successful_mines"`
	FailedMines      uint64  `json:"failed_mines"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	Uptime           string  `json:"uptime"`
}

func (o *orchestrator) handleMetrics(c *gin.Context) {
	o.mu.RLock()
	total := o.totalMines
	successful := o.successfulMines
	failed := o.failedMines
	totalLatencyNs := o.totalLatencyNs
	o.mu.RUnlock()

	avgLatencyMs := float64(0)
	if total > 0 {
		avgLatencyMs = float64(totalLatencyNs) / float64(total) / 1e6
	}

	c.JSON(http.StatusOK, metricsResponse{
		TotalMines:       total,
		SuccessfulMines:  successful,
		FailedMines:      failed,
		AverageLatencyMs: avgLatencyMs,
		Uptime:           time.Since(o.startTime).String(),
	})
}

func (o *orchestrator) handleWorkers(c *gin.Context) {
	o.mu.RLock()
	remotes := o.remotes
	o.mu.RUnlock()

	addrs := make([]string, 0, len(remotes))
	for _, w := range remotes {
		addrs = append(addrs, w.Address())
	}

	c.JSON(http.StatusOK, gin.H{
		"local_method": o.factory.GetBestMethod().Name(),
		"remotes":      addrs,
		"capabilities": o.pool.RemoteCapabilities(),
	})
}

func (o *orchestrator) handleDiscovery(c *gin.Context) {
	o.mu.RLock()
	last := o.lastDiscovery
	o.mu.RUnlock()

	if last == nil {
		c.JSON(http.StatusOK, gin.H{
			"discovered": false,
			"message":    "no network discovery performed yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"discovered":  true,
		"discoveries": last,
	})
}

// discoveryScanRequest is the body of POST /api/v1/discovery/scan.
type discoveryScanRequest struct {
	Subnet    string `json:"subnet,omitempty"`
	Port      int    `json:"port,omitempty"`
	TimeoutMs int64  `json:"timeout_ms,omitempty"`
	SkipLocal bool   `json:"skip_localhost,omitempty"`
}

func (o *orchestrator) handleDiscoveryScan(c *gin.Context) {
	var req discoveryScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg := discovery.NewDiscoveryConfig()
	if req.Subnet != "" {
		cfg.Subnet = req.Subnet
	}
	if req.Port > 0 {
		cfg.Port = req.Port
	}
	if req.TimeoutMs > 0 {
		cfg.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	cfg.SkipLocalhost = req.SkipLocal

	discoveries, err := discovery.DiscoverServers(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	o.mu.Lock()
	o.lastDiscovery = discoveries
	o.mu.Unlock()

	var remotes []*host.RemoteWorker
	responding := 0
	for _, d := range discoveries {
		if !d.Responding {
			continue
		}
		responding++
		w, err := host.NewRemoteWorkerWithAddress(d.Address)
		if err != nil {
			continue
		}
		remotes = append(remotes, w)
	}
	o.rebuildPool(remotes)

	best := discovery.FindBestServer(discoveries)
	c.JSON(http.StatusOK, gin.H{
		"discoveries": discoveries,
		"best_server": best,
		"total_found": len(discoveries),
		"responding":  responding,
	})
}
