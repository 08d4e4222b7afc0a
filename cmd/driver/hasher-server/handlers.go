package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hasher/pkg/hashing/core"
	"hasher/pkg/hashing/factory"
)

const headerLen = 80

// server holds the state shared by every HTTP handler.
type server struct {
	factory *factory.HashMethodFactory
	id      string
}

func newServer(f *factory.HashMethodFactory, id string) *server {
	return &server{factory: f, id: id}
}

// mineRequest is the body of POST /v1/mine.
type mineRequest struct {
	Header     []byte `json:"header" binding:"required"`
	NonceStart uint32 `json:"nonce_start"`
	NonceEnd   uint32 `json:"nonce_end"`
}

// mineResponse is the body of a successful POST /v1/mine.
type mineResponse struct {
	Nonce           uint32 `json:"nonce"`
	Found           bool   `json:"found"`
	HashesAttempted uint64 `json:"hashes_attempted"`
	LatencyUs       uint64 `json:"latency_us"`
	Method          string `json:"method"`
}

func (s *server) handleMine(c *gin.Context) {
	var req mineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Header) != headerLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "header must be exactly 80 bytes"})
		return
	}
	if req.NonceEnd < req.NonceStart {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nonce_end must be >= nonce_start"})
		return
	}

	method := s.factory.GetBestMethod()
	if method == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no hash method available"})
		return
	}

	start := time.Now()
	nonce, err := method.MineHeader(req.Header, req.NonceStart, req.NonceEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	latency := time.Since(start)

	found := verifyDifficulty1(req.Header, nonce)

	c.JSON(http.StatusOK, mineResponse{
		Nonce:           nonce,
		Found:           found,
		HashesAttempted: uint64(req.NonceEnd-req.NonceStart) + 1,
		LatencyUs:       uint64(latency.Microseconds()),
		Method:          method.Name(),
	})
}

// verifyDifficulty1 independently re-checks a candidate nonce, since
// MineHeader returns nonceEnd both when it finds a solution there and
// when it exhausts the range without one.
func verifyDifficulty1(header []byte, nonce uint32) bool {
	canon := core.NewCanonicalSHA256()
	hash, err := canon.ComputeDoubleSHA256WithNonce(header, nonce)
	if err != nil {
		return false
	}
	return canon.IsValidDifficulty1(hash)
}

func (s *server) handleCapabilities(c *gin.Context) {
	report := s.factory.GetDetectionReport()

	methods := make(map[string]map[string]any, len(report.Methods))
	for _, status := range report.Methods {
		methods[status.Name] = map[string]any{
			"available":    status.Available,
			"priority":     status.Priority,
			"description":  status.Description,
			"capabilities": status.Capabilities,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"worker_id":   s.id,
		"best_method": report.BestMethod,
		"methods":     methods,
	})
}

func (s *server) handleHealth(c *gin.Context) {
	status := "ok"
	if s.factory.GetBestMethod() == nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
