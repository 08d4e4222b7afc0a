// Package client provides an HTTP client for a remote hasher-server
// worker: submitting mining jobs and querying its capabilities.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient talks to a single hasher-server instance over HTTP/JSON.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewAPIClient creates a client against a worker listening at addr
// (host:port, no scheme).
func NewAPIClient(addr string) *APIClient {
	return &APIClient{
		BaseURL: fmt.Sprintf("http://%s", addr),
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// MineRequest is the body of POST /v1/mine.
type MineRequest struct {
	Header     []byte `json:"header"`       // 80-byte Bitcoin header, nonce field ignored
	NonceStart uint32 `json:"nonce_start"`
	NonceEnd   uint32 `json:"nonce_end"`
}

// MineResponse is the body of a successful POST /v1/mine.
type MineResponse struct {
	Nonce           uint32 `json:"nonce"`
	Found           bool   `json:"found"`
	HashesAttempted uint64 `json:"hashes_attempted"`
	LatencyUs       uint64 `json:"latency_us"`
	Method          string `json:"method"`
}

// CapabilitiesResponse is the body of GET /v1/capabilities.
type CapabilitiesResponse struct {
	BestMethod string                    `json:"best_method"`
	Methods    map[string]map[string]any `json:"methods"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Mine submits a mining job to the remote worker and blocks until it
// returns a result.
func (c *APIClient) Mine(req MineRequest) (*MineResponse, error) {
	raw, err := c.post("/v1/mine", req)
	if err != nil {
		return nil, err
	}

	var result MineResponse
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Capabilities queries the remote worker's detected SIMD tiers.
func (c *APIClient) Capabilities() (*CapabilitiesResponse, error) {
	raw, err := c.get("/v1/capabilities")
	if err != nil {
		return nil, err
	}

	var result CapabilitiesResponse
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Health calls the health endpoint used by discovery's subnet scan.
func (c *APIClient) Health() (*HealthResponse, error) {
	raw, err := c.get("/healthz")
	if err != nil {
		return nil, err
	}

	var result HealthResponse
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

func (c *APIClient) post(endpoint string, data interface{}) (*json.RawMessage, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.HTTPClient.Post(
		c.BaseURL+endpoint,
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func (c *APIClient) get(endpoint string) (*json.RawMessage, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) (*json.RawMessage, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		preview := string(respBody)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, preview)
	}

	var result json.RawMessage
	if err := json.Unmarshal(respBody, &result); err != nil {
		preview := string(respBody)
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}
		return nil, fmt.Errorf("failed to decode JSON response: %w (response: %s)", err, preview)
	}

	return &result, nil
}
