package readstate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"gicoinDesk/internal/model"
)

// StatusClient queries the off-chain airdrop status service.
type StatusClient struct {
	baseURL string
	http    *http.Client
}

// NewStatusClient returns nil when baseURL is empty.
func NewStatusClient(baseURL string, timeout time.Duration) *StatusClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &StatusClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Status performs GET <base>/airdrop/status/<address>.
func (c *StatusClient) Status(ctx context.Context, account common.Address) (model.AirdropStatus, error) {
	if c == nil {
		return model.AirdropStatus{}, fmt.Errorf("status service not configured")
	}
	url := c.baseURL + "/airdrop/status/" + account.Hex()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.AirdropStatus{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return model.AirdropStatus{}, fmt.Errorf("get status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.AirdropStatus{}, fmt.Errorf("status service returned %d", resp.StatusCode)
	}
	var out model.AirdropStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.AirdropStatus{}, fmt.Errorf("decode status: %w", err)
	}
	return out, nil
}
