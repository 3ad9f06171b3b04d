// Package gateway retrieves content-addressed data through a ranked list of
// HTTP gateways. A fetch walks the list in order and returns the first 2xx
// body; only when every endpoint has failed or timed out does the caller see
// an error, and that error carries the full per-endpoint attempt log.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ATTEMPT_TIMEOUT time.Duration = 8 * time.Second

	// Kept generic on purpose: some public gateways throttle unknown tools.
	userAgent = "Mozilla/5.0 (compatible; pikchain)"
)

// DefaultGateways is ranked fastest/most reliable first for the public
// setup. Order matters: FetchContent never tries endpoint k+1 when k
// succeeded.
func DefaultGateways() []string {
	return []string{
		"https://ipfs.io/ipfs/",
		"https://cloudflare-ipfs.com/ipfs/",
		"https://gateway.pinata.cloud/ipfs/",
		"https://gateway.ipfs.io/ipfs/",
	}
}

// LocalGateways puts the developer's own IPFS daemon ahead of the public
// gateways.
func LocalGateways() []string {
	return append([]string{"http://localhost:3001/ipfs/"}, DefaultGateways()...)
}

// Attempt records one failed gateway try. Status is 0 when the request never
// produced an HTTP response (network error or timeout).
type Attempt struct {
	Gateway string
	Status  int
	Err     error
}

func (a Attempt) String() string {
	if a.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", a.Gateway, a.Status)
	}
	return fmt.Sprintf("%s: %s", a.Gateway, a.Err)
}

type ExhaustedError struct {
	CID      string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("all gateways exhausted for cid %s: [%s]", e.CID, strings.Join(parts, "; "))
}

type Resolver struct {
	gateways []string
	client   *http.Client
	logger   *zap.Logger

	// AttemptTimeout bounds each gateway try, not the whole fetch.
	AttemptTimeout time.Duration
	// VerifyContent hashes fetched bytes against the cid where the cid
	// format allows it; mismatches count as failed attempts.
	VerifyContent bool
}

func NewResolver(gateways []string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		gateways:       append([]string{}, gateways...),
		client:         &http.Client{},
		logger:         logger,
		AttemptTimeout: ATTEMPT_TIMEOUT,
	}
}

func (r *Resolver) Gateways() []string {
	return append([]string{}, r.gateways...)
}

// FetchContent resolves cid to its bytes and declared content type through
// the gateway list. The cid is trimmed but otherwise treated as an opaque
// exact-match key.
func (r *Resolver) FetchContent(ctx context.Context, cidStr string) ([]byte, string, error) {
	cidStr = strings.TrimSpace(cidStr)
	attempts := []Attempt{}

	for _, gw := range r.gateways {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		body, contentType, status, err := r.tryGateway(ctx, gw, cidStr)
		if err != nil {
			attempts = append(attempts, Attempt{Gateway: gw, Status: status, Err: err})
			r.logger.Warn("gateway attempt failed",
				zap.String("cid", cidStr),
				zap.String("gateway", gw),
				zap.Int("status", status),
				zap.Error(err))
			continue
		}

		if r.VerifyContent {
			if verr := Verify(cidStr, body); verr != nil {
				attempts = append(attempts, Attempt{Gateway: gw, Err: verr})
				r.logger.Warn("gateway returned content not matching cid",
					zap.String("cid", cidStr),
					zap.String("gateway", gw))
				continue
			}
		}

		return body, contentType, nil
	}

	return nil, "", &ExhaustedError{CID: cidStr, Attempts: attempts}
}

func (r *Resolver) tryGateway(ctx context.Context, gw, cidStr string) (body []byte, contentType string, status int, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, gw+cidStr, nil)
	if err != nil {
		return nil, "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", 0, err
	}

	contentType = resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, 0, nil
}
