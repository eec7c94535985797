package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Transport performs one backend round trip and returns the decoded
// envelope. Failures to reach the backend or to decode its answer wrap
// types.ErrNetworkFailure; an envelope carrying an error field is returned
// as is for the caller to judge.
type Transport interface {
	Get(ctx context.Context, query url.Values) (*Envelope, error)
	Post(ctx context.Context, op Operation) (*Envelope, error)
}

// TokenStore is durable client storage for the auth token handed out by
// the backend.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
}

// maxBody caps how much of a response body is read.
const maxBody = 8 << 20

// HTTPTransport is a Transport over net/http. Requests carry the stored
// token, if any, as a bearer token.
type HTTPTransport struct {
	baseURL string
	tokens  TokenStore
	http    *http.Client
}

// NewHTTPTransport creates a transport for the backend at baseURL. tokens
// may be nil.
func NewHTTPTransport(baseURL string, timeout time.Duration, tokens TokenStore) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimSpace(baseURL),
		tokens:  tokens,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get issues GET <base>?<query>.
func (t *HTTPTransport) Get(ctx context.Context, query url.Values) (*Envelope, error) {
	u, err := url.Parse(t.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", types.ErrNetworkFailure, err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", types.ErrNetworkFailure, err)
	}
	return t.do(req)
}

// Post issues POST <base> with op as the JSON body.
func (t *HTTPTransport) Post(ctx context.Context, op Operation) (*Envelope, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", op.Path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", types.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req)
}

func (t *HTTPTransport) do(req *http.Request) (*Envelope, error) {
	req.Header.Set("Accept", "application/json")
	if t.tokens != nil {
		if token, err := t.tokens.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", types.ErrNetworkFailure, err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %s", types.ErrNetworkFailure, resp.Status)
		}
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrNetworkFailure, err)
	}
	if resp.StatusCode >= 300 && env.Error == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrNetworkFailure, resp.Status)
	}
	return &env, nil
}
