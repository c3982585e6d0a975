// Package network provides the HTTP client shared by every outbound request.
package network

import (
	"net/http"
	"time"

	"github.com/cinedex/cinedex/constant"
)

// Client is the shared HTTP client. Per-request deadlines come from the caller's context;
// the client-level timeout only bounds requests made without one.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// userAgentTransport stamps requests that do not carry a User-Agent yet.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(req)
}
