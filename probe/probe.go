// Package probe performs the single HTTP check each migration phase
// uses to observe whether the backend is reachable through the current
// ingress controller.
package probe

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxBody = 4 << 10

// Result captures one probe attempt. A transport-level failure (DNS,
// connection refused, timeout) sets Err and leaves StatusCode zero;
// any HTTP response, matching or not, sets StatusCode and Body.
// Whether a negative result is good or bad news is up to the caller —
// after removing a controller, unreachable is exactly what the demo
// wants to see.
type Result struct {
	StatusCode int
	Body       string
	Err        error
}

// Reached reports whether any HTTP response was obtained at all.
func (r Result) Reached() bool { return r.Err == nil }

// Matches reports whether a response was obtained and its status code
// equals the expectation.
func (r Result) Matches(code int) bool { return r.Err == nil && r.StatusCode == code }

// Prober issues one-shot GET requests with fixed basic auth. TLS
// verification is off: the demo serves a self-signed certificate.
type Prober struct {
	client *http.Client
	user   string
	pass   string
}

func New(user, pass string, timeout time.Duration) *Prober {
	return &Prober{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		user: user,
		pass: pass,
	}
}

// Check issues a single GET to url, following redirects. No retries;
// each phase probes exactly once.
func (p *Prober) Check(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Err: err}
	}
	req.SetBasicAuth(p.user, p.pass)

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	return Result{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
