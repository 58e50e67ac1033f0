// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package throughput

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"time"
)

// ChunkSize is the amount of payload data over which one download speed
// sample gets taken.
const ChunkSize = 512 * 1024

// ErrUnsupportedScheme signals a probe URL with a scheme other than http or
// https.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// ErrNoData signals a throughput aggregate requested over a measurement that
// produced no speed samples, such as a payload smaller than a single chunk.
var ErrNoData = errors.New("no throughput data")

// Probe measures bulk-download throughput from a single HTTP(S) URL. It is
// entirely independent of the ping measurement pipeline: different data path,
// no shared machinery.
type Probe struct {
	url    *url.URL
	client *http.Client
}

// Option can be passed to New when creating new Probe objects.
type Option func(*Probe)

// WithClient substitutes the HTTP client used for the download, for callers
// needing special transport or TLS settings.
func WithClient(client *http.Client) Option {
	return func(p *Probe) {
		p.client = client
	}
}

// New returns a Probe for the given URL, failing with [ErrUnsupportedScheme]
// for anything but http(s).
func New(rawurl string, options ...Option) (*Probe, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("invalid throughput probe URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	p := &Probe{
		url:    u,
		client: &http.Client{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// URL returns the probe's URL in textual form.
func (p *Probe) URL() string { return p.url.String() }

// Result is one finished throughput measurement: the time taken to establish
// the connection, plus one download speed sample (in bytes per second) per
// fully timed payload chunk.
type Result struct {
	ConnectTime time.Duration
	Speeds      []float64
}

// Mean returns the arithmetic-mean download speed in bytes per second.
func (r Result) Mean() (float64, error) {
	if len(r.Speeds) == 0 {
		return 0, ErrNoData
	}
	sum := 0.0
	for _, speed := range r.Speeds {
		sum += speed
	}
	return sum / float64(len(r.Speeds)), nil
}

// Max returns the highest observed download speed in bytes per second.
func (r Result) Max() (float64, error) {
	if len(r.Speeds) == 0 {
		return 0, ErrNoData
	}
	max := r.Speeds[0]
	for _, speed := range r.Speeds[1:] {
		if speed > max {
			max = speed
		}
	}
	return max, nil
}

// Measure downloads the probe URL's payload, timing connection establishment
// and every [ChunkSize] chunk of body data. Measure blocks until the payload
// is drained, the server misbehaves, or the context is done.
func (p *Probe) Measure(ctx context.Context) (Result, error) {
	var result Result
	var connStart time.Time
	trace := &httptrace.ClientTrace{
		ConnectStart: func(network, addr string) {
			connStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				result.ConnectTime = time.Since(connStart)
			}
		},
	}
	req, err := http.NewRequestWithContext(
		httptrace.WithClientTrace(ctx, trace), http.MethodGet, p.url.String(), nil)
	if err != nil {
		return result, fmt.Errorf("cannot probe %q: %w", p.url.String(), err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot probe %q: %w", p.url.String(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("cannot probe %q: unexpected HTTP status %q",
			p.url.String(), resp.Status)
	}
	chunk := make([]byte, ChunkSize)
	for {
		start := time.Now()
		n, err := io.ReadFull(resp.Body, chunk)
		if n == ChunkSize {
			elapsed := time.Since(start)
			if elapsed <= 0 {
				elapsed = time.Nanosecond // too-coarse clock
			}
			result.Speeds = append(result.Speeds, float64(n)/elapsed.Seconds())
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return result, nil
			}
			return result, fmt.Errorf("reading payload of %q: %w", p.url.String(), err)
		}
	}
}
