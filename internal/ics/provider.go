package ics

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"epdtoday/internal/localtime"
	appLog "epdtoday/internal/log"
	"epdtoday/internal/model"
)

const (
	// DefaultTailBytes is how much of the end of the calendar the first
	// request asks for. Exporters append new events near the end, so the
	// tail usually already contains today.
	DefaultTailBytes = 200_000

	// DefaultTimeout bounds one transfer end to end, including a stalled
	// read on a flaky link.
	DefaultTimeout = 15 * time.Second

	userAgent = "epdtoday/1.0"
)

// Provider yields today's agenda rows into a caller-owned buffer. It is
// the seam between the calendar wire protocol and the display pipeline; an
// alternate wire protocol implements the same contract.
type Provider interface {
	// ReadToday fills dst with display rows for events overlapping the
	// local calendar day, in document parse order, and returns how many it
	// wrote. It blocks for the duration of the transfer and parse, writes
	// at most min(len(dst), screen threshold) rows, and retains no
	// reference to dst afterwards. A transport failure is returned as an
	// error with zero rows; it is never fatal to the caller.
	ReadToday(ctx context.Context, dst []model.Row) (int, error)
}

// Options configures an HTTPProvider. Every field except URL has a
// sensible zero-value default.
type Options struct {
	// URL is the ICS endpoint.
	URL string

	// InsecureTLS skips certificate verification. Private feeds on
	// self-hosted boxes frequently sit behind self-signed certificates.
	InsecureTLS bool

	// Timeout bounds a single transfer. Defaults to DefaultTimeout.
	Timeout time.Duration

	// TailBytes is the size of the byte-range tail request. Defaults to
	// DefaultTailBytes.
	TailBytes int64

	// UIRows is the "enough for one screen" threshold. The effective row
	// budget of a call is min(len(dst), UIRows). Defaults to
	// model.DefaultRows.
	UIRows int

	// Location is the wall clock for naive local and all-day stamps and
	// for the offset measurement. nil means time.Local.
	Location *time.Location
}

// HTTPProvider fetches an ICS calendar over HTTP(S) and stream-parses it.
// Tail-first: a byte-range request for the trailing TailBytes is issued
// first, and only when that transfer succeeds with zero qualifying rows is
// one full unranged request made.
type HTTPProvider struct {
	opts   Options
	client *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider constructs a provider for the given options.
func NewHTTPProvider(opts Options) *HTTPProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.TailBytes <= 0 {
		opts.TailBytes = DefaultTailBytes
	}
	if opts.UIRows <= 0 {
		opts.UIRows = model.DefaultRows
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &HTTPProvider{
		opts: opts,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}
}

// ReadToday implements Provider.
//
// A failed tail transfer is a hard failure for this call: the fallback
// exists for servers that ignore Range requests or tails that simply do
// not contain today, not for a link that is down.
func (p *HTTPProvider) ReadToday(ctx context.Context, dst []model.Row) (int, error) {
	if len(dst) == 0 || p.opts.URL == "" {
		return 0, nil
	}

	filled, err := p.fetchAndParse(ctx, dst, true)
	if err != nil {
		return 0, err
	}
	if filled > 0 {
		return filled, nil
	}

	appLog.Info("ics tail empty, fetching full document", "url", redactURL(p.opts.URL))
	filled, err = p.fetchAndParse(ctx, dst, false)
	if err != nil {
		return 0, err
	}
	return filled, nil
}

// fetchAndParse performs one transfer (tail or full) and stream-parses the
// body, filling dst until the row budget is met. The local offset is
// measured once and used for the entire pass.
func (p *HTTPProvider) fetchAndParse(ctx context.Context, dst []model.Row, tail bool) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	if tail {
		req.Header.Set("Range", fmt.Sprintf("bytes=-%d", p.opts.TailBytes))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// A server that ignores Range answers 200; both are fine.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("ics fetch: unexpected status %q", resp.Status)
	}

	now := time.Now().In(p.opts.Location)
	nowUTC := now.Unix()
	offset := localtime.OffsetSeconds(now)

	limit := len(dst)
	if p.opts.UIRows < limit {
		limit = p.opts.UIRows
	}

	filled := 0
	ScanEvents(resp.Body, p.opts.Location, func(ev Event) bool {
		if !OverlapsLocalDay(ev.Start, ev.End, nowUTC, offset) {
			return true
		}
		dst[filled] = BuildRow(ev, offset)
		filled++
		return filled < limit
	})

	appLog.Debug("ics fetch pass done",
		"url", redactURL(p.opts.URL),
		"tail", tail,
		"status", resp.StatusCode,
		"filled", filled,
	)
	return filled, nil
}

// redactURL strips path and query from a calendar URL before logging;
// private feed URLs embed capability tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
