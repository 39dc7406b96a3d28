package gharchive

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the public GH Archive download host
	DefaultBaseURL = "https://data.gharchive.org"

	maxScanTokenSize = 32 * 1024 * 1024
)

// ErrMalformedLine marks a line that could not be decoded as an event.
// Callers that tolerate dirty input should count it and keep reading
var ErrMalformedLine = errors.New("gharchive: malformed line")

// Fetcher fetches a reader for a given hour
type Fetcher interface {
	Fetch(ctx context.Context, hour HourRef) (io.ReadCloser, error)
}

// HTTPFetcher fetches hour files over HTTP
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string // defaults to DefaultBaseURL when empty
}

// NewHTTPFetcherWithTimeout creates a new HTTPFetcher whose requests are
// bounded by d; zero means no client timeout
func NewHTTPFetcherWithTimeout(d time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: d}}
}

// Fetch returns the response body for the given hour's gzip file
func (f *HTTPFetcher) Fetch(ctx context.Context, hour HourRef) (io.ReadCloser, error) {
	base := f.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s.json.gz", base, hour.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return nil, fmt.Errorf(
				"gharchive: unexpected status %d for %s; error closing body: %v",
				resp.StatusCode, url, closeErr,
			)
		}
		return nil, fmt.Errorf("gharchive: unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// Reader streams EventEnvelope items from a gzip file
type Reader struct {
	r      io.ReadCloser
	gz     *gzip.Reader
	sc     *bufio.Scanner
	err    error
	line   int
	events int
	bytes  int64
}

// NewReader creates a new Reader from the given ReadCloser
func NewReader(r io.ReadCloser) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		if cerr := r.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	sc := bufio.NewScanner(gz)
	buf := make([]byte, 512*1024)
	sc.Buffer(buf, maxScanTokenSize)
	return &Reader{r: r, gz: gz, sc: sc}, nil
}

// Next reads the next event; returns io.EOF when done.
// A line that fails to decode returns an error wrapping ErrMalformedLine
// with its line number; calling Next again continues past it
func (rd *Reader) Next() (EventEnvelope, error) {
	if rd.err != nil {
		return EventEnvelope{}, rd.err
	}
	if !rd.sc.Scan() {
		if err := rd.sc.Err(); err != nil {
			rd.err = err
			return EventEnvelope{}, err
		}
		rd.err = io.EOF
		return EventEnvelope{}, io.EOF
	}
	rd.line++
	line := rd.sc.Bytes()
	rd.bytes += int64(len(line) + 1) // include newline

	var env EventEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return EventEnvelope{}, fmt.Errorf("%w at line %d: %v", ErrMalformedLine, rd.line, err)
	}
	rd.events++
	return env, nil
}

// Line returns the 1-based number of the last line read
func (rd *Reader) Line() int {
	return rd.line
}

// Close closes the underlying reader
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		if err := rd.gz.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			first = err
		}
	}
	if rd.r != nil {
		if err := rd.r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Stats returns the number of events parsed and total uncompressed bytes read so far
func (rd *Reader) Stats() (events int, bytes int64) {
	return rd.events, rd.bytes
}
