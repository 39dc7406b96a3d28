package gharchive

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"testing"
)

// gzipLines builds a gzip compressed NDJSON body from the given lines
func gzipLines(t *testing.T, lines ...string) io.ReadCloser {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, l := range lines {
		if _, err := gz.Write([]byte(l + "\n")); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return io.NopCloser(&buf)
}

func TestReaderStreamsEvents(t *testing.T) {
	rd, err := NewReader(gzipLines(t,
		`{"id":"1","type":"PushEvent","actor":{"id":7,"login":"Ada"},"repo":{"id":9,"name":"ada/engine","language":"Rust"}}`,
		`{"id":"2","type":"WatchEvent","actor":{"id":8,"login":"bob"},"repo":{"id":10,"name":"bob/site"}}`,
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer func() { _ = rd.Close() }()

	ev, err := rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Type != "PushEvent" || ev.Actor.Login != "Ada" || ev.Repo.Name != "ada/engine" || ev.Repo.Language != "Rust" {
		t.Fatalf("unexpected first event: %+v", ev)
	}

	ev, err = rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Type != "WatchEvent" || ev.Repo.Language != "" {
		t.Fatalf("unexpected second event: %+v", ev)
	}

	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if events, _ := rd.Stats(); events != 2 {
		t.Fatalf("Stats events = %d, want 2", events)
	}
}

func TestReaderMalformedLineIsRecoverable(t *testing.T) {
	rd, err := NewReader(gzipLines(t,
		`{"id":"1","type":"PushEvent","actor":{"login":"ada"},"repo":{"name":"ada/engine"}}`,
		`{not json`,
		`{"id":"3","type":"ForkEvent","actor":{"login":"bob"},"repo":{"name":"bob/site"}}`,
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer func() { _ = rd.Close() }()

	if _, err := rd.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	_, err = rd.Next()
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	if rd.Line() != 2 {
		t.Fatalf("Line = %d, want 2", rd.Line())
	}

	// reading continues past the bad line
	ev, err := rd.Next()
	if err != nil {
		t.Fatalf("Next after malformed: %v", err)
	}
	if ev.Type != "ForkEvent" {
		t.Fatalf("unexpected event after malformed line: %+v", ev)
	}
	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if events, _ := rd.Stats(); events != 2 {
		t.Fatalf("Stats events = %d, want 2", events)
	}
}

func TestReaderEOFIsSticky(t *testing.T) {
	rd, err := NewReader(gzipLines(t))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer func() { _ = rd.Close() }()

	for range 3 {
		if _, err := rd.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("expected EOF, got %v", err)
		}
	}
}

func TestNewReaderNonGzip(t *testing.T) {
	if _, err := NewReader(io.NopCloser(bytes.NewBufferString("plain text"))); err == nil {
		t.Fatal("expected error for non gzip input")
	}
}
