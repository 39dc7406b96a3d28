package gharchive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Mirror keeps a local directory of GH Archive hour files.
// One .json.gz per hour; writes go through a .part temp file so a crashed
// download never leaves a truncated hour file behind
type Mirror struct {
	dir     string
	fetcher Fetcher
}

// NewMirror builds a mirror over dir; the directory is created when missing.
// fetcher may not be nil
func NewMirror(dir string, fetcher Fetcher) *Mirror {
	_ = os.MkdirAll(dir, 0o755)
	return &Mirror{dir: dir, fetcher: fetcher}
}

// Dir returns the mirror's directory
func (m *Mirror) Dir() string { return m.dir }

// Path returns the local path for the given hour
func (m *Mirror) Path(hour HourRef) string {
	return filepath.Join(m.dir, hour.String()+".json.gz")
}

// Ensure makes the hour file present locally. A file already on disk is
// trusted and no request is made; fetched reports whether a download happened
func (m *Mirror) Ensure(ctx context.Context, hour HourRef) (fetched bool, err error) {
	path := m.Path(hour)
	if fi, serr := os.Stat(path); serr == nil && fi.Mode().IsRegular() {
		return false, nil
	}

	body, err := m.fetcher.Fetch(ctx, hour)
	if err != nil {
		return false, err
	}
	if err := writeAtomic(path, body); err != nil {
		return false, err
	}
	return true, nil
}

// Open opens the local hour file for reading
func (m *Mirror) Open(hour HourRef) (io.ReadCloser, error) {
	return os.Open(m.Path(hour))
}

// CachedHours lists the hours of the given UTC day present in the mirror,
// sorted ascending. Files whose names do not parse as hour files are skipped
func (m *Mirror) CachedHours(year, month, day int) ([]HourRef, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	var hours []HourRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		hr, ok := ParseHourName(e.Name())
		if !ok {
			continue
		}
		if hr.Year != year || hr.Month != month || hr.Day != day {
			continue
		}
		hours = append(hours, hr)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
	return hours, nil
}

// writeAtomic streams body to path via a .part temp file, fsyncs, then renames.
// body is always closed
func writeAtomic(path string, body io.ReadCloser) error {
	tmp := path + ".part"
	defer func() { _ = os.Remove(tmp) }()

	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	out, err := os.Create(tmp)
	if err != nil {
		_ = body.Close()
		return err
	}
	_, werr := io.Copy(out, body)
	serr := out.Sync()
	cerr := out.Close()
	_ = body.Close()
	if werr != nil {
		return werr
	}
	if serr != nil {
		return serr
	}
	if cerr != nil {
		return cerr
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("gharchive: publish %s: %w", filepath.Base(path), err)
	}
	return nil
}
