package ingest

import (
	"io"

	"hubtally/internal/services/stats/domain"

	"hubtally/internal/adapters/ingest/gharchive"
)

// readerFactory adapts gharchive.NewReader to the domain.ReaderFactory
type readerFactory struct{}

// NewReaderFactory returns a factory that wraps gharchive.NewReader
func NewReaderFactory() domain.ReaderFactory { return readerFactory{} }

func (readerFactory) New(rc io.ReadCloser) (domain.ReaderPort, error) {
	r, err := gharchive.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return r, nil
}
