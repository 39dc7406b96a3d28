// Package ingest holds adapter shims for stats ingest ports.
package ingest

import (
	"time"

	"hubtally/internal/modkit"
	"hubtally/internal/services/stats/domain"

	"hubtally/internal/adapters/ingest/gharchive"
)

// NewMirror constructs a domain.MirrorPort from config under CORE_INGEST_*.
// This keeps config-reading outside service and avoids passing platform deps into the aggregator
func NewMirror(deps modkit.Deps) domain.MirrorPort {
	ing := deps.Cfg.Prefix("CORE_INGEST_")

	cacheDir := ing.MayString("CACHE_DIR", "gharchive-cache")
	baseURL := ing.MayString("BASE_URL", gharchive.DefaultBaseURL)
	httpTO := time.Duration(ing.MayInt("HTTP_TIMEOUT_SECONDS", 0)) * time.Second // 0 == no client timeout

	f := gharchive.NewHTTPFetcherWithTimeout(httpTO)
	f.BaseURL = baseURL
	return gharchive.NewMirror(cacheDir, f)
}
