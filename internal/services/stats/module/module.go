// Package module provides the stats module implementation
package module

import (
	"hubtally/internal/modkit"

	"hubtally/internal/core/normalize"
	"hubtally/internal/services/stats/domain"
	"hubtally/internal/services/stats/ingest"
	"hubtally/internal/services/stats/service"
)

// Ports defines the stats module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the stats module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the stats module.
// It wires up the mirror, reader, and normalizer adapters and the service
// using config from deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	mirror := ingest.NewMirror(deps) // uses CORE_INGEST_* from deps.Cfg
	reader := ingest.NewReaderFactory()
	norm := ingest.NewNormalizer(normalize.New())

	svc := service.New(
		mirror, reader, norm, deps.RDS,
		service.Config{
			DayTimeout:   opts.DayTimeout,
			FetchTimeout: opts.FetchTimeout,
			StoreTimeout: opts.StoreTimeout,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "stats" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
