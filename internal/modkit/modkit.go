package modkit

// Module is the common surface for batch modules that expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps
// modules typically expose New(deps Deps) Module and may delegate to this pattern
type Builder func(Deps) Module
