// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and is registered with a
// Manager, which loads the enabled ones onto the Fiber router at startup.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features such as 'catalog', 'library' and 'importer' are developed and
// tested in isolation and only meet in cmd/start.go.
package loader
