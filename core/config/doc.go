// Package config provides configuration management for the media tracker.
//
// Values come from environment variables, optionally seeded from a .env file.
// Defaults are declared on the section structs through `default` tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and upload limits
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the import archive bucket
//   - Log: Logging level and format
//   - Metadata: Jikan base URL, call spacing and retry policy
//   - Import: archive toggle and upload size
//   - Catalog: cache TTL and ranking constants
//   - Refresh: schedule of the background metadata refresh
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
