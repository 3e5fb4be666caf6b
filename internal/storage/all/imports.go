// Package all registers every storage backend with the factory via blank
// imports. The CLI imports this package so that the backend named in the
// configuration is always available without the core code importing drivers.
package all

import (
	_ "arxivetl/internal/storage/postgres"
	_ "arxivetl/internal/storage/sqlite"
)
