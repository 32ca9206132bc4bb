package observability

import (
	"github.com/torgmarket/catalog-api/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}
