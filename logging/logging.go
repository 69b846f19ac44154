package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger: JSON production logging when production is true,
// human-readable development logging otherwise.
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
