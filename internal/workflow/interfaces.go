// Package workflow defines interfaces for workflow abstraction.
package workflow

import (
	"context"

	"github.com/kervan-cloud/kervan-cli/internal/config"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
)

// Handler defines the interface for a workflow handler that orchestrates migration.
// Each workflow handler implements a specific source-to-target migration path.
type Handler interface {
	// Name returns the name of the workflow (e.g., "aliyun-to-aws")
	Name() string

	// SourcePlatform returns the source cloud platform identifier
	SourcePlatform() string

	// TargetPlatform returns the target cloud platform identifier
	TargetPlatform() string

	// Initialize prepares the workflow handler with configuration and logger
	Initialize(ctx context.Context, cfg *config.Config, log *logger.Logger) error

	// Execute runs the complete migration workflow against the given state
	Execute(ctx context.Context, state *State) error

	// Close releases every external session the handler opened
	Close() error
}
