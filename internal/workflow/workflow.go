// Package workflow orchestrates the VPC migration workflow.
package workflow

import (
	"context"
	"fmt"

	"github.com/kervan-cloud/kervan-cli/internal/config"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
)

// Manager orchestrates the migration workflow by delegating to registered workflow handlers.
type Manager struct {
	config  *config.Config
	logger  *logger.Logger
	handler Handler
	version string
}

// NewManager creates a new workflow manager.
func NewManager(ctx context.Context, cfg *config.Config, log *logger.Logger, version string) (*Manager, error) {
	registry := NewRegistry()

	if err := registry.Register(NewAliyunToAWSHandler()); err != nil {
		return nil, fmt.Errorf("failed to register Aliyun to AWS handler: %w", err)
	}

	handler, err := registry.Get(cfg.SourcePlatform, cfg.TargetPlatform)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow handler: %w", err)
	}

	if err := handler.Initialize(ctx, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize workflow handler: %w", err)
	}

	return &Manager{
		config:  cfg,
		logger:  log,
		handler: handler,
		version: version,
	}, nil
}

// Run executes the complete migration workflow and returns the terminal
// state. External sessions held by the handler are released on every path;
// cleanup failures are logged and never mask the run's outcome.
func (m *Manager) Run(ctx context.Context) (*State, error) {
	m.logger.Info("=========================================")
	m.logger.Infof("Kervan - VPC Migration Tool v%s", m.version)
	m.logger.Info("=========================================")
	m.logger.Infof("Source Platform: %s", m.config.SourcePlatform)
	m.logger.Infof("Target Platform: %s", m.config.TargetPlatform)
	m.logger.Infof("Project Name: %s", m.config.ProjectName)
	m.logger.Info("=========================================")

	state := NewState(m.config)
	m.logger.Debugf("Run ID: %s", state.RunID)

	defer func() {
		if err := m.handler.Close(); err != nil {
			m.logger.Warningf("Session cleanup reported: %v", err)
		}
	}()

	if err := m.handler.Execute(ctx, state); err != nil {
		m.logger.Errorf("Workflow failed: %v", err)
		return state, err
	}

	return state, nil
}
