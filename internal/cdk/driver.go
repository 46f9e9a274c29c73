// Package cdk drives the AWS CDK and npm toolchains as subprocesses to
// scaffold, populate, and deploy the generated project.
package cdk

import (
	"context"
	"fmt"
	"strings"

	"github.com/kervan-cloud/kervan-cli/internal/common"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
)

// ScaffoldError reports a failed project initialization.
type ScaffoldError struct {
	Stderr string
	Err    error
}

func (e *ScaffoldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cdk init failed: %v", e.Err)
	}
	return fmt.Sprintf("cdk init failed: %s", e.Stderr)
}

func (e *ScaffoldError) Unwrap() error { return e.Err }

// DeployError reports a failed stack deployment.
type DeployError struct {
	Stderr string
	Err    error
}

func (e *DeployError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cdk deploy failed: %v", e.Err)
	}
	return fmt.Sprintf("cdk deploy failed: %s", e.Stderr)
}

func (e *DeployError) Unwrap() error { return e.Err }

// Driver runs toolchain commands for one project directory at a time.
type Driver struct {
	logger *logger.Logger
}

func NewDriver(log *logger.Logger) *Driver {
	return &Driver{logger: log}
}

// CheckTools verifies the cdk and npm binaries are reachable on PATH and
// logs their versions.
func (d *Driver) CheckTools() error {
	for _, tool := range []string{"cdk", "npm"} {
		if err := common.CheckCommand(tool); err != nil {
			return fmt.Errorf("required tool %s not found: %w", tool, err)
		}
		if out, err := common.RunCommand(tool, "--version"); err == nil {
			d.logger.Debugf("%s version: %s", tool, strings.TrimSpace(out))
		}
	}
	return nil
}

// Scaffold creates the project directory and runs cdk init inside it.
func (d *Driver) Scaffold(ctx context.Context, projectPath string) error {
	if err := common.EnsureDir(projectPath); err != nil {
		return &ScaffoldError{Err: err}
	}

	d.logger.Infof("Initializing CDK project at %s", projectPath)
	res, err := common.RunCommandIn(ctx, projectPath, "cdk", "init", "app", "--language", "typescript")
	if err != nil {
		return &ScaffoldError{Err: err}
	}
	if res.ExitCode != 0 {
		return &ScaffoldError{Stderr: res.Stderr}
	}
	return nil
}

// Deploy installs dependencies, bootstraps the environment, and deploys the
// stack. Only a non-zero deploy exit is fatal. Install failures are logged
// and tolerated; a genuinely broken install surfaces through the deploy step.
// Bootstrap is best-effort since it no-ops on already-bootstrapped accounts.
func (d *Driver) Deploy(ctx context.Context, projectPath string) (string, error) {
	d.logger.Info("Installing CDK dependencies...")
	if res, err := common.RunCommandIn(ctx, projectPath, "npm", "install"); err != nil {
		return "", &DeployError{Err: err}
	} else if res.ExitCode != 0 {
		d.logger.Warningf("npm install exited %d, continuing: %s", res.ExitCode, res.Stderr)
	}

	d.logger.Info("Bootstrapping CDK...")
	if res, err := common.RunCommandIn(ctx, projectPath, "cdk", "bootstrap"); err != nil {
		return "", &DeployError{Err: err}
	} else if res.ExitCode != 0 {
		d.logger.Debugf("cdk bootstrap exited %d: %s", res.ExitCode, res.Stderr)
	}

	d.logger.Info("Deploying CDK stack...")
	res, err := common.RunCommandIn(ctx, projectPath, "cdk", "deploy", "--require-approval", "never")
	if err != nil {
		return "", &DeployError{Err: err}
	}
	if res.ExitCode != 0 {
		return "", &DeployError{Stderr: res.Stderr}
	}
	return res.Stdout, nil
}
