package workflow

import (
	"github.com/google/uuid"

	"github.com/kervan-cloud/kervan-cli/internal/common"
	"github.com/kervan-cloud/kervan-cli/internal/config"
	"github.com/kervan-cloud/kervan-cli/internal/transform"
	"github.com/kervan-cloud/kervan-cli/internal/vpc"
)

// Status is the workflow stage marker. completed and error are terminal.
type Status string

const (
	StatusStarted         Status = "started"
	StatusVpcExtracted    Status = "vpc_extracted"
	StatusDataTransformed Status = "data_transformed"
	StatusCdkGenerated    Status = "cdk_generated"
	StatusCompleted       Status = "completed"
	StatusError           Status = "error"
)

// DeploymentResult records the outcome of the deploy stage.
type DeploymentResult struct {
	Status      string `json:"status"`
	Output      string `json:"output"`
	ProjectPath string `json:"project_path"`
}

// State is the mutable record threaded through one migration run. It is
// owned by the Manager; stage functions receive it for the duration of their
// call and must not retain it.
type State struct {
	RunID        string
	SourceVpcID  string
	SourceRegion string
	ProjectName  string
	TargetDir    string

	SourceVpc   *vpc.Vpc
	TargetVpc   *transform.TargetVpc
	CdkCode     string
	ProjectPath string

	Status           Status
	ErrorMessage     string
	DeploymentResult *DeploymentResult
}

// NewState seeds a fresh run from configuration. The project name becomes a
// directory and file-name component, so it is sanitized here once and every
// stage sees the same value.
func NewState(cfg *config.Config) *State {
	return &State{
		RunID:        uuid.NewString(),
		SourceVpcID:  cfg.VpcID,
		SourceRegion: cfg.Region,
		ProjectName:  common.SanitizeName(cfg.ProjectName),
		TargetDir:    cfg.TargetDir,
		Status:       StatusStarted,
	}
}

// SetError moves the state to the terminal error status.
func (s *State) SetError(err error) {
	s.Status = StatusError
	s.ErrorMessage = err.Error()
}
