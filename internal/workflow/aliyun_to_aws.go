// Package workflow provides workflow handlers for specific migration paths.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kervan-cloud/kervan-cli/internal/cdk"
	"github.com/kervan-cloud/kervan-cli/internal/cloud/aliyun"
	"github.com/kervan-cloud/kervan-cli/internal/cloud/aws"
	"github.com/kervan-cloud/kervan-cli/internal/codegen"
	"github.com/kervan-cloud/kervan-cli/internal/config"
	"github.com/kervan-cloud/kervan-cli/internal/llm"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
	"github.com/kervan-cloud/kervan-cli/internal/transform"
	"github.com/kervan-cloud/kervan-cli/internal/vpc"
)

// AliyunToAWSHandler implements the workflow for migrating VPC configuration
// from Alibaba Cloud to AWS.
type AliyunToAWSHandler struct {
	config  *config.Config
	logger  *logger.Logger
	bedrock llm.Invoker
	driver  *cdk.Driver

	// Opened lazily by their stages, released by Close.
	provider  *aliyun.Provider
	cdkServer *aws.CdkServer
}

func NewAliyunToAWSHandler() *AliyunToAWSHandler     { return &AliyunToAWSHandler{} }
func (h *AliyunToAWSHandler) Name() string           { return "Aliyun to AWS VPC Migration" }
func (h *AliyunToAWSHandler) SourcePlatform() string { return "aliyun" }
func (h *AliyunToAWSHandler) TargetPlatform() string { return "aws" }

func (h *AliyunToAWSHandler) Initialize(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	h.config, h.logger = cfg, log
	h.driver = cdk.NewDriver(log)
	if err := h.driver.CheckTools(); err != nil {
		return err
	}

	bedrock, err := llm.NewBedrockClient(ctx, cfg.BedrockRegion, cfg.ModelID)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock client: %w", err)
	}
	h.bedrock = bedrock
	return nil
}

func (h *AliyunToAWSHandler) Execute(ctx context.Context, state *State) error {
	h.logger.Info("=========================================")
	h.logger.Infof("Executing: %s", h.Name())
	h.logger.Info("=========================================")

	// Extraction never aborts the run; it degrades to mock data instead.
	h.logger.Stage(1, "Extracting VPC configuration from Alibaba Cloud")
	h.extractVpc(ctx, state)

	if err := h.runStages(ctx, state); err != nil {
		return err
	}

	h.logger.Success("=========================================")
	h.logger.Success("Aliyun to AWS migration completed successfully!")
	h.logger.Success("=========================================")
	return nil
}

// runStages drives the fatal stages in order. The first failure moves the
// state to error and the remaining stages never run.
func (h *AliyunToAWSHandler) runStages(ctx context.Context, state *State) error {
	steps := []struct {
		stage   int
		title   string
		skip    bool
		skipMsg string
		errMsg  string
		fn      func(context.Context, *State) error
	}{
		{2, "Transforming VPC data to AWS format", false, "", "data transformation failed", h.transformData},
		{3, "Generating CDK project", false, "", "CDK project generation failed", h.generateProject},
		{4, "Deploying to AWS", h.config.SkipDeploy, "Skipping deployment (SKIP_DEPLOY=true)", "deployment failed", h.deployStack},
	}
	for _, step := range steps {
		if step.skip {
			h.logger.Warning(step.skipMsg)
			h.skipDeploy(state)
			continue
		}
		h.logger.Stage(step.stage, step.title)
		if err := step.fn(ctx, state); err != nil {
			err = fmt.Errorf("%s: %w", step.errMsg, err)
			state.SetError(err)
			return err
		}
	}
	return nil
}

// Close releases the MCP sessions opened during the run.
func (h *AliyunToAWSHandler) Close() error {
	var errs []error
	if h.provider != nil {
		if err := h.provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("aliyun session: %w", err))
		}
		h.provider = nil
	}
	if h.cdkServer != nil {
		if err := h.cdkServer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cdk session: %w", err))
		}
		h.cdkServer = nil
	}
	return errors.Join(errs...)
}

// extractVpc fetches the source VPC, substituting deterministic mock data
// whenever the provider cannot deliver a usable record.
func (h *AliyunToAWSHandler) extractVpc(ctx context.Context, state *State) {
	state.SourceVpc = h.fetchVpc(ctx, state)
	state.Status = StatusVpcExtracted
	h.logger.Successf("VPC extracted: %s (%s)", state.SourceVpc.Name, state.SourceVpc.ID)
}

func (h *AliyunToAWSHandler) fetchVpc(ctx context.Context, state *State) *vpc.Vpc {
	if !h.config.HasCredentials() {
		h.logger.Warning("Alibaba Cloud credentials not configured, using mock VPC data")
		return vpc.Mock(state.SourceVpcID, state.SourceRegion)
	}

	provider, err := aliyun.NewProvider(ctx, h.config.AliyunAccessKeyID, h.config.AliyunAccessKeySecret, h.bedrock, h.logger)
	if err != nil {
		h.logger.Warningf("Could not reach Alibaba Cloud provider, using mock VPC data: %v", err)
		return vpc.Mock(state.SourceVpcID, state.SourceRegion)
	}
	h.provider = provider

	var extracted *vpc.Vpc
	if state.SourceVpcID == "" {
		payload, listErr := provider.ListVpcs(ctx, state.SourceRegion)
		if listErr != nil {
			err = listErr
		} else {
			extracted, err = vpc.NormalizeMap(payload, "", state.SourceRegion)
		}
	} else {
		extracted, err = provider.GetVpcInfo(ctx, state.SourceVpcID, state.SourceRegion)
	}

	if err != nil {
		var degraded *vpc.DegradedError
		if errors.As(err, &degraded) {
			h.logger.Warningf("Extraction degraded (%s), using mock VPC data", degraded.Reason)
		} else {
			h.logger.Warningf("Extraction failed, using mock VPC data: %v", err)
		}
		return vpc.Mock(state.SourceVpcID, state.SourceRegion)
	}

	if len(extracted.Subnets) == 0 && state.SourceVpcID != "" {
		subnets, subErr := provider.GetVSwitches(ctx, state.SourceVpcID, state.SourceRegion)
		if subErr != nil {
			h.logger.Debugf("VSwitch lookup failed: %v", subErr)
		} else if len(subnets) > 0 {
			extracted.Subnets = subnets
		}
	}
	return extracted
}

func (h *AliyunToAWSHandler) transformData(_ context.Context, state *State) error {
	target, err := transform.Apply(state.SourceVpc)
	if err != nil {
		return err
	}
	state.TargetVpc = target
	state.Status = StatusDataTransformed
	h.logger.Successf("Transformed VPC %s with %d subnets and %d security groups",
		target.Vpc.Name, len(target.Subnets), len(target.SecurityGroups))
	return nil
}

func (h *AliyunToAWSHandler) generateProject(ctx context.Context, state *State) error {
	projectPath := filepath.Join(state.TargetDir, state.ProjectName)
	if err := h.driver.Scaffold(ctx, projectPath); err != nil {
		return err
	}

	cdkServer, err := aws.NewCdkServer(ctx, h.logger)
	if err != nil {
		return err
	}
	h.cdkServer = cdkServer

	tools, err := cdkServer.Tools(ctx)
	if err != nil {
		return err
	}

	h.logger.Info("Generating CDK code...")
	generator := codegen.NewGenerator(h.bedrock, cdkServer, tools, h.logger)
	raw, err := generator.Generate(ctx, codegen.Describe(state.TargetVpc, state.ProjectName))
	if err != nil {
		return err
	}
	code, err := codegen.ExtractCode(raw)
	if err != nil {
		return err
	}

	if err := cdk.WriteStackFile(projectPath, state.ProjectName, code); err != nil {
		return err
	}
	if err := cdk.WriteBinFile(projectPath, state.ProjectName, codegen.ClassName(state.ProjectName)); err != nil {
		return err
	}

	state.CdkCode = raw
	state.ProjectPath = projectPath
	state.Status = StatusCdkGenerated
	h.logger.Successf("CDK project created at %s", projectPath)
	return nil
}

func (h *AliyunToAWSHandler) deployStack(ctx context.Context, state *State) error {
	output, err := h.driver.Deploy(ctx, state.ProjectPath)
	if err != nil {
		return err
	}
	state.DeploymentResult = &DeploymentResult{
		Status:      "deployed",
		Output:      output,
		ProjectPath: state.ProjectPath,
	}
	state.Status = StatusCompleted
	h.logger.Success("Deployment completed successfully!")
	return nil
}

// skipDeploy marks a run terminal without touching AWS. The generated project
// stays on disk for a manual cdk deploy.
func (h *AliyunToAWSHandler) skipDeploy(state *State) {
	state.DeploymentResult = &DeploymentResult{
		Status:      "skipped",
		ProjectPath: state.ProjectPath,
	}
	state.Status = StatusCompleted
	h.logger.Infof("To deploy manually, run: cd %s && npm install && cdk deploy", state.ProjectPath)
}
