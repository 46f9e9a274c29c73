// Package main provides the entry point for the Kervan CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kervan-cloud/kervan-cli/internal/config"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
	"github.com/kervan-cloud/kervan-cli/internal/workflow"
)

var (
	cfgFile string
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "kervan",
	Short:   "Kervan - VPC Migration Tool",
	Long:    `Kervan is a Go-based CLI tool that migrates VPC configuration from Alibaba Cloud to AWS by generating and deploying an AWS CDK project.`,
	Version: version,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./kervan-config.env)")

	flags := []struct {
		name, usage, defaultValue string
	}{
		{"vpc-id", "Alibaba Cloud VPC ID to migrate (first VPC in the region when omitted)", ""},
		{"region", "Alibaba Cloud region", "cn-hangzhou"},
		{"project-name", "Name of the generated CDK project", ""},
		{"target-dir", "Directory for generated CDK projects", "./output"},
		{"bedrock-region", "AWS region for the Bedrock runtime", "us-west-2"},
		{"model-id", "Bedrock model identifier", "anthropic.claude-3-5-haiku-20241022-v1:0"},
		{"source-platform", "Source cloud platform (aliyun)", "aliyun"},
		{"target-platform", "Target cloud platform (aws)", "aws"},
	}
	for _, f := range flags {
		rootCmd.Flags().String(f.name, f.defaultValue, f.usage)
	}

	boolFlags := []struct {
		name, usage string
	}{
		{"skip-deploy", "Generate the CDK project but skip deployment"},
		{"debug", "Enable debug logging"},
	}
	for _, f := range boolFlags {
		rootCmd.Flags().Bool(f.name, false, f.usage)
	}

	bindings := map[string]string{
		"VPC_ID":          "vpc-id",
		"REGION":          "region",
		"PROJECT_NAME":    "project-name",
		"TARGET_DIR":      "target-dir",
		"BEDROCK_REGION":  "bedrock-region",
		"MODEL_ID":        "model-id",
		"SOURCE_PLATFORM": "source-platform",
		"TARGET_PLATFORM": "target-platform",
		"SKIP_DEPLOY":     "skip-deploy",
		"DEBUG":           "debug",
	}
	for env, flag := range bindings {
		if err := viper.BindPFlag(env, rootCmd.Flags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to bind flag %s to env %s: %v\n", flag, env, err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("kervan-config")
		viper.SetConfigType("env")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	timestamp := logger.GetTimestamp()
	logFileName := fmt.Sprintf("kervan-%s.log", timestamp)

	log, err := logger.NewWithFile(cfg.Debug, logFileName)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Infof("Kervan version %s", version)
	log.Infof("Log file: %s", logFileName)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ctx := context.Background()
	mgr, err := workflow.NewManager(ctx, cfg, log, version)
	if err != nil {
		return fmt.Errorf("failed to create workflow manager: %w", err)
	}

	state, err := mgr.Run(ctx)
	printSummary(log, state)
	if err != nil {
		return err
	}
	return nil
}

func printSummary(log *logger.Logger, state *workflow.State) {
	log.Info("=========================================")
	log.Infof("Run %s finished with status: %s", state.RunID, state.Status)
	if state.ErrorMessage != "" {
		log.Errorf("Error: %s", state.ErrorMessage)
	}
	if state.DeploymentResult != nil {
		log.Infof("Deployment: %s (%s)", state.DeploymentResult.Status, state.DeploymentResult.ProjectPath)
	}
	log.Info("=========================================")
}
