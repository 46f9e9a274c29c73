// Package config handles configuration loading from files, environment variables, and flags.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	defaultRegion        = "cn-hangzhou"
	defaultBedrockRegion = "us-west-2"
	defaultModelID       = "anthropic.claude-3-5-haiku-20241022-v1:0"
	defaultTargetDir     = "./output"
)

// Config holds all configuration for the Kervan CLI.
type Config struct {
	SourcePlatform string `validate:"required,oneof=aliyun"`
	TargetPlatform string `validate:"required,oneof=aws"`

	// Source side: Alibaba Cloud VPC selection.
	VpcID                 string
	Region                string `validate:"required"`
	AliyunAccessKeyID     string
	AliyunAccessKeySecret string

	// Target side: CDK project generation.
	ProjectName string `validate:"required"`
	TargetDir   string `validate:"required"`

	// LLM backend.
	BedrockRegion string `validate:"required"`
	ModelID       string `validate:"required"`

	SkipDeploy bool
	Debug      bool
}

// Load initializes configuration from file, environment variables, and flags.
func Load(configFile string) (*Config, error) {
	viper.SetDefault("source_platform", "aliyun")
	viper.SetDefault("target_platform", "aws")
	viper.SetDefault("region", defaultRegion)
	viper.SetDefault("bedrock_region", defaultBedrockRegion)
	viper.SetDefault("model_id", defaultModelID)
	viper.SetDefault("target_dir", defaultTargetDir)

	viper.AutomaticEnv()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		SourcePlatform:        viper.GetString("source_platform"),
		TargetPlatform:        viper.GetString("target_platform"),
		VpcID:                 viper.GetString("vpc_id"),
		Region:                viper.GetString("region"),
		AliyunAccessKeyID:     viper.GetString("alibaba_cloud_access_key_id"),
		AliyunAccessKeySecret: viper.GetString("alibaba_cloud_access_key_secret"),
		ProjectName:           viper.GetString("project_name"),
		TargetDir:             viper.GetString("target_dir"),
		BedrockRegion:         viper.GetString("bedrock_region"),
		ModelID:               viper.GetString("model_id"),
		SkipDeploy:            viper.GetBool("skip_deploy"),
		Debug:                 viper.GetBool("debug"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid configuration: field %s failed %s validation", e.Field(), e.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// Missing Alibaba Cloud credentials are not fatal: extraction degrades
	// to mock data without them.
	return nil
}

// HasCredentials reports whether Alibaba Cloud credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.AliyunAccessKeyID != "" && c.AliyunAccessKeySecret != ""
}

// LoadConfig loads configuration using the global Viper instance.
func LoadConfig() (*Config, error) {
	return Load("")
}
