package config

import (
	"os"
	"testing"
)

func TestConfigLoad(t *testing.T) {
	// Set test environment variables
	os.Setenv("VPC_ID", "vpc-test-123")
	os.Setenv("PROJECT_NAME", "test-project")
	os.Setenv("ALIBABA_CLOUD_ACCESS_KEY_ID", "test-key")
	os.Setenv("ALIBABA_CLOUD_ACCESS_KEY_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("VPC_ID")
		os.Unsetenv("PROJECT_NAME")
		os.Unsetenv("ALIBABA_CLOUD_ACCESS_KEY_ID")
		os.Unsetenv("ALIBABA_CLOUD_ACCESS_KEY_SECRET")
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.VpcID != "vpc-test-123" {
		t.Errorf("Expected VpcID to be 'vpc-test-123', got '%s'", cfg.VpcID)
	}
	if cfg.ProjectName != "test-project" {
		t.Errorf("Expected ProjectName to be 'test-project', got '%s'", cfg.ProjectName)
	}
	if cfg.AliyunAccessKeyID != "test-key" {
		t.Errorf("Expected AliyunAccessKeyID to be 'test-key', got '%s'", cfg.AliyunAccessKeyID)
	}
	if !cfg.HasCredentials() {
		t.Error("Expected HasCredentials to be true")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.SourcePlatform != "aliyun" {
		t.Errorf("Expected default source platform 'aliyun', got '%s'", cfg.SourcePlatform)
	}
	if cfg.TargetPlatform != "aws" {
		t.Errorf("Expected default target platform 'aws', got '%s'", cfg.TargetPlatform)
	}
	if cfg.Region != "cn-hangzhou" {
		t.Errorf("Expected default region 'cn-hangzhou', got '%s'", cfg.Region)
	}
	if cfg.BedrockRegion != "us-west-2" {
		t.Errorf("Expected default Bedrock region 'us-west-2', got '%s'", cfg.BedrockRegion)
	}
	if cfg.TargetDir != "./output" {
		t.Errorf("Expected default target dir './output', got '%s'", cfg.TargetDir)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := &Config{
		SourcePlatform: "aliyun",
		TargetPlatform: "aws",
		Region:         "cn-hangzhou",
		ProjectName:    "my-vpc-project",
		TargetDir:      "./output",
		BedrockRegion:  "us-west-2",
		ModelID:        "anthropic.claude-3-5-haiku-20241022-v1:0",
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid aliyun to aws config", func(c *Config) {}, false},
		{"missing credentials still valid", func(c *Config) { c.AliyunAccessKeyID = "" }, false},
		{"unsupported source platform", func(c *Config) { c.SourcePlatform = "gcp" }, true},
		{"unsupported target platform", func(c *Config) { c.TargetPlatform = "oci" }, true},
		{"missing project name", func(c *Config) { c.ProjectName = "" }, true},
		{"missing region", func(c *Config) { c.Region = "" }, true},
		{"missing model id", func(c *Config) { c.ModelID = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestHasCredentials(t *testing.T) {
	cfg := &Config{}
	if cfg.HasCredentials() {
		t.Error("Expected HasCredentials to be false with empty credentials")
	}

	cfg.AliyunAccessKeyID = "key"
	if cfg.HasCredentials() {
		t.Error("Expected HasCredentials to be false with only a key id")
	}

	cfg.AliyunAccessKeySecret = "secret"
	if !cfg.HasCredentials() {
		t.Error("Expected HasCredentials to be true with both values set")
	}
}
