package cdk

import (
	"fmt"
	"os"
	"path/filepath"
)

const binTemplate = `#!/usr/bin/env node
import 'source-map-support/register';
import * as cdk from 'aws-cdk-lib';
import { %[1]s } from '../lib/%[2]s-stack';

const app = new cdk.App();
new %[1]s(app, '%[1]s', {
  env: {
    account: process.env.CDK_DEFAULT_ACCOUNT,
    region: process.env.CDK_DEFAULT_REGION,
  },
});
`

// StackFilePath returns the stack definition path inside a scaffolded project.
func StackFilePath(projectPath, projectName string) string {
	return filepath.Join(projectPath, "lib", projectName+"-stack.ts")
}

// WriteStackFile overwrites the stack definition with the generated code.
func WriteStackFile(projectPath, projectName, code string) error {
	path := StackFilePath(projectPath, projectName)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("failed to write stack file: %w", err)
	}
	return nil
}

// WriteBinFile overwrites the entry point so it always instantiates the
// freshly generated stack class, regardless of what the generator emitted.
func WriteBinFile(projectPath, projectName, className string) error {
	path := filepath.Join(projectPath, "bin", projectName+".ts")
	content := fmt.Sprintf(binTemplate, className, projectName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write bin file: %w", err)
	}
	return nil
}
