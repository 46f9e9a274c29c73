// Package codegen drives the tool-augmented model conversation that produces
// the CDK stack source, then extracts the TypeScript from the model's answer.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kervan-cloud/kervan-cli/internal/llm"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
)

const generateMaxTokens = 2000

// maxIterations bounds the conversation loop. Each model turn or tool
// execution counts as one transition.
const maxIterations = 10

// ErrLoopExceeded reports a conversation that did not converge within the
// iteration guard.
var ErrLoopExceeded = errors.New("code generation loop exceeded maximum iterations")

// ToolRunner executes a tool the model asked for and returns its text output.
type ToolRunner interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// Generator holds the model backend and tool surface for one generation run.
type Generator struct {
	inv    llm.Invoker
	runner ToolRunner
	tools  []llm.Tool
	logger *logger.Logger
}

func NewGenerator(inv llm.Invoker, runner ToolRunner, tools []llm.Tool, log *logger.Logger) *Generator {
	return &Generator{inv: inv, runner: runner, tools: tools, logger: log}
}

// Conversation states.
type loopState int

const (
	awaitingModel loopState = iota
	executingTool
	loopDone
)

// Generate runs the conversation until the model stops requesting tools and
// returns the newline-joined text turns. Tool execution failures and model
// invocation failures propagate; there is no retry here.
func (g *Generator) Generate(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf("Generate AWS CDK code for: %s. IMPORTANT: The output should only have CDK code, "+
		"without any additional comments. I will directly replace all output into a typescript file for "+
		"CDK project and run it, therefore do not add env variables that requires code update.", description)

	messages := []llm.Message{llm.UserMessage(prompt)}
	var finalText []string
	var pending *llm.ContentBlock

	state := awaitingModel
	for iter := 0; state != loopDone; iter++ {
		if iter >= maxIterations {
			return "", ErrLoopExceeded
		}

		switch state {
		case awaitingModel:
			resp, err := g.inv.Invoke(ctx, llm.NewRequest(generateMaxTokens, messages, g.tools))
			if err != nil {
				return "", fmt.Errorf("model invocation failed: %w", err)
			}
			if text := resp.Text(); text != "" {
				finalText = append(finalText, text)
			}
			toolUse, ok := resp.ToolUse()
			if !ok {
				state = loopDone
				break
			}
			messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
			pending = toolUse
			state = executingTool

		case executingTool:
			g.logger.Debugf("Executing tool %s", pending.Name)
			out, err := g.runner.CallTool(ctx, pending.Name, pending.Input)
			if err != nil {
				return "", fmt.Errorf("tool %s failed: %w", pending.Name, err)
			}
			messages = append(messages, llm.Message{
				Role: "user",
				Content: []llm.ContentBlock{{
					Type:      llm.ContentToolResult,
					ToolUseID: pending.ID,
					Content:   []llm.ContentBlock{{Type: llm.ContentText, Text: out}},
				}},
			})
			pending = nil
			state = awaitingModel
		}
	}

	return strings.Join(finalText, "\n"), nil
}
