package codegen

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoCode reports a model answer from which no TypeScript could be
// recovered. Writing an empty stack file would only fail later at deploy.
var ErrNoCode = errors.New("no TypeScript code found in generated response")

var fencedBlock = regexp.MustCompile("(?s)```typescript\\s*(.*?)\\s*```")

// Prose lines the model tends to mix into otherwise bare code answers.
// Matched case-insensitively as substrings; kept as a fixed list for
// compatibility with established behavior.
var prosePhrases = []string{
	"this cdk code",
	"to use this",
	"notes and best",
	"would you like",
	"the code uses",
	"for production",
	"the stack uses",
}

// ExtractCode pulls the TypeScript source out of a model answer. A fenced
// typescript block wins; otherwise lines are collected starting at the first
// code-like statement, dropping known prose lines.
func ExtractCode(response string) (string, error) {
	if m := fencedBlock.FindStringSubmatch(response); m != nil {
		code := strings.TrimSpace(m[1])
		if code == "" {
			return "", ErrNoCode
		}
		return code, nil
	}

	var codeLines []string
	inCode := false
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ") ||
			strings.HasPrefix(trimmed, "const ") || strings.HasPrefix(trimmed, "class ") ||
			strings.HasPrefix(trimmed, "interface ") {
			inCode = true
		}
		if !inCode {
			continue
		}
		if isProse(line) {
			continue
		}
		codeLines = append(codeLines, line)
	}

	code := strings.TrimSpace(strings.Join(codeLines, "\n"))
	if code == "" {
		return "", ErrNoCode
	}
	return code, nil
}

func isProse(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range prosePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
