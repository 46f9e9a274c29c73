package vpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kervan-cloud/kervan-cli/internal/llm"
)

// Token budgets for the two parse variants.
const (
	vpcParseMaxTokens    = 2000
	subnetParseMaxTokens = 1500
)

// ParseTimeout bounds one LLM-assisted parse. Callers wrap their context with
// it; a deadline hit is treated like any other parse failure.
const ParseTimeout = 30 * time.Second

const vpcParsePrompt = `
Parse this Alibaba Cloud VPC API response and convert it to a structured JSON format.

Raw API Response:
%s

Please extract and return ONLY a JSON object with this exact structure:
{
  "vpc_id": "extracted vpc id",
  "vpc_name": "extracted vpc name or generate one if missing",
  "cidr_block": "extracted cidr block",
  "region": "%s",
  "status": "extracted status",
  "vswitches": [
    {
      "vswitch_id": "extracted vswitch id",
      "name": "extracted vswitch name or generate one",
      "cidr_block": "extracted cidr block",
      "availability_zone": "extracted zone",
      "status": "extracted status"
    }
  ],
  "security_groups": [
    {
      "group_id": "extracted security group id",
      "name": "extracted security group name or generate one",
      "description": "extracted description",
      "rules": []
    }
  ]
}

Return ONLY the JSON, no explanations.
`

const subnetParsePrompt = `
Parse this Alibaba Cloud VSwitches API response and return ONLY a JSON array of VSwitches.

Raw API Response:
%s

Return ONLY a JSON array with this structure:
[
  {
    "vswitch_id": "extracted vswitch id",
    "name": "extracted vswitch name or generate one",
    "cidr_block": "extracted cidr block",
    "availability_zone": "extracted zone",
    "status": "extracted status"
  }
]

Return ONLY the JSON array, no explanations.
`

// ParseVpcText asks the model to structure a non-JSON provider response into
// the canonical VPC shape. On any failure, including a context deadline, it
// returns a *DegradedError; the caller decides whether to fall back to Mock.
func ParseVpcText(ctx context.Context, inv llm.Invoker, raw, vpcID, region string) (*Vpc, error) {
	prompt := fmt.Sprintf(vpcParsePrompt, raw, region)
	resp, err := inv.Invoke(ctx, llm.NewRequest(vpcParseMaxTokens, []llm.Message{llm.UserMessage(prompt)}, nil))
	if err != nil {
		return nil, &DegradedError{Reason: "model invocation failed", Err: err}
	}

	text := resp.Text()
	var v Vpc
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		obj, ok := extractDelimited(text, '{', '}')
		if !ok {
			return nil, &DegradedError{Reason: "no JSON object in model response"}
		}
		if err := json.Unmarshal([]byte(obj), &v); err != nil {
			return nil, &DegradedError{Reason: "model response is not a VPC object", Err: err}
		}
	}
	v.ensureSlices()
	return &v, nil
}

// ParseSubnetsText is the array variant for VSwitch listings. Extraction
// failures yield an empty slice, never an error.
func ParseSubnetsText(ctx context.Context, inv llm.Invoker, raw string) []Subnet {
	prompt := fmt.Sprintf(subnetParsePrompt, raw)
	resp, err := inv.Invoke(ctx, llm.NewRequest(subnetParseMaxTokens, []llm.Message{llm.UserMessage(prompt)}, nil))
	if err != nil {
		return []Subnet{}
	}

	text := resp.Text()
	var subnets []Subnet
	if err := json.Unmarshal([]byte(text), &subnets); err != nil {
		arr, ok := extractDelimited(text, '[', ']')
		if !ok {
			return []Subnet{}
		}
		if err := json.Unmarshal([]byte(arr), &subnets); err != nil {
			return []Subnet{}
		}
	}
	if subnets == nil {
		subnets = []Subnet{}
	}
	return subnets
}

// extractDelimited returns the substring from the first open delimiter to the
// last close delimiter, greedy across newlines.
func extractDelimited(s string, open, closing byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, closing)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
