package codegen

import (
	"fmt"
	"strings"

	"github.com/kervan-cloud/kervan-cli/internal/transform"
)

// ClassName computes the exported stack class name for a project. Hyphen-split
// words are capitalized and joined, with a fixed Stack suffix:
// "my-vpc-project" becomes "MyVpcProjectStack".
func ClassName(projectName string) string {
	var b strings.Builder
	for _, word := range strings.Split(projectName, "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	b.WriteString("Stack")
	return b.String()
}

// Describe renders the target descriptor as the natural-language requirements
// handed to the model. Zone placement is intentionally absent; the generated
// stack relies on maxAzs for automatic distribution.
func Describe(target *transform.TargetVpc, projectName string) string {
	className := ClassName(projectName)

	var b strings.Builder
	fmt.Fprintf(&b, `Generate ONLY valid TypeScript CDK code without any explanations or comments.
Use correct CDK v2 syntax and imports.

Requirements:
- Import Construct from 'constructs' package
- Export class name must be: %s
- VPC: name='%s', cidr='%s', enableDnsHostnames=true, enableDnsSupport=true
- Use maxAzs: 2 for automatic AZ distribution (do not specify availabilityZone in subnetConfiguration)

Subnets (use subnetConfiguration with cidrMask only):`,
		className, target.Vpc.Name, target.Vpc.Cidr)

	for i, subnet := range target.Subnets {
		fmt.Fprintf(&b, "\n- Subnet %d: cidrMask=24, name='%s', type=PUBLIC", i+1, subnet.Name)
	}

	b.WriteString("\n\nSecurity Groups:")
	for _, sg := range target.SecurityGroups {
		ports := make([]string, 0, len(sg.IngressRules))
		for _, rule := range sg.IngressRules {
			ports = append(ports, fmt.Sprintf("%d", rule.FromPort))
		}
		fmt.Fprintf(&b, "\n- name='%s', ingress_ports=[%s], source=0.0.0.0/0", sg.Name, strings.Join(ports, ","))
	}

	fmt.Fprintf(&b, "\n\nReturn ONLY valid TypeScript CDK v2 code with export class %s. Use proper imports and syntax.", className)
	return b.String()
}
