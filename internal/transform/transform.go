// Package transform maps the canonical source VPC representation to the AWS
// target shape consumed by code generation. Apply is a pure function; all
// I/O stays in the surrounding stages.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kervan-cloud/kervan-cli/internal/vpc"
)

// TargetVpc is the provider-agnostic AWS-side descriptor.
type TargetVpc struct {
	Vpc            VpcSpec             `json:"vpc"`
	Subnets        []SubnetSpec        `json:"subnets"`
	SecurityGroups []SecurityGroupSpec `json:"security_groups"`
}

type VpcSpec struct {
	Name               string `json:"name"`
	Cidr               string `json:"cidr"`
	EnableDnsHostnames bool   `json:"enable_dns_hostnames"`
	EnableDnsSupport   bool   `json:"enable_dns_support"`
}

type SubnetSpec struct {
	Name                string `json:"name"`
	Cidr                string `json:"cidr"`
	AvailabilityZone    string `json:"availability_zone"`
	MapPublicIPOnLaunch bool   `json:"map_public_ip_on_launch"`
}

type SecurityGroupSpec struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	IngressRules []IngressRule `json:"ingress_rules"`
}

type IngressRule struct {
	Protocol   string   `json:"protocol"`
	FromPort   int      `json:"from_port"`
	ToPort     int      `json:"to_port"`
	CidrBlocks []string `json:"cidr_blocks"`
}

// Error reports a contract violation on the input record. It aborts the run;
// the transform stage never degrades.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transform failed on %s: %s", e.Field, e.Msg)
}

// DefaultZone is used when a source availability zone has no table entry.
const DefaultZone = "us-east-1a"

// zoneMap covers the source regions the tool is known to be used with.
// Unknown zones fall back to DefaultZone.
var zoneMap = map[string]string{
	"cn-hangzhou-a": "us-east-1a",
	"cn-hangzhou-b": "us-east-1b",
	"cn-hangzhou-c": "us-east-1c",
	"cn-shanghai-a": "us-east-1a",
	"cn-shanghai-b": "us-east-1b",
	"cn-beijing-a":  "us-east-1a",
	"cn-beijing-b":  "us-east-1b",
}

// MapZone remaps a source availability zone to its AWS counterpart.
func MapZone(source string) string {
	if target, ok := zoneMap[source]; ok {
		return target
	}
	return DefaultZone
}

// Apply converts a canonical VPC into the AWS target descriptor. Identical
// input always yields an identical descriptor. Missing required fields on
// the input return *Error.
func Apply(source *vpc.Vpc) (*TargetVpc, error) {
	if source == nil {
		return nil, &Error{Field: "vpc", Msg: "input is nil"}
	}
	if source.Name == "" {
		return nil, &Error{Field: "vpc_name", Msg: "required field is empty"}
	}
	if source.CidrBlock == "" {
		return nil, &Error{Field: "cidr_block", Msg: "required field is empty"}
	}

	target := &TargetVpc{
		Vpc: VpcSpec{
			Name:               identifier(source.Name),
			Cidr:               source.CidrBlock,
			EnableDnsHostnames: true,
			EnableDnsSupport:   true,
		},
		Subnets:        make([]SubnetSpec, 0, len(source.Subnets)),
		SecurityGroups: make([]SecurityGroupSpec, 0, len(source.SecurityGroups)),
	}

	for i, subnet := range source.Subnets {
		if subnet.Name == "" {
			return nil, &Error{Field: fmt.Sprintf("vswitches[%d].name", i), Msg: "required field is empty"}
		}
		if subnet.CidrBlock == "" {
			return nil, &Error{Field: fmt.Sprintf("vswitches[%d].cidr_block", i), Msg: "required field is empty"}
		}
		target.Subnets = append(target.Subnets, SubnetSpec{
			Name:                identifier(subnet.Name),
			Cidr:                subnet.CidrBlock,
			AvailabilityZone:    MapZone(subnet.AvailabilityZone),
			MapPublicIPOnLaunch: true,
		})
	}

	for i, sg := range source.SecurityGroups {
		if sg.Name == "" {
			return nil, &Error{Field: fmt.Sprintf("security_groups[%d].name", i), Msg: "required field is empty"}
		}
		spec := SecurityGroupSpec{
			Name:         identifier(sg.Name),
			Description:  fmt.Sprintf("Migrated from Alibaba Cloud SG %s", sg.ID),
			IngressRules: make([]IngressRule, 0, len(sg.Rules)),
		}
		for j, rule := range sg.Rules {
			port, err := strconv.Atoi(rule.Port)
			if err != nil {
				return nil, &Error{
					Field: fmt.Sprintf("security_groups[%d].rules[%d].port", i, j),
					Msg:   fmt.Sprintf("not a single port number: %q", rule.Port),
				}
			}
			spec.IngressRules = append(spec.IngressRules, IngressRule{
				Protocol:   rule.Protocol,
				FromPort:   port,
				ToPort:     port,
				CidrBlocks: []string{rule.Source},
			})
		}
		target.SecurityGroups = append(target.SecurityGroups, spec)
	}

	return target, nil
}

// identifier makes a name safe for target-side identifiers.
func identifier(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
