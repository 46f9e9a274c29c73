// Package vpc defines the canonical provider-agnostic VPC representation and
// the normalization paths that produce it from raw Alibaba Cloud responses.
package vpc

import "fmt"

// Vpc is the canonical source-side VPC record. Subnets and SecurityGroups are
// never nil; absent data is represented as empty slices.
type Vpc struct {
	ID             string          `json:"vpc_id"`
	Name           string          `json:"vpc_name"`
	CidrBlock      string          `json:"cidr_block"`
	Region         string          `json:"region"`
	Status         string          `json:"status"`
	Subnets        []Subnet        `json:"vswitches"`
	SecurityGroups []SecurityGroup `json:"security_groups"`
}

// Subnet is the canonical form of an Alibaba Cloud VSwitch.
type Subnet struct {
	ID               string `json:"vswitch_id"`
	Name             string `json:"name"`
	CidrBlock        string `json:"cidr_block"`
	AvailabilityZone string `json:"availability_zone"`
	Status           string `json:"status"`
}

// SecurityGroup is a canonical security group with its ingress/egress rules.
type SecurityGroup struct {
	ID          string `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       []Rule `json:"rules"`
}

// Rule is a single security-group rule. Port is kept as a string because the
// provider reports it that way; conversion happens at transform time.
type Rule struct {
	Protocol  string `json:"protocol"`
	Port      string `json:"port"`
	Source    string `json:"source"`
	Direction string `json:"direction"`
}

// DegradedError reports that real VPC data could not be obtained or decoded.
// It is non-fatal: callers substitute the deterministic mock and continue.
type DegradedError struct {
	Reason string
	Err    error
}

func (e *DegradedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vpc extraction degraded: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("vpc extraction degraded: %s", e.Reason)
}

func (e *DegradedError) Unwrap() error { return e.Err }

// ensureSlices enforces the never-nil invariant after decoding.
func (v *Vpc) ensureSlices() {
	if v.Subnets == nil {
		v.Subnets = []Subnet{}
	}
	if v.SecurityGroups == nil {
		v.SecurityGroups = []SecurityGroup{}
	}
}
