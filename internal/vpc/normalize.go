package vpc

import (
	"encoding/json"
	"fmt"
)

// extractStrategy locates the VPC collection under one known field layout.
// Strategies are tried in order; the first match wins.
type extractStrategy struct {
	name    string
	extract func(data map[string]any) ([]any, bool)
}

var vpcStrategies = []extractStrategy{
	{
		name: "Vpcs.Vpc",
		extract: func(data map[string]any) ([]any, bool) {
			wrapper, ok := data["Vpcs"].(map[string]any)
			if !ok {
				return nil, false
			}
			entries, ok := wrapper["Vpc"].([]any)
			return entries, ok
		},
	},
	{
		name: "vpcs",
		extract: func(data map[string]any) ([]any, bool) {
			entries, ok := data["vpcs"].([]any)
			return entries, ok
		},
	},
	{
		name: "Vpc",
		extract: func(data map[string]any) ([]any, bool) {
			switch v := data["Vpc"].(type) {
			case map[string]any:
				return []any{v}, true
			case []any:
				return v, true
			}
			return nil, false
		},
	},
}

// Normalize converts a raw Alibaba Cloud DescribeVpcs response into the
// canonical representation. It never panics; when the payload cannot be
// decoded or contains no VPC entries it returns a *DegradedError and the
// caller decides whether to substitute Mock data.
func Normalize(raw []byte, vpcID, region string) (*Vpc, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &DegradedError{Reason: "response is not valid JSON", Err: err}
	}
	return NormalizeMap(payload, vpcID, region)
}

// NormalizeMap is Normalize for an already-decoded payload.
func NormalizeMap(payload map[string]any, vpcID, region string) (*Vpc, error) {
	data := payload
	if body, ok := payload["body"].(map[string]any); ok {
		data = body
	}

	var entries []any
	for _, s := range vpcStrategies {
		if found, ok := s.extract(data); ok && len(found) > 0 {
			entries = found
			break
		}
	}
	if len(entries) == 0 {
		return nil, &DegradedError{Reason: "no VPC entries found in response"}
	}

	target, ok := entries[0].(map[string]any)
	if !ok {
		return nil, &DegradedError{Reason: "VPC entry has unexpected shape"}
	}
	if vpcID != "" {
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if stringField(entry, "VpcId", "vpc_id") == vpcID {
				target = entry
				break
			}
		}
	}

	v := &Vpc{
		ID:             fallback(stringField(target, "VpcId", "vpc_id"), vpcID),
		Name:           fallback(stringField(target, "VpcName", "vpc_name"), fmt.Sprintf("vpc-%s", vpcID)),
		CidrBlock:      fallback(stringField(target, "CidrBlock", "cidr_block"), "10.0.0.0/16"),
		Region:         region,
		Status:         fallback(stringField(target, "Status", "status"), "Available"),
		Subnets:        subnetsFromVSwitchIDs(target, region),
		SecurityGroups: defaultSecurityGroups(vpcID),
	}
	v.ensureSlices()
	return v, nil
}

// NormalizeSubnets converts a decoded DescribeVSwitches payload
// ({"VSwitches":{"VSwitch":[...]}}, optionally behind a body envelope) into
// canonical subnets. Returns false when the payload has no such shape, so
// the caller can fall through to text parsing.
func NormalizeSubnets(payload map[string]any) ([]Subnet, bool) {
	data := payload
	if body, ok := payload["body"].(map[string]any); ok {
		data = body
	}
	wrapper, ok := data["VSwitches"].(map[string]any)
	if !ok {
		return nil, false
	}
	entries, ok := wrapper["VSwitch"].([]any)
	if !ok || len(entries) == 0 {
		return nil, false
	}

	subnets := make([]Subnet, 0, len(entries))
	for i, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		subnets = append(subnets, Subnet{
			ID:               stringField(entry, "VSwitchId", "vswitch_id"),
			Name:             fallback(stringField(entry, "VSwitchName", "name"), fmt.Sprintf("subnet-%d", i+1)),
			CidrBlock:        stringField(entry, "CidrBlock", "cidr_block"),
			AvailabilityZone: stringField(entry, "ZoneId", "zone_id", "availability_zone"),
			Status:           fallback(stringField(entry, "Status", "status"), "Available"),
		})
	}
	return subnets, len(subnets) > 0
}

// subnetsFromVSwitchIDs synthesizes one subnet per embedded VSwitch id. The
// CIDR and zone are deterministic placeholders, not values fetched from the
// provider; only the id is real.
func subnetsFromVSwitchIDs(entry map[string]any, region string) []Subnet {
	wrapper, ok := entry["VSwitchIds"].(map[string]any)
	if !ok {
		return []Subnet{}
	}
	ids, ok := wrapper["VSwitchId"].([]any)
	if !ok {
		return []Subnet{}
	}
	subnets := make([]Subnet, 0, len(ids))
	for i, raw := range ids {
		id, ok := raw.(string)
		if !ok {
			continue
		}
		subnets = append(subnets, Subnet{
			ID:               id,
			Name:             fmt.Sprintf("subnet-%d", i+1),
			CidrBlock:        fmt.Sprintf("10.0.%d.0/24", i+1),
			AvailabilityZone: fmt.Sprintf("%s-%c", region, 'a'+i),
			Status:           "Available",
		})
	}
	return subnets
}

// defaultSecurityGroups attaches the single default group that the no-detail
// extraction path always carries.
func defaultSecurityGroups(vpcID string) []SecurityGroup {
	return []SecurityGroup{
		{
			ID:          fmt.Sprintf("sg-%s", vpcID),
			Name:        "default-sg",
			Description: "Default security group",
			Rules:       DefaultIngressRules(),
		},
	}
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
