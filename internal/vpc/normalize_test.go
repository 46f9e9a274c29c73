package vpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStrategies(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "Vpcs.Vpc layout",
			raw:  `{"Vpcs":{"Vpc":[{"VpcId":"vpc-1","VpcName":"prod-vpc","CidrBlock":"172.16.0.0/12","Status":"Available"}]}}`,
		},
		{
			name: "vpcs layout",
			raw:  `{"vpcs":[{"vpc_id":"vpc-1","vpc_name":"prod-vpc","cidr_block":"172.16.0.0/12","status":"Available"}]}`,
		},
		{
			name: "single Vpc layout",
			raw:  `{"Vpc":{"VpcId":"vpc-1","VpcName":"prod-vpc","CidrBlock":"172.16.0.0/12","Status":"Available"}}`,
		},
		{
			name: "body envelope",
			raw:  `{"body":{"Vpcs":{"Vpc":[{"VpcId":"vpc-1","VpcName":"prod-vpc","CidrBlock":"172.16.0.0/12","Status":"Available"}]}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Normalize([]byte(tt.raw), "vpc-1", "cn-hangzhou")
			require.NoError(t, err)
			assert.Equal(t, "vpc-1", v.ID)
			assert.Equal(t, "prod-vpc", v.Name)
			assert.Equal(t, "172.16.0.0/12", v.CidrBlock)
			assert.Equal(t, "cn-hangzhou", v.Region)
			assert.NotNil(t, v.Subnets)
			assert.NotNil(t, v.SecurityGroups)
		})
	}
}

func TestNormalizeSelectsRequestedID(t *testing.T) {
	raw := `{"Vpcs":{"Vpc":[
		{"VpcId":"vpc-other","VpcName":"other","CidrBlock":"192.168.0.0/16"},
		{"VpcId":"vpc-wanted","VpcName":"wanted","CidrBlock":"10.10.0.0/16"}
	]}}`
	v, err := Normalize([]byte(raw), "vpc-wanted", "cn-hangzhou")
	require.NoError(t, err)
	assert.Equal(t, "vpc-wanted", v.ID)
	assert.Equal(t, "wanted", v.Name)
}

func TestNormalizeFirstEntryWhenNoIDRequested(t *testing.T) {
	raw := `{"Vpcs":{"Vpc":[
		{"VpcId":"vpc-first","VpcName":"first","CidrBlock":"10.1.0.0/16"},
		{"VpcId":"vpc-second","VpcName":"second","CidrBlock":"10.2.0.0/16"}
	]}}`
	v, err := Normalize([]byte(raw), "", "cn-hangzhou")
	require.NoError(t, err)
	assert.Equal(t, "vpc-first", v.ID)
}

func TestNormalizeFieldFallbacks(t *testing.T) {
	raw := `{"Vpcs":{"Vpc":[{"VpcId":"vpc-2"}]}}`
	v, err := Normalize([]byte(raw), "vpc-2", "cn-hangzhou")
	require.NoError(t, err)
	assert.Equal(t, "vpc-vpc-2", v.Name)
	assert.Equal(t, "10.0.0.0/16", v.CidrBlock)
	assert.Equal(t, "Available", v.Status)
}

func TestNormalizeSynthesizesSubnetsFromVSwitchIDs(t *testing.T) {
	raw := `{"Vpcs":{"Vpc":[{
		"VpcId":"vpc-3","VpcName":"demo","CidrBlock":"10.0.0.0/16",
		"VSwitchIds":{"VSwitchId":["vsw-aaa","vsw-bbb","vsw-ccc"]}
	}]}}`
	v, err := Normalize([]byte(raw), "vpc-3", "cn-hangzhou")
	require.NoError(t, err)
	require.Len(t, v.Subnets, 3)

	assert.Equal(t, "vsw-bbb", v.Subnets[1].ID)
	assert.Equal(t, "subnet-2", v.Subnets[1].Name)
	assert.Equal(t, "10.0.2.0/24", v.Subnets[1].CidrBlock)
	assert.Equal(t, "cn-hangzhou-b", v.Subnets[1].AvailabilityZone)
	assert.Equal(t, "cn-hangzhou-c", v.Subnets[2].AvailabilityZone)
}

func TestNormalizeAttachesDefaultSecurityGroup(t *testing.T) {
	raw := `{"Vpcs":{"Vpc":[{"VpcId":"vpc-4","VpcName":"demo","CidrBlock":"10.0.0.0/16"}]}}`
	v, err := Normalize([]byte(raw), "vpc-4", "cn-hangzhou")
	require.NoError(t, err)
	require.Len(t, v.SecurityGroups, 1)

	sg := v.SecurityGroups[0]
	assert.Equal(t, "sg-vpc-4", sg.ID)
	assert.Equal(t, "default-sg", sg.Name)
	require.Len(t, sg.Rules, 2)
	assert.Equal(t, "80", sg.Rules[0].Port)
	assert.Equal(t, "443", sg.Rules[1].Port)
	assert.Equal(t, "0.0.0.0/0", sg.Rules[0].Source)
}

func TestNormalizeSubnets(t *testing.T) {
	payload := map[string]any{
		"VSwitches": map[string]any{
			"VSwitch": []any{
				map[string]any{
					"VSwitchId":   "vsw-1",
					"VSwitchName": "web-tier",
					"CidrBlock":   "10.0.1.0/24",
					"ZoneId":      "cn-hangzhou-a",
					"Status":      "Available",
				},
				map[string]any{
					"VSwitchId": "vsw-2",
					"CidrBlock": "10.0.2.0/24",
					"ZoneId":    "cn-hangzhou-b",
				},
			},
		},
	}

	subnets, ok := NormalizeSubnets(payload)
	require.True(t, ok)
	require.Len(t, subnets, 2)

	assert.Equal(t, "vsw-1", subnets[0].ID)
	assert.Equal(t, "web-tier", subnets[0].Name)
	assert.Equal(t, "cn-hangzhou-a", subnets[0].AvailabilityZone)
	// Name and status fall back when the entry omits them.
	assert.Equal(t, "subnet-2", subnets[1].Name)
	assert.Equal(t, "Available", subnets[1].Status)
}

func TestNormalizeSubnetsBodyEnvelope(t *testing.T) {
	payload := map[string]any{
		"body": map[string]any{
			"VSwitches": map[string]any{
				"VSwitch": []any{
					map[string]any{"VSwitchId": "vsw-9", "CidrBlock": "10.0.9.0/24", "ZoneId": "cn-hangzhou-a"},
				},
			},
		},
	}

	subnets, ok := NormalizeSubnets(payload)
	require.True(t, ok)
	require.Len(t, subnets, 1)
	assert.Equal(t, "vsw-9", subnets[0].ID)
}

func TestNormalizeSubnetsUnrecognizedShape(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"no VSwitches key", map[string]any{"RequestId": "abc"}},
		{"empty collection", map[string]any{"VSwitches": map[string]any{"VSwitch": []any{}}}},
		{"wrong wrapper type", map[string]any{"VSwitches": []any{"vsw-1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subnets, ok := NormalizeSubnets(tt.payload)
			assert.False(t, ok)
			assert.Nil(t, subnets)
		})
	}
}

func TestNormalizeDegraded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "plain text output"},
		{"no entries", `{"RequestId":"abc"}`},
		{"empty collection", `{"Vpcs":{"Vpc":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Normalize([]byte(tt.raw), "vpc-5", "cn-hangzhou")
			assert.Nil(t, v)
			var degraded *DegradedError
			assert.ErrorAs(t, err, &degraded)
		})
	}
}

func TestMockIsDeterministic(t *testing.T) {
	v := Mock("vpc-abc", "cn-hangzhou")
	assert.Equal(t, Mock("vpc-abc", "cn-hangzhou"), v)

	assert.Equal(t, "vpc-abc", v.ID)
	assert.Equal(t, "demo-vpc", v.Name)
	assert.Equal(t, "10.0.0.0/16", v.CidrBlock)
	require.Len(t, v.Subnets, 2)
	assert.Equal(t, "demo-subnet-1", v.Subnets[0].Name)
	assert.Equal(t, "cn-hangzhou-a", v.Subnets[0].AvailabilityZone)
	assert.Equal(t, "cn-hangzhou-b", v.Subnets[1].AvailabilityZone)
	require.Len(t, v.SecurityGroups, 1)
	assert.Equal(t, "demo-sg", v.SecurityGroups[0].Name)
}

func TestMockDefaultID(t *testing.T) {
	v := Mock("", "cn-hangzhou")
	assert.Equal(t, "vpc-mock-123456", v.ID)
}
