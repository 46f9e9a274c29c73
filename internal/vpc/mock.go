package vpc

// DefaultIngressRules are the two standard ingress rules attached to every
// synthetic security group.
func DefaultIngressRules() []Rule {
	return []Rule{
		{Protocol: "tcp", Port: "80", Source: "0.0.0.0/0", Direction: "ingress"},
		{Protocol: "tcp", Port: "443", Source: "0.0.0.0/0", Direction: "ingress"},
	}
}

// Mock returns the deterministic fallback VPC used when real provider data is
// unavailable. It carries the requested id and region so downstream stages can
// still trace what was asked for.
func Mock(vpcID, region string) *Vpc {
	id := vpcID
	if id == "" {
		id = "vpc-mock-123456"
	}
	return &Vpc{
		ID:        id,
		Name:      "demo-vpc",
		CidrBlock: "10.0.0.0/16",
		Region:    region,
		Status:    "Available",
		Subnets: []Subnet{
			{
				ID:               "vsw-mock-123456",
				Name:             "demo-subnet-1",
				CidrBlock:        "10.0.1.0/24",
				AvailabilityZone: region + "-a",
				Status:           "Available",
			},
			{
				ID:               "vsw-mock-789012",
				Name:             "demo-subnet-2",
				CidrBlock:        "10.0.2.0/24",
				AvailabilityZone: region + "-b",
				Status:           "Available",
			},
		},
		SecurityGroups: []SecurityGroup{
			{
				ID:          "sg-mock-123456",
				Name:        "demo-sg",
				Description: "Demo security group",
				Rules:       DefaultIngressRules(),
			},
		},
	}
}
