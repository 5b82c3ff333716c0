package domain

import "time"

// Snapshot is the structured inventory of inspected resources for one
// review. Every category is optional; a category that could not be
// inspected carries its error inline instead of aborting the others.
type Snapshot struct {
	AccountID string
	Region    string
	Timestamp time.Time

	Compute        ComputeCategory
	ObjectStorage  ObjectStorageCategory
	Databases      DatabaseCategory
	Functions      FunctionCategory
	Identity       IdentityCategory
	Infrastructure InfrastructureCategory
}

type ComputeCategory struct {
	Instances []ComputeInstance
	Error     string
}

type ComputeInstance struct {
	InstanceID     string
	InstanceType   string
	State          string
	SecurityGroups []string
	SubnetID       string
	VpcID          string
}

type ObjectStorageCategory struct {
	Buckets []Bucket
	Error   string
}

type Bucket struct {
	Name              string
	Encrypted         bool
	VersioningEnabled bool
}

type DatabaseCategory struct {
	Instances []DatabaseInstance
	Error     string
}

type DatabaseInstance struct {
	Identifier          string
	InstanceClass       string
	Engine              string
	Encrypted           bool
	MultiAZ             bool
	BackupRetentionDays int32
}

type FunctionCategory struct {
	Functions []Function
	Error     string
}

type Function struct {
	Name         string
	Runtime      string
	MemoryMB     int32
	TimeoutSec   int32
	LastModified string
}

type IdentityCategory struct {
	RoleCount   int
	PolicyCount int
	Error       string
}

type InfrastructureCategory struct {
	Stacks []Stack
	Error  string
}

type Stack struct {
	Name        string
	Status      string
	CreatedAt   time.Time
	DriftStatus string
}
