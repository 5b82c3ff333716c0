package inspector

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

type fakeCompute struct {
	category domain.ComputeCategory
	err      error
}

func (f fakeCompute) Collect(context.Context) (domain.ComputeCategory, error) {
	return f.category, f.err
}

type fakeObjectStorage struct {
	category domain.ObjectStorageCategory
	err      error
}

func (f fakeObjectStorage) Collect(context.Context) (domain.ObjectStorageCategory, error) {
	return f.category, f.err
}

type fakeDatabases struct {
	category domain.DatabaseCategory
	err      error
}

func (f fakeDatabases) Collect(context.Context) (domain.DatabaseCategory, error) {
	return f.category, f.err
}

type fakeFunctions struct {
	category domain.FunctionCategory
	err      error
}

func (f fakeFunctions) Collect(context.Context) (domain.FunctionCategory, error) {
	return f.category, f.err
}

type fakeIdentity struct {
	category domain.IdentityCategory
	err      error
}

func (f fakeIdentity) Collect(context.Context) (domain.IdentityCategory, error) {
	return f.category, f.err
}

type fakeInfrastructure struct {
	category domain.InfrastructureCategory
	err      error
}

func (f fakeInfrastructure) Collect(context.Context) (domain.InfrastructureCategory, error) {
	return f.category, f.err
}

func testInspector() *awsInspector {
	return &awsInspector{
		compute: fakeCompute{category: domain.ComputeCategory{
			Instances: []domain.ComputeInstance{{InstanceID: "i-1"}},
		}},
		objectStorage: fakeObjectStorage{category: domain.ObjectStorageCategory{
			Buckets: []domain.Bucket{{Name: "b1", Encrypted: true}},
		}},
		databases:      fakeDatabases{},
		functions:      fakeFunctions{},
		identity:       fakeIdentity{category: domain.IdentityCategory{RoleCount: 3}},
		infrastructure: fakeInfrastructure{},
	}
}

func TestInspect_AllCategoriesCollected(t *testing.T) {
	insp := testInspector()

	snapshot := insp.Inspect(context.Background(), "123456789012", "us-east-1")

	assert.Equal(t, "123456789012", snapshot.AccountID)
	assert.Equal(t, "us-east-1", snapshot.Region)
	assert.False(t, snapshot.Timestamp.IsZero())
	assert.Len(t, snapshot.Compute.Instances, 1)
	assert.Len(t, snapshot.ObjectStorage.Buckets, 1)
	assert.Equal(t, 3, snapshot.Identity.RoleCount)
}

func TestInspect_FailedCategoryDegradesInPlace(t *testing.T) {
	insp := testInspector()
	insp.objectStorage = fakeObjectStorage{err: fmt.Errorf("access denied")}
	insp.databases = fakeDatabases{err: fmt.Errorf("throttled")}

	snapshot := insp.Inspect(context.Background(), "123456789012", "us-east-1")

	// Failing categories carry their error; the rest still collect.
	assert.Equal(t, "access denied", snapshot.ObjectStorage.Error)
	assert.Empty(t, snapshot.ObjectStorage.Buckets)
	assert.Equal(t, "throttled", snapshot.Databases.Error)
	assert.Len(t, snapshot.Compute.Instances, 1)
	assert.Equal(t, 3, snapshot.Identity.RoleCount)
}
