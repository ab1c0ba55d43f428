// Package testing holds testify mocks shared across command tests.
package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/ec2stack/internal/deploy"
)

// MockDeployer is a mock implementation of the deploy/destroy pair the
// CLI handlers drive.
type MockDeployer struct {
	mock.Mock
}

// Deploy records the request and returns the configured result.
func (m *MockDeployer) Deploy(ctx context.Context, req deploy.Request) (*deploy.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deploy.Result), args.Error(1)
}

// Destroy records the stack name and returns the configured error.
func (m *MockDeployer) Destroy(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
