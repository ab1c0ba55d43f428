package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
)

func TestImage(t *testing.T) {
	var gotName string
	mock := &awsplatform.MockClient{
		ResolveImageParameterFunc: func(_ context.Context, name string) (string, error) {
			gotName = name
			return "ami-0fedcba9876543210", nil
		},
	}
	_, out := fakeSession(t, mock)

	require.NoError(t, Image(context.Background(), Globals{}))
	assert.Equal(t, recipe.ImageParameterPath, gotName)
	assert.Equal(t, "ami-0fedcba9876543210\n", out.String())
}

func TestImage_ParameterMissing(t *testing.T) {
	mock := &awsplatform.MockClient{
		ResolveImageParameterFunc: func(context.Context, string) (string, error) {
			return "", errors.New("ParameterNotFound")
		},
	}
	_, out := fakeSession(t, mock)

	err := Image(context.Background(), Globals{})
	require.Error(t, err)
	assert.Empty(t, out.String())
}
