package database

import (
	"context"
	"testing"

	"cloud_kitchen/internal/config"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDynamoDBConfig(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		AWSRegion:          "sa-east-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "local",
		DynamoDBEndpoint:   "http://localhost:8000",
	}

	awsCfg, err := NewDynamoDBConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", awsCfg.Region)

	creds, err := awsCfg.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local", creds.AccessKeyID)

	require.NotNil(t, awsCfg.EndpointResolverWithOptions)
	ep, err := awsCfg.EndpointResolverWithOptions.ResolveEndpoint(dynamodb.ServiceID, "sa-east-1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", ep.URL)
}
