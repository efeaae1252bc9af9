// Package secrets resolves runtime secrets from AWS Secrets Manager with a
// local in-process cache.
package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// Resolver fetches secret strings, preferring the cache so warm Lambda
// invocations skip the Secrets Manager round trip.
type Resolver struct {
	client *secretsmanager.Client
	cache  *secretcache.Cache
}

// NewResolver creates a Resolver backed by the given AWS config
func NewResolver(cfg aws.Config) *Resolver {
	client := secretsmanager.NewFromConfig(cfg)

	cache, err := secretcache.New(
		func(c *secretcache.Cache) {
			c.Client = client
		},
	)
	if err != nil {
		// Fall back to direct API calls when the cache cannot be built
		cache = nil
	}

	return &Resolver{
		client: client,
		cache:  cache,
	}
}

// GetSecretString returns the secret value for the given ID or ARN
func (r *Resolver) GetSecretString(ctx context.Context, secretID string) (string, error) {
	if r.cache != nil {
		value, err := r.cache.GetSecretString(secretID)
		if err != nil {
			return "", fmt.Errorf("failed to get secret %s: %w", secretID, err)
		}
		return value, nil
	}

	result, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}
	return *result.SecretString, nil
}
