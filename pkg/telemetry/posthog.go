package telemetry

import (
	"context"
	"os"

	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/posthog/posthog-go"
)

const defaultPostHogEndpoint = "https://us.i.posthog.com"

// PostHogClient implements the Client interface using PostHog
type PostHogClient struct {
	namespace      string
	client         posthog.Client
	appEnvironment *common.AppEnvironment
}

// NewPostHogClient returns nil without error when no api key is available
func NewPostHogClient(environment *common.AppEnvironment, namespace string) (*PostHogClient, error) {
	apiKey := getPostHogAPIKey()
	if apiKey == "" {
		return nil, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: getPostHogEndpoint()})
	if err != nil {
		return nil, err
	}
	return &PostHogClient{
		namespace:      namespace,
		client:         client,
		appEnvironment: environment,
	}, nil
}

func (c *PostHogClient) AddMetric(_ context.Context, metric Metric) error {
	if c == nil || c.client == nil {
		return nil
	}

	props := make(map[string]interface{})
	props["name"] = metric.Name
	props["value"] = metric.Value
	for k, v := range metric.Dimensions {
		props[k] = v
	}

	return c.client.Enqueue(posthog.Capture{
		DistinctId: c.appEnvironment.UserUUID,
		Event:      c.namespace,
		Properties: props,
	})
}

func (c *PostHogClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Close()
	return nil
}

func getPostHogAPIKey() string {
	if key := os.Getenv("VYPERKIT_POSTHOG_KEY"); key != "" {
		return key
	}
	return embeddedTelemetryApiKey
}

func getPostHogEndpoint() string {
	if endpoint := os.Getenv("VYPERKIT_POSTHOG_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return defaultPostHogEndpoint
}
