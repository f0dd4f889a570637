package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackwell-systems/gcp-byoc-network/internal/manifest"
)

// Property is a template property passed on deployment creation.
type Property struct {
	Key   string
	Value string
}

// Deployment is the subset of a deployment description the tool reads.
type Deployment struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Manifest  string `json:"manifest"`
	Operation struct {
		Status string `json:"status"`
	} `json:"operation"`
}

type describeOutput struct {
	Deployment Deployment `json:"deployment"`
}

// CreateDeployment creates deployment name from a template file. The command
// fails if a deployment with that name already exists.
func (c *Client) CreateDeployment(ctx context.Context, name, template string, props []Property) error {
	args := []string{"deployment-manager", "deployments", "create", name, "--template", template}
	if len(props) > 0 {
		args = append(args, "--properties", formatProperties(props))
	}
	_, err := c.Runner.Run(ctx, args...)
	return err
}

// DescribeDeployment returns the description of deployment name.
func (c *Client) DescribeDeployment(ctx context.Context, name string) (*Deployment, error) {
	out, err := c.Runner.Run(ctx, "deployment-manager", "deployments", "describe", name, "--format", "json")
	if err != nil {
		return nil, err
	}

	var desc describeOutput
	if err := json.Unmarshal(out, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse deployment %s: %w", name, err)
	}
	return &desc.Deployment, nil
}

// DescribeManifest returns manifest name of deployment.
func (c *Client) DescribeManifest(ctx context.Context, deployment, name string) (*manifest.Manifest, error) {
	out, err := c.Runner.Run(ctx, "deployment-manager", "manifests", "describe", "--deployment", deployment, name, "--format", "json")
	if err != nil {
		return nil, err
	}
	return manifest.Parse(out)
}

// DeleteDeployment deletes deployment name and the resources it created.
func (c *Client) DeleteDeployment(ctx context.Context, name string) error {
	_, err := c.Runner.Run(ctx, "deployment-manager", "deployments", "delete", name, "--quiet")
	return err
}

func formatProperties(props []Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, fmt.Sprintf("%s:'%s'", p.Key, p.Value))
	}
	return strings.Join(parts, ",")
}
