package gcloud

import (
	"context"
	"fmt"
)

// Client issues the gcloud commands of the provisioning sequence.
type Client struct {
	Runner Runner
}

// SetProject makes project the active gcloud project.
func (c *Client) SetProject(ctx context.Context, project string) error {
	_, err := c.Runner.Run(ctx, "config", "set", "project", project)
	return err
}

// CurrentProject returns the active gcloud project.
func (c *Client) CurrentProject(ctx context.Context) (string, error) {
	out, err := c.Runner.Run(ctx, "config", "get", "project")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ProjectNumber resolves the numeric identifier of project.
func (c *Client) ProjectNumber(ctx context.Context, project string) (string, error) {
	out, err := c.Runner.Run(ctx, "projects", "list", "--filter", project, "--format", "value(PROJECT_NUMBER)")
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("project %s not found", project)
	}
	return string(out), nil
}

// AddProjectIAMBinding grants role to member on project. Granting an existing
// binding again leaves the policy unchanged.
func (c *Client) AddProjectIAMBinding(ctx context.Context, project, member, role string) error {
	_, err := c.Runner.Run(ctx, "projects", "add-iam-policy-binding", project, "--member", member, "--role", role)
	return err
}
