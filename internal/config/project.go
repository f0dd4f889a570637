package config

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/metadata"
)

// DetectProject returns the project of the GCE instance the tool runs on, or
// an empty string when not running on GCE.
func DetectProject(ctx context.Context) (string, error) {
	if !metadata.OnGCE() {
		return "", nil
	}

	project, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read project from metadata server: %w", err)
	}
	return project, nil
}

// ResolveProject fills c.Project from the metadata server when it is unset.
func (c *Config) ResolveProject(ctx context.Context) error {
	if c.Project != "" {
		return nil
	}

	project, err := DetectProject(ctx)
	if err != nil {
		return err
	}
	c.Project = project
	return nil
}
