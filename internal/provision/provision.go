// Package provision runs the BYOC provisioning sequence against gcloud.
//
// The sequence is not atomic. Granting the Deployment Manager service agent
// roles/owner happens before the deployment is created, and nothing revokes
// that grant when creation fails or when the deployment is later deleted.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gcp-byoc-network/internal/deployment"
	"github.com/blackwell-systems/gcp-byoc-network/internal/gcloud"
	"github.com/blackwell-systems/gcp-byoc-network/internal/manifest"
)

// DeploymentManagerRole is granted to the Deployment Manager service agent so
// it can create the custom role and its project binding.
const DeploymentManagerRole = "roles/owner"

// TemplateFile is the file name the rendered document is submitted under.
const TemplateFile = "byoc.jinja"

// Options select what a run does.
type Options struct {
	Project    string
	Name       string
	Region     string
	CIDR       string
	Controller string

	// OutputOnly skips creation and only reads the outputs.
	OutputOnly bool
	// Delete tears the deployment down instead of creating it.
	Delete bool
}

// Provisioner runs the provisioning sequence.
type Provisioner struct {
	Client *gcloud.Client
	Logger *zap.Logger
	// Progress receives human readable step messages. Nil discards them.
	Progress io.Writer
}

// Run sets the active project and then deletes, creates or only inspects the
// deployment. Outputs are returned for every mode except Delete.
func (p *Provisioner) Run(ctx context.Context, opts Options) (map[string]string, error) {
	p.step("Setting active project %s", opts.Project)
	if err := p.Client.SetProject(ctx, opts.Project); err != nil {
		return nil, err
	}

	if opts.Delete {
		p.step("Deleting deployment %s", opts.Name)
		if err := p.Client.DeleteDeployment(ctx, opts.Name); err != nil {
			return nil, err
		}
		p.done("Deployment %s deleted", opts.Name)
		return nil, nil
	}

	if !opts.OutputOnly {
		if err := p.GrantPermissions(ctx); err != nil {
			return nil, err
		}
		if err := p.Create(ctx, opts); err != nil {
			return nil, err
		}
	}

	return p.Outputs(ctx, opts.Name)
}

// GrantPermissions grants the Deployment Manager service agent of the active
// project DeploymentManagerRole.
func (p *Provisioner) GrantPermissions(ctx context.Context) error {
	project, err := p.Client.CurrentProject(ctx)
	if err != nil {
		return err
	}
	number, err := p.Client.ProjectNumber(ctx, project)
	if err != nil {
		return err
	}

	member := fmt.Sprintf("serviceAccount:%s@cloudservices.gserviceaccount.com", number)
	p.step("Granting %s to %s", DeploymentManagerRole, member)
	p.logger().Info("granting deployment permissions",
		zap.String("project", project),
		zap.String("member", member),
		zap.String("role", DeploymentManagerRole),
	)
	return p.Client.AddProjectIAMBinding(ctx, project, member, DeploymentManagerRole)
}

// Create renders the deployment document and submits it as a template.
func (p *Provisioner) Create(ctx context.Context, opts Options) error {
	doc := deployment.Generate(deployment.Params{
		Name:       opts.Name,
		Region:     opts.Region,
		CIDR:       opts.CIDR,
		Project:    opts.Project,
		Controller: opts.Controller,
	})
	if err := doc.Validate(nil); err != nil {
		return fmt.Errorf("invalid deployment document: %w", err)
	}
	data, err := doc.YAML()
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "gcp-byoc-")
	if err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	defer os.RemoveAll(dir)

	template := filepath.Join(dir, TemplateFile)
	if err := os.WriteFile(template, data, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	p.step("Creating deployment %s in %s", opts.Name, opts.Region)
	p.logger().Info("creating deployment",
		zap.String("name", opts.Name),
		zap.String("region", opts.Region),
		zap.String("cidr", opts.CIDR),
		zap.Int("resources", len(doc.Resources)),
	)
	props := []gcloud.Property{
		{Key: "region", Value: opts.Region},
		{Key: "cidr", Value: opts.CIDR},
		{Key: "name", Value: opts.Name},
	}
	if err := p.Client.CreateDeployment(ctx, opts.Name, template, props); err != nil {
		return err
	}
	p.done("Deployment %s created", opts.Name)
	return nil
}

// Outputs reads the resolved outputs of deployment name from its manifest.
func (p *Provisioner) Outputs(ctx context.Context, name string) (map[string]string, error) {
	p.step("Reading outputs of %s", name)

	d, err := p.Client.DescribeDeployment(ctx, name)
	if err != nil {
		return nil, err
	}
	manifestName := manifest.NameFromURL(d.Manifest)
	if manifestName == "" {
		return nil, fmt.Errorf("deployment %s has no manifest", name)
	}

	m, err := p.Client.DescribeManifest(ctx, name, manifestName)
	if err != nil {
		return nil, err
	}
	return m.Outputs()
}

func (p *Provisioner) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Provisioner) step(format string, a ...any) {
	if p.Progress == nil {
		return
	}
	color.New(color.FgCyan).Fprintf(p.Progress, "→ "+format+"\n", a...)
}

func (p *Provisioner) done(format string, a ...any) {
	if p.Progress == nil {
		return
	}
	color.New(color.FgGreen).Fprintf(p.Progress, "✓ "+format+"\n", a...)
}
