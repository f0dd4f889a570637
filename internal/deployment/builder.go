// Package deployment builds the declarative resource graph that bootstraps a
// BYOC network in a GCP project.
//
// The topology is fixed: a network, a regional subnetwork, a service account
// the vendor control plane may impersonate, a custom role and the binding of
// that role to the service account. Dependent resources point at their
// predecessors through symbolic references that the deployment service
// resolves when it applies the document.
package deployment

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultController is the vendor control plane identity allowed to
// impersonate the installation's service account.
const DefaultController = "controlplane@byoa-doublecloud.iam.gserviceaccount.com"

// Output names exposed by the document.
const (
	OutputServiceAccountEmail = "service_account_email"
	OutputProjectName         = "project_name"
	OutputNetworkName         = "network_name"
	OutputRegionID            = "region_id"
	OutputSubnetworkName      = "subnetwork_name"
)

// Params are the inputs of Generate.
type Params struct {
	Name    string
	Region  string
	CIDR    string
	Project string

	// Controller overrides DefaultController when set.
	Controller string
	// Syntax overrides the DeploymentManager reference syntax when set.
	Syntax Syntax
}

// Document is the declarative description submitted to the deployment service.
type Document struct {
	Resources []Descriptor `yaml:"resources" json:"resources"`
	Outputs   []Output     `yaml:"outputs" json:"outputs"`
}

// Output is a named value exposed once the deployment completes.
type Output struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// NetworkName returns the resource name of the installation network.
func NetworkName(name string) string {
	return "dc-network-" + name
}

// SubnetworkName returns the resource name of the installation subnetwork.
func SubnetworkName(name, region string) string {
	return NetworkName(name) + "-" + region
}

// RoleID returns the custom role identifier. Role IDs may not contain dashes.
func RoleID(name string) string {
	return "dc_byoc_" + strings.ReplaceAll(name, "-", "_")
}

// Generate builds the document for p. It performs no I/O and no validation
// of p: malformed values are reported by the deployment service.
func Generate(p Params) *Document {
	syntax := p.Syntax
	if syntax == nil {
		syntax = DeploymentManager
	}
	controller := p.Controller
	if controller == "" {
		controller = DefaultController
	}

	network := &Resource{
		Name: NetworkName(p.Name),
		Kind: Network,
		Properties: Properties{
			"name":                  NetworkName(p.Name),
			"autoCreateSubnetworks": false,
			"mtu":                   8896,
			"routingConfig": map[string]any{
				"routingMode": "REGIONAL",
			},
		},
		syntax: syntax,
	}

	subnetwork := &Resource{
		Name: SubnetworkName(p.Name, p.Region),
		Kind: Subnetwork,
		Properties: Properties{
			"name":           SubnetworkName(p.Name, p.Region),
			"description":    fmt.Sprintf("DoubleCloud BYOC %s in %s", p.Name, p.Region),
			"ipCidrRange":    p.CIDR,
			"ipv6AccessType": "EXTERNAL",
			"region":         p.Region,
			"network":        network.Ref().String(),
			"stackType":      "IPV4_IPV6",
		},
		DependsOn: []*Resource{network},
		syntax:    syntax,
	}

	serviceAccount := &Resource{
		Name: "sa",
		Kind: ServiceAccount,
		Properties: Properties{
			"accountId":   "dc-byoc-" + p.Name,
			"displayName": "DoubleCloud BYOC",
		},
		Impersonators: []string{controller},
		syntax:        syntax,
	}

	permissions := make([]string, len(ControllerPermissions))
	copy(permissions, ControllerPermissions)
	role := &Resource{
		Name: "role",
		Kind: Role,
		Properties: Properties{
			"parent": "projects/" + p.Project,
			"roleId": RoleID(p.Name),
			"role": map[string]any{
				"includedPermissions": permissions,
			},
		},
		syntax: syntax,
	}

	bindings := &Resource{
		Name: "bindings",
		Kind: IamMemberBinding,
		Properties: Properties{
			"resource": p.Project,
			"role":     role.Ref().String(),
			"member":   "serviceAccount:" + serviceAccount.Ref().String(),
		},
		DependsOn: []*Resource{role, serviceAccount},
		syntax:    syntax,
	}

	doc := &Document{}
	for _, r := range []*Resource{network, subnetwork, serviceAccount, role, bindings} {
		doc.Resources = append(doc.Resources, r.Descriptor())
	}
	doc.Outputs = []Output{
		{Name: OutputServiceAccountEmail, Value: serviceAccount.Ref().String()},
		{Name: OutputProjectName, Value: p.Project},
		{Name: OutputNetworkName, Value: NetworkName(p.Name)},
		{Name: OutputRegionID, Value: p.Region},
		{Name: OutputSubnetworkName, Value: SubnetworkName(p.Name, p.Region)},
	}
	return doc
}

// Validate checks that every dependency and every reference placeholder in
// the document names a resource declared earlier in the resource list.
func (d *Document) Validate(syntax Syntax) error {
	if syntax == nil {
		syntax = DeploymentManager
	}

	seen := make(map[string]bool, len(d.Resources))
	for _, r := range d.Resources {
		if r.Name == "" {
			return fmt.Errorf("resource of type %s has no name", r.Type)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate resource %q", r.Name)
		}
		if r.Metadata != nil {
			for _, dep := range r.Metadata.DependsOn {
				if !seen[dep] {
					return fmt.Errorf("resource %q depends on %q which is not declared before it", r.Name, dep)
				}
			}
		}
		for _, ref := range referencedNames(syntax, r.Properties) {
			if !seen[ref] {
				return fmt.Errorf("resource %q references %q which is not declared before it", r.Name, ref)
			}
		}
		seen[r.Name] = true
	}

	for _, o := range d.Outputs {
		for _, ref := range syntax.Parse(o.Value) {
			if !seen[ref] {
				return fmt.Errorf("output %q references unknown resource %q", o.Name, ref)
			}
		}
	}
	return nil
}

func referencedNames(syntax Syntax, v any) []string {
	var names []string
	switch v := v.(type) {
	case string:
		names = append(names, syntax.Parse(v)...)
	case Properties:
		for _, e := range v {
			names = append(names, referencedNames(syntax, e)...)
		}
	case map[string]any:
		for _, e := range v {
			names = append(names, referencedNames(syntax, e)...)
		}
	case []string:
		for _, e := range v {
			names = append(names, syntax.Parse(e)...)
		}
	case []any:
		for _, e := range v {
			names = append(names, referencedNames(syntax, e)...)
		}
	}
	return names
}

// YAML encodes the document. Map keys are emitted in sorted order, so equal
// documents encode to identical bytes.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to marshal deployment YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal deployment YAML: %w", err)
	}
	return buf.Bytes(), nil
}
