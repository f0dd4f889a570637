package deployment

import (
	"fmt"
	"regexp"
)

// Syntax renders a symbolic reference in the placeholder form understood by
// a deployment service.
type Syntax interface {
	Format(resource, attribute string) string
	// Parse extracts every resource name referenced in s.
	Parse(s string) []string
}

// DeploymentManager is the Cloud Deployment Manager placeholder syntax,
// $(ref.RESOURCE.ATTRIBUTE).
var DeploymentManager Syntax = deploymentManagerSyntax{}

var dmRefPattern = regexp.MustCompile(`\$\(ref\.([^.()]+)\.[^()]+\)`)

type deploymentManagerSyntax struct{}

func (deploymentManagerSyntax) Format(resource, attribute string) string {
	return fmt.Sprintf("$(ref.%s.%s)", resource, attribute)
}

func (deploymentManagerSyntax) Parse(s string) []string {
	var names []string
	for _, m := range dmRefPattern.FindAllStringSubmatch(s, -1) {
		names = append(names, m[1])
	}
	return names
}

// Reference points at an attribute of a resource that only exists once the
// deployment service has created it. It is resolved server-side.
type Reference struct {
	Resource  string
	Attribute string
	syntax    Syntax
}

// Resolve returns a reference to a different attribute of the same resource.
func (r Reference) Resolve(attribute string) Reference {
	r.Attribute = attribute
	return r
}

func (r Reference) String() string {
	s := r.syntax
	if s == nil {
		s = DeploymentManager
	}
	return s.Format(r.Resource, r.Attribute)
}
