package deployment

// Kind identifies one of the fixed resource variants the builder emits.
type Kind struct {
	// Type is the deployment service type identifier.
	Type string
	// RefAttribute is the attribute other resources point at by default.
	RefAttribute string
}

var (
	Network          = Kind{Type: "compute.v1.network", RefAttribute: "selfLink"}
	Subnetwork       = Kind{Type: "compute.v1.subnetwork", RefAttribute: "selfLink"}
	ServiceAccount   = Kind{Type: "iam.v1.serviceAccount", RefAttribute: "email"}
	Role             = Kind{Type: "gcp-types/iam-v1:projects.roles", RefAttribute: "name"}
	IamMemberBinding = Kind{Type: "gcp-types/cloudresourcemanager-v1:virtual.projects.iamMemberBinding", RefAttribute: "selfLink"}
)

// TokenCreatorRole is granted to identities allowed to impersonate a
// service account.
const TokenCreatorRole = "roles/iam.serviceAccountTokenCreator"

// Properties is the opaque configuration of a resource.
type Properties map[string]any

// Resource is a node of the deployment graph.
type Resource struct {
	Name       string
	Kind       Kind
	Properties Properties
	DependsOn  []*Resource

	// Impersonators lists service account emails that may create tokens for
	// this resource. Only meaningful for ServiceAccount.
	Impersonators []string

	syntax Syntax
}

// Descriptor is the serializable form of a Resource.
type Descriptor struct {
	Name          string         `yaml:"name" json:"name"`
	Type          string         `yaml:"type" json:"type"`
	Properties    Properties     `yaml:"properties" json:"properties"`
	Metadata      *Metadata      `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	AccessControl *AccessControl `yaml:"accessControl,omitempty" json:"accessControl,omitempty"`
}

// Metadata carries explicit dependencies.
type Metadata struct {
	DependsOn []string `yaml:"dependsOn" json:"dependsOn"`
}

// AccessControl is the IAM policy applied to the created resource itself.
type AccessControl struct {
	GcpIamPolicy IamPolicy `yaml:"gcpIamPolicy" json:"gcpIamPolicy"`
}

// IamPolicy is a list of role bindings.
type IamPolicy struct {
	Bindings []Binding `yaml:"bindings" json:"bindings"`
}

// Binding grants a role to a set of members.
type Binding struct {
	Role    string   `yaml:"role" json:"role"`
	Members []string `yaml:"members" json:"members"`
}

// Ref returns the reference to the default attribute of the resource kind.
func (r *Resource) Ref() Reference {
	return Reference{Resource: r.Name, Attribute: r.Kind.RefAttribute, syntax: r.syntax}
}

// Descriptor returns the form submitted to the deployment service.
func (r *Resource) Descriptor() Descriptor {
	d := Descriptor{
		Name:       r.Name,
		Type:       r.Kind.Type,
		Properties: r.Properties,
	}
	if len(r.DependsOn) > 0 {
		d.Metadata = &Metadata{}
		for _, dep := range r.DependsOn {
			d.Metadata.DependsOn = append(d.Metadata.DependsOn, dep.Name)
		}
	}
	if r.Kind == ServiceAccount && len(r.Impersonators) > 0 {
		members := make([]string, 0, len(r.Impersonators))
		for _, email := range r.Impersonators {
			members = append(members, "serviceAccount:"+email)
		}
		d.AccessControl = &AccessControl{
			GcpIamPolicy: IamPolicy{
				Bindings: []Binding{{Role: TokenCreatorRole, Members: members}},
			},
		}
	}
	return d
}
