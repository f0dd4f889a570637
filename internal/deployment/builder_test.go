package deployment

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func demoParams() Params {
	return Params{
		Name:    "demo",
		Region:  "us-central1",
		CIDR:    "10.0.0.0/16",
		Project: "demo-project",
	}
}

func TestGenerate_deterministic(t *testing.T) {
	first, err := Generate(demoParams()).YAML()
	if err != nil {
		t.Fatalf("YAML() err = %v", err)
	}
	second, err := Generate(demoParams()).YAML()
	if err != nil {
		t.Fatalf("YAML() err = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Generate() is not deterministic\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestGenerate_resourcesAndOutputs(t *testing.T) {
	doc := Generate(demoParams())

	var gotResources []string
	for _, r := range doc.Resources {
		gotResources = append(gotResources, r.Name)
	}
	wantResources := []string{"dc-network-demo", "dc-network-demo-us-central1", "sa", "role", "bindings"}
	if diff := cmp.Diff(wantResources, gotResources); diff != "" {
		t.Errorf("resources (-want, +got)\n%s", diff)
	}

	var gotTypes []string
	for _, r := range doc.Resources {
		gotTypes = append(gotTypes, r.Type)
	}
	wantTypes := []string{Network.Type, Subnetwork.Type, ServiceAccount.Type, Role.Type, IamMemberBinding.Type}
	if diff := cmp.Diff(wantTypes, gotTypes); diff != "" {
		t.Errorf("types (-want, +got)\n%s", diff)
	}

	want := []Output{
		{Name: "service_account_email", Value: "$(ref.sa.email)"},
		{Name: "project_name", Value: "demo-project"},
		{Name: "network_name", Value: "dc-network-demo"},
		{Name: "region_id", Value: "us-central1"},
		{Name: "subnetwork_name", Value: "dc-network-demo-us-central1"},
	}
	if diff := cmp.Diff(want, doc.Outputs); diff != "" {
		t.Errorf("outputs (-want, +got)\n%s", diff)
	}
}

func TestGenerate_dependencyOrder(t *testing.T) {
	doc := Generate(demoParams())
	if err := doc.Validate(nil); err != nil {
		t.Fatalf("Validate() err = %v", err)
	}

	pos := make(map[string]int)
	for i, r := range doc.Resources {
		pos[r.Type] = i
	}
	if pos[Subnetwork.Type] < pos[Network.Type] {
		t.Errorf("subnetwork at %d before network at %d", pos[Subnetwork.Type], pos[Network.Type])
	}
	if pos[IamMemberBinding.Type] < pos[Role.Type] || pos[IamMemberBinding.Type] < pos[ServiceAccount.Type] {
		t.Errorf("binding at %d must follow role (%d) and service account (%d)",
			pos[IamMemberBinding.Type], pos[Role.Type], pos[ServiceAccount.Type])
	}

	subnet := doc.Resources[1]
	if diff := cmp.Diff(&Metadata{DependsOn: []string{"dc-network-demo"}}, subnet.Metadata); diff != "" {
		t.Errorf("subnetwork metadata (-want, +got)\n%s", diff)
	}
	binding := doc.Resources[4]
	if diff := cmp.Diff(&Metadata{DependsOn: []string{"role", "sa"}}, binding.Metadata); diff != "" {
		t.Errorf("binding metadata (-want, +got)\n%s", diff)
	}
}

func TestGenerate_references(t *testing.T) {
	doc := Generate(demoParams())

	tests := []struct {
		name     string
		resource int
		key      string
		want     string
	}{
		{"SubnetworkNetwork", 1, "network", "$(ref.dc-network-demo.selfLink)"},
		{"BindingRole", 4, "role", "$(ref.role.name)"},
		{"BindingMember", 4, "member", "serviceAccount:$(ref.sa.email)"},
		{"BindingProject", 4, "resource", "demo-project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doc.Resources[tt.resource].Properties[tt.key]
			if got != tt.want {
				t.Errorf("Properties[%q] = %v, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGenerate_names(t *testing.T) {
	tests := []struct {
		name       string
		region     string
		network    string
		subnetwork string
		roleID     string
	}{
		{"demo", "us-central1", "dc-network-demo", "dc-network-demo-us-central1", "dc_byoc_demo"},
		{"my-env", "europe-west4", "dc-network-my-env", "dc-network-my-env-europe-west4", "dc_byoc_my_env"},
		{"a-b-c", "asia-east1", "dc-network-a-b-c", "dc-network-a-b-c-asia-east1", "dc_byoc_a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Generate(Params{Name: tt.name, Region: tt.region, CIDR: "10.0.0.0/16", Project: "p"})
			if got := doc.Resources[0].Name; got != tt.network {
				t.Errorf("network = %q, want %q", got, tt.network)
			}
			if got := doc.Resources[1].Name; got != tt.subnetwork {
				t.Errorf("subnetwork = %q, want %q", got, tt.subnetwork)
			}
			if got := doc.Resources[3].Properties["roleId"]; got != tt.roleID {
				t.Errorf("roleId = %v, want %q", got, tt.roleID)
			}
		})
	}
}

func TestGenerate_role(t *testing.T) {
	doc := Generate(demoParams())
	role := doc.Resources[3]

	if got := role.Properties["parent"]; got != "projects/demo-project" {
		t.Errorf("parent = %v, want projects/demo-project", got)
	}
	perms := role.Properties["role"].(map[string]any)["includedPermissions"].([]string)
	if diff := cmp.Diff(ControllerPermissions, perms); diff != "" {
		t.Errorf("includedPermissions (-want, +got)\n%s", diff)
	}

	// The document owns its copy of the permission list.
	perms[0] = "mutated"
	if ControllerPermissions[0] == "mutated" {
		t.Error("Generate() shares ControllerPermissions with the document")
	}
}

func TestGenerate_serviceAccountAccessControl(t *testing.T) {
	tests := []struct {
		name       string
		controller string
		want       string
	}{
		{"Default", "", "serviceAccount:" + DefaultController},
		{"Override", "ops@example.iam.gserviceaccount.com", "serviceAccount:ops@example.iam.gserviceaccount.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := demoParams()
			p.Controller = tt.controller
			sa := Generate(p).Resources[2]

			want := &AccessControl{
				GcpIamPolicy: IamPolicy{
					Bindings: []Binding{{Role: TokenCreatorRole, Members: []string{tt.want}}},
				},
			}
			if diff := cmp.Diff(want, sa.AccessControl); diff != "" {
				t.Errorf("accessControl (-want, +got)\n%s", diff)
			}
			if sa.Metadata != nil {
				t.Errorf("service account metadata = %+v, want nil", sa.Metadata)
			}
		})
	}
}

func TestDocument_YAML(t *testing.T) {
	data, err := Generate(demoParams()).YAML()
	if err != nil {
		t.Fatalf("YAML() err = %v", err)
	}

	var got Document
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() err = %v", err)
	}
	if len(got.Resources) != 5 || len(got.Outputs) != 5 {
		t.Errorf("decoded %d resources and %d outputs, want 5 and 5", len(got.Resources), len(got.Outputs))
	}
	if !strings.Contains(string(data), "accessControl:") {
		t.Errorf("YAML() missing accessControl section\n%s", data)
	}
	if strings.Contains(string(data), "{{") || strings.Contains(string(data), "{%") {
		t.Errorf("YAML() contains template delimiters\n%s", data)
	}
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{
			name: "valid",
			doc: Document{Resources: []Descriptor{
				{Name: "a", Type: Network.Type},
				{Name: "b", Type: Subnetwork.Type, Properties: Properties{"network": "$(ref.a.selfLink)"}, Metadata: &Metadata{DependsOn: []string{"a"}}},
			}},
		},
		{
			name: "dependency declared later",
			doc: Document{Resources: []Descriptor{
				{Name: "b", Type: Subnetwork.Type, Metadata: &Metadata{DependsOn: []string{"a"}}},
				{Name: "a", Type: Network.Type},
			}},
			wantErr: true,
		},
		{
			name: "reference to unknown resource",
			doc: Document{Resources: []Descriptor{
				{Name: "b", Type: Subnetwork.Type, Properties: Properties{"nested": map[string]any{"network": "$(ref.missing.selfLink)"}}},
			}},
			wantErr: true,
		},
		{
			name: "duplicate name",
			doc: Document{Resources: []Descriptor{
				{Name: "a", Type: Network.Type},
				{Name: "a", Type: Network.Type},
			}},
			wantErr: true,
		},
		{
			name: "output references unknown resource",
			doc: Document{
				Resources: []Descriptor{{Name: "a", Type: Network.Type}},
				Outputs:   []Output{{Name: "x", Value: "$(ref.sa.email)"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
