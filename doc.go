// Package byoc provisions the network environment of a "Bring Your Own Cloud"
// installation in a customer's GCP project.
//
// # Overview
//
// The gcp-byoc CLI renders a Cloud Deployment Manager document describing a
// fixed topology and drives gcloud to submit it:
//   - dc-network-NAME: custom-mode VPC network
//   - dc-network-NAME-REGION: dual-stack subnetwork in the requested CIDR
//   - dc-byoc-NAME service account, impersonable by the vendor control plane
//   - dc_byoc_NAME custom role with the controller permissions
//   - project binding of that role to the service account
//
// # Installation
//
//	go install github.com/blackwell-systems/gcp-byoc-network/cmd/gcp-byoc@latest
//
// # Quick Start
//
//	gcp-byoc --project my-project --name demo --region us-central1
//	gcp-byoc --project my-project --name demo --output-only
//	gcp-byoc --project my-project --name demo --delete
//	gcp-byoc render --project my-project --name demo --region us-central1
//
// # Known gaps
//
// Creating a deployment first grants roles/owner on the project to the Google
// APIs service agent that Deployment Manager acts as. The grant is left in
// place when creation fails and when the deployment is deleted.
//
// # License
//
// Apache 2.0 - See LICENSE file for details.
package byoc
