package deployment

// ControllerPermissions are granted to the installation's service account
// through the custom role. The controller needs them to manage clusters,
// their networking, encryption keys and storage inside the project.
var ControllerPermissions = []string{
	"cloudkms.cryptoKeyVersions.destroy",
	"cloudkms.cryptoKeyVersions.list",
	"cloudkms.cryptoKeys.create",
	"cloudkms.cryptoKeys.get",
	"cloudkms.cryptoKeys.getIamPolicy",
	"cloudkms.cryptoKeys.setIamPolicy",
	"cloudkms.cryptoKeys.update",
	"cloudkms.keyRings.create",
	"cloudkms.keyRings.get",

	"compute.addresses.createInternal",
	"compute.addresses.deleteInternal",
	"compute.addresses.get",
	"compute.addresses.use",
	"compute.disks.create",
	"compute.disks.resize",
	"compute.firewalls.create",
	"compute.forwardingRules.create",
	"compute.forwardingRules.delete",
	"compute.forwardingRules.pscCreate",
	"compute.forwardingRules.pscDelete",
	"compute.globalOperations.get",
	"compute.images.getFromFamily",
	"compute.images.useReadOnly",
	"compute.instances.create",
	"compute.instances.delete",
	"compute.instances.get",
	"compute.instances.setMetadata",
	"compute.instances.setServiceAccount",
	"compute.instances.start",
	"compute.instances.stop",
	"compute.instances.update",
	"compute.networks.addPeering",
	"compute.networks.create",
	"compute.networks.get",
	"compute.networks.removePeering",
	"compute.networks.updatePolicy",
	"compute.networks.use",
	"compute.regionOperations.get",
	"compute.subnetworks.create",
	"compute.subnetworks.delete",
	"compute.subnetworks.get",
	"compute.subnetworks.use",
	"compute.subnetworks.useExternalIp",
	"compute.zoneOperations.get",

	"dns.changes.create",
	"dns.managedZones.create",
	"dns.networks.bindPrivateDNSZone",
	"dns.resourceRecordSets.create",
	"dns.resourceRecordSets.delete",
	"dns.resourceRecordSets.get",
	"dns.resourceRecordSets.update",

	"iam.serviceAccounts.actAs",
	"iam.serviceAccounts.create",
	"iam.serviceAccounts.delete",
	"iam.serviceAccounts.get",
	"iam.serviceAccounts.getIamPolicy",
	"iam.serviceAccounts.list",

	"resourcemanager.projects.get",
	"resourcemanager.projects.getIamPolicy",
	"resourcemanager.projects.setIamPolicy",

	"servicedirectory.services.create",
	"servicedirectory.services.delete",
	"servicedirectory.namespaces.create",

	"storage.buckets.create",
	"storage.buckets.delete",
	"storage.buckets.get",
	"storage.buckets.getIamPolicy",
	"storage.buckets.setIamPolicy",
	"storage.buckets.update",
	"storage.hmacKeys.create",
	"storage.hmacKeys.delete",
	"storage.hmacKeys.list",
	"storage.hmacKeys.update",
	"storage.objects.get",
	"storage.objects.delete",
	"storage.objects.list",
}
