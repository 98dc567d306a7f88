// Package catalog - Azure canonical-name normalization
// Pattern detection emits simplified type names ("virtualMachines"); the
// store speaks fully-qualified ARM identifiers. Normalization happens here,
// at the boundary, so the core never compares ad-hoc aliases.
package catalog

import (
	"strings"

	"graphmirror/core/types"
)

// Normalizer resolves simplified Azure type aliases to canonical ARM
// identifiers.
type Normalizer struct {
	aliases map[string]types.CanonicalType
}

// Normalize returns the canonical form of a raw type name. Already
// qualified names pass through unchanged. The second return value reports
// whether the name was recognized; unrecognized bare aliases are returned
// as-is so the caller can surface them instead of silently dropping them.
func (n *Normalizer) Normalize(raw string) (types.CanonicalType, bool) {
	t := types.CanonicalType(raw)
	if t.IsQualified() {
		return t, true
	}
	if canonical, ok := n.aliases[strings.ToLower(raw)]; ok {
		return canonical, true
	}
	return t, false
}

// register adds an alias for the last path segment of a canonical type
func (n *Normalizer) register(canonical types.CanonicalType) {
	full := string(canonical)
	if i := strings.Index(full, "/"); i > 0 {
		n.aliases[strings.ToLower(full[i+1:])] = canonical
		// Child types also answer to their final segment
		// ("databases" for "Microsoft.Sql/servers/databases").
		if j := strings.LastIndex(full, "/"); j > i {
			n.aliases[strings.ToLower(full[j+1:])] = canonical
		}
	}
}

// NewAzureNormalizer builds the normalizer for the Azure resource types the
// replicator commonly encounters.
func NewAzureNormalizer() *Normalizer {
	n := &Normalizer{aliases: make(map[string]types.CanonicalType)}

	for _, canonical := range []types.CanonicalType{
		// Compute
		"Microsoft.Compute/virtualMachines",
		"Microsoft.Compute/virtualMachineScaleSets",
		"Microsoft.Compute/disks",
		"Microsoft.Compute/availabilitySets",
		"Microsoft.Compute/snapshots",

		// Networking
		"Microsoft.Network/virtualNetworks",
		"Microsoft.Network/virtualNetworks/subnets",
		"Microsoft.Network/networkInterfaces",
		"Microsoft.Network/networkSecurityGroups",
		"Microsoft.Network/publicIPAddresses",
		"Microsoft.Network/loadBalancers",
		"Microsoft.Network/applicationGateways",
		"Microsoft.Network/virtualNetworkGateways",
		"Microsoft.Network/routeTables",
		"Microsoft.Network/dnszones",
		"Microsoft.Network/privateDnsZones",
		"Microsoft.Network/frontDoors",
		"Microsoft.Network/natGateways",

		// Storage
		"Microsoft.Storage/storageAccounts",

		// Containers
		"Microsoft.ContainerService/managedClusters",
		"Microsoft.ContainerRegistry/registries",

		// Database
		"Microsoft.Sql/servers",
		"Microsoft.Sql/servers/databases",
		"Microsoft.Sql/managedInstances",
		"Microsoft.DBforPostgreSQL/flexibleServers",
		"Microsoft.DBforMySQL/flexibleServers",
		"Microsoft.DocumentDB/databaseAccounts",
		"Microsoft.Cache/redis",

		// App / serverless
		"Microsoft.Web/serverfarms",
		"Microsoft.Web/sites",
		"Microsoft.SignalRService/signalR",

		// Messaging / integration
		"Microsoft.ServiceBus/namespaces",
		"Microsoft.EventHub/namespaces",
		"Microsoft.EventGrid/topics",
		"Microsoft.ApiManagement/service",
		"Microsoft.DataFactory/factories",

		// Monitoring
		"Microsoft.OperationalInsights/workspaces",
		"Microsoft.Insights/components",

		// Security / identity
		"Microsoft.KeyVault/vaults",
		"Microsoft.ManagedIdentity/userAssignedIdentities",
		"Microsoft.Authorization/roleAssignments",
	} {
		n.register(canonical)
	}

	// Ambiguous last segments resolved by convention: bare "namespaces"
	// means Service Bus, bare "flexibleServers" means PostgreSQL.
	n.aliases["namespaces"] = "Microsoft.ServiceBus/namespaces"
	n.aliases["flexibleservers"] = "Microsoft.DBforPostgreSQL/flexibleServers"

	return n
}
