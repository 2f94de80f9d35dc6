// Package catalog declares the built-in Tidecloud tool set: the curated
// slice of the control-plane API exposed to MCP clients.
package catalog

import (
	"net/http"

	"github.com/tidecloud/tidebridge/pkg/registry"
	"github.com/tidecloud/tidebridge/pkg/schema"
)

// Providers lists the cloud providers a service can be deployed into.
var Providers = []string{"aws", "gcp", "azure"}

// Regions lists the deployment regions the control plane accepts.
var Regions = []string{
	"us-east-1",
	"us-west-2",
	"eu-west-1",
	"eu-central-1",
	"ap-southeast-1",
	"ap-northeast-1",
}

// Register adds every built-in tool to the registry, in the order clients
// should discover them.
func Register(reg *registry.Registry) error {
	for _, def := range Definitions() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Definitions returns the built-in tool catalog.
func Definitions() []registry.Definition {
	return []registry.Definition{
		{
			Name:         "listOrganizations",
			Description:  "List all organizations available to the configured API key",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations",
			Schema:       schema.Object(nil),
		},
		{
			Name:         "getOrganizationDetails",
			Description:  "Get details of a specific organization",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations/{organizationId}",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
			}, schema.Required("organizationId")),
		},
		{
			Name:         "listServices",
			Description:  "List all services in an organization",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations/{organizationId}/services",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
			}, schema.Required("organizationId")),
		},
		{
			Name:         "getServiceDetails",
			Description:  "Get details of a specific service",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations/{organizationId}/services/{serviceId}",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
				"serviceId":      serviceID(),
			}, schema.Required("organizationId", "serviceId")),
		},
		{
			Name:         "createService",
			Description:  "Create a new service in an organization",
			Method:       http.MethodPost,
			PathTemplate: "/v1/organizations/{organizationId}/services",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
				"name":           schema.String(schema.Describe("Service name")),
				"provider": schema.String(
					schema.Describe("Cloud provider to deploy into"),
					schema.Enum(Providers...),
				),
				"region": schema.String(
					schema.Describe("Deployment region"),
					schema.Enum(Regions...),
				),
				"numReplicas": schema.Integer(
					schema.Describe("Number of replicas, between 1 and 20"),
					schema.Min(1),
					schema.Max(20),
				),
				"minReplicaMemoryGb": schema.Integer(
					schema.Describe("Minimum memory per replica in GB; a multiple of 4, at least 8"),
					schema.Min(8),
					schema.MultipleOf(4),
				),
				"maxReplicaMemoryGb": schema.Integer(
					schema.Describe("Maximum memory per replica in GB; a multiple of 4, at most 356"),
					schema.Max(356),
					schema.MultipleOf(4),
				),
				"idleScaling": schema.Bool(
					schema.Describe("Scale the service to zero when idle"),
				),
				"ipAccessList": schema.Array(ipAccessEntry(),
					schema.Describe("Sources allowed to connect to the service"),
				),
			}, schema.Required("organizationId", "name", "provider", "region")),
			BuildBody: serviceSpecBody,
		},
		{
			Name:         "deleteService",
			Description:  "Delete a service. The service must be stopped first",
			Method:       http.MethodDelete,
			PathTemplate: "/v1/organizations/{organizationId}/services/{serviceId}",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
				"serviceId":      serviceID(),
			}, schema.Required("organizationId", "serviceId")),
		},
		{
			Name:         "listApiKeys",
			Description:  "List all API keys in an organization",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations/{organizationId}/keys",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
			}, schema.Required("organizationId")),
		},
		{
			Name:         "updateServiceState",
			Description:  "Start or stop a service",
			Method:       http.MethodPatch,
			PathTemplate: "/v1/organizations/{organizationId}/services/{serviceId}/state",
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
				"serviceId":      serviceID(),
				"command": schema.String(
					schema.Describe("State change to apply"),
					schema.Enum("start", "stop"),
				),
			}, schema.Required("organizationId", "serviceId", "command")),
			BuildBody: stateCommandBody,
		},
		{
			Name:         "getPrometheusMetrics",
			Description:  "Fetch Prometheus metrics for all services in an organization",
			Method:       http.MethodGet,
			PathTemplate: "/v1/organizations/{organizationId}/prometheus",
			Header:       textPlainHeader(),
			Schema: schema.Object(map[string]*schema.Node{
				"organizationId": organizationID(),
			}, schema.Required("organizationId")),
		},
	}
}

func organizationID() *schema.Node {
	return schema.String(
		schema.Describe("Tidecloud organization UUID"),
		schema.Format(schema.FormatUUID),
	)
}

func serviceID() *schema.Node {
	return schema.String(
		schema.Describe("Tidecloud service UUID"),
		schema.Format(schema.FormatUUID),
	)
}

func ipAccessEntry() *schema.Node {
	return schema.Object(map[string]*schema.Node{
		"source":      schema.String(schema.Describe("IP address or CIDR block")),
		"description": schema.String(schema.Describe("Human-readable label for the entry")),
	}, schema.Required("source"))
}

// The metrics endpoint speaks the Prometheus exposition format, not JSON.
func textPlainHeader() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/plain")
	return h
}
