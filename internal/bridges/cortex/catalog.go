package cortex

import "github.com/nerrad567/cortex-voice-bridge/internal/alexa"

// Discovery metadata written on every endpoint.
const (
	ManufacturerName = "Idratek"
	EndpointVersion  = "1.0"
)

// MapInventory describes every recognised object as a discovery endpoint.
// Objects of unknown type are left out. The output keeps the input order.
func MapInventory(objects []Object) []alexa.Endpoint {
	endpoints := make([]alexa.Endpoint, 0, len(objects))
	for _, obj := range objects {
		if ep, ok := DescribeEndpoint(obj); ok {
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints
}

// DescribeEndpoint builds the discovery endpoint for one object.
//
// Returns:
//   - alexa.Endpoint: The endpoint, with EndpointID equal to the object ID
//   - bool: false if the object type is not supported
func DescribeEndpoint(obj Object) (alexa.Endpoint, bool) {
	var (
		category     string
		capabilities []alexa.Capability
	)

	switch obj.Type {
	case TypeDimmer:
		category = alexa.CategoryLight
		capabilities = []alexa.Capability{
			alexa.NewCapability(alexa.NamespacePower, alexa.PropertyPowerState),
			alexa.NewCapability(alexa.NamespaceBrightness, alexa.PropertyBrightness),
		}
	case TypeTemperature:
		category = alexa.CategoryTemperatureSensor
		capabilities = []alexa.Capability{
			alexa.NewCapability(alexa.NamespaceTemperatureSensor, alexa.PropertyTemperature),
			alexa.NewCapability(alexa.NamespaceEndpointHealth, alexa.PropertyConnectivity),
		}
	case TypeHVAC:
		thermostat := alexa.NewCapability(alexa.NamespaceThermostat,
			alexa.PropertyTargetSetpoint, alexa.PropertyThermostatMode)
		thermostat.Configuration = &alexa.ThermostatConfiguration{
			SupportedModes:     []string{alexa.ThermostatHeat},
			SupportsScheduling: false,
		}
		category = alexa.CategoryThermostat
		capabilities = []alexa.Capability{
			thermostat,
			alexa.NewCapability(alexa.NamespaceTemperatureSensor, alexa.PropertyTemperature),
			alexa.NewCapability(alexa.NamespaceEndpointHealth, alexa.PropertyConnectivity),
		}
	default:
		return alexa.Endpoint{}, false
	}

	return alexa.Endpoint{
		EndpointID:        obj.ID,
		ManufacturerName:  ManufacturerName,
		Version:           EndpointVersion,
		FriendlyName:      obj.FriendlyName,
		Description:       obj.FriendlyName + " on " + ManufacturerName,
		DisplayCategories: []string{category},
		Capabilities:      capabilities,
		Cookie:            map[string]string{},
	}, true
}
