package alexa

// Display categories.
const (
	CategoryLight             = "LIGHT"
	CategoryTemperatureSensor = "TEMPERATURE_SENSOR"
	CategoryThermostat        = "THERMOSTAT"
)

// Endpoint describes one discovered appliance.
type Endpoint struct {
	EndpointID        string            `json:"endpointId"`
	ManufacturerName  string            `json:"manufacturerName"`
	Version           string            `json:"version"`
	FriendlyName      string            `json:"friendlyName"`
	Description       string            `json:"description"`
	DisplayCategories []string          `json:"displayCategories"`
	Capabilities      []Capability      `json:"capabilities"`
	Cookie            map[string]string `json:"cookie"`
}

// Capability declares one interface an endpoint implements.
type Capability struct {
	Type          string                   `json:"type"`
	Interface     string                   `json:"interface"`
	Version       string                   `json:"version"`
	Properties    CapabilityProperties     `json:"properties"`
	Configuration *ThermostatConfiguration `json:"configuration,omitempty"`
}

// CapabilityProperties lists the reportable properties of a capability.
type CapabilityProperties struct {
	Supported           []SupportedProperty `json:"supported"`
	ProactivelyReported bool                `json:"proactivelyReported"`
	Retrievable         bool                `json:"retrievable"`
}

// SupportedProperty names one property.
type SupportedProperty struct {
	Name string `json:"name"`
}

// ThermostatConfiguration narrows what a thermostat accepts.
type ThermostatConfiguration struct {
	SupportedModes     []string `json:"supportedModes"`
	SupportsScheduling bool     `json:"supportsScheduling"`
}

// NewCapability declares iface with the named properties, all proactively
// reported and retrievable.
func NewCapability(iface string, properties ...string) Capability {
	supported := make([]SupportedProperty, 0, len(properties))
	for _, p := range properties {
		supported = append(supported, SupportedProperty{Name: p})
	}
	return Capability{
		Type:      InterfaceType,
		Interface: iface,
		Version:   InterfaceVersion3,
		Properties: CapabilityProperties{
			Supported:           supported,
			ProactivelyReported: true,
			Retrievable:         true,
		},
	}
}
