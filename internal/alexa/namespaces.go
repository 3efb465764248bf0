package alexa

// Interface namespaces.
const (
	NamespaceAlexa             = "Alexa"
	NamespaceDiscovery         = "Alexa.Discovery"
	NamespacePower             = "Alexa.PowerController"
	NamespaceBrightness        = "Alexa.BrightnessController"
	NamespaceThermostat        = "Alexa.ThermostatController"
	NamespaceTemperatureSensor = "Alexa.TemperatureSensor"
	NamespaceEndpointHealth    = "Alexa.EndpointHealth"

	// NamespaceControl is the header namespace of normalized error responses.
	NamespaceControl = "Alexa.ConnectedHome.Control"
)

// PayloadVersion is the message format version written on every header.
const PayloadVersion = "3"

// Directive and event names.
const (
	NameDiscover                = "Discover"
	NameDiscoverResponse        = "Discover.Response"
	NameTurnOn                  = "TurnOn"
	NameTurnOff                 = "TurnOff"
	NameSetBrightness           = "SetBrightness"
	NameSetTargetTemperature    = "SetTargetTemperature"
	NameAdjustTargetTemperature = "AdjustTargetTemperature"
	NameReportState             = "ReportState"
	NameResponse                = "Response"
	NameStateReport             = "StateReport"
)

// Property names.
const (
	PropertyPowerState          = "powerState"
	PropertyBrightness          = "brightness"
	PropertyTargetSetpoint      = "targetSetpoint"
	PropertyTargetSetpointDelta = "targetSetpointDelta"
	PropertyThermostatMode      = "thermostatMode"
	PropertyTemperature         = "temperature"
	PropertyConnectivity        = "connectivity"
)

// Property values.
const (
	PowerOn           = "ON"
	PowerOff          = "OFF"
	ThermostatHeat    = "HEAT"
	ConnectivityOK    = "OK"
	ScaleCelsius      = "CELSIUS"
	ScopeBearerToken  = "BearerToken"
	InterfaceType     = "AlexaInterface"
	InterfaceVersion3 = "3"
)
