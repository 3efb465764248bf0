package alexa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is the inbound envelope delivered by the voice platform.
type Request struct {
	Directive Directive `json:"directive"`
}

// Directive is a single inbound instruction. It is read-only once decoded.
//
// Only the header must be well formed. Endpoint and payload values are read
// leniently so a wrongly typed field becomes a normalized error response
// rather than a failed invocation.
type Directive struct {
	Header   DirectiveHeader    `json:"header"`
	Endpoint *DirectiveEndpoint `json:"endpoint,omitempty"`
	Payload  json.RawMessage    `json:"payload,omitempty"`
}

// DirectiveHeader identifies what the directive asks for.
type DirectiveHeader struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	PayloadVersion   string `json:"payloadVersion,omitempty"`
	MessageID        string `json:"messageId,omitempty"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

// DirectiveEndpoint addresses one appliance on behalf of one user.
type DirectiveEndpoint struct {
	Scope      Scope             `json:"scope"`
	EndpointID string            `json:"endpointId"`
	Cookie     map[string]string `json:"cookie,omitempty"`

	// EndpointIDInvalid is set when endpointId was present but neither a
	// string nor a number.
	EndpointIDInvalid bool `json:"-"`
}

// UnmarshalJSON accepts a numeric endpointId and never fails on a
// wrongly typed field.
func (e *DirectiveEndpoint) UnmarshalJSON(data []byte) error {
	*e = DirectiveEndpoint{}

	var raw struct {
		Scope      json.RawMessage `json:"scope"`
		EndpointID json.RawMessage `json:"endpointId"`
		Cookie     json.RawMessage `json:"cookie"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		e.EndpointIDInvalid = true
		return nil
	}

	id, ok := scalarString(raw.EndpointID)
	e.EndpointID = id
	e.EndpointIDInvalid = !ok
	if len(raw.Scope) > 0 {
		_ = json.Unmarshal(raw.Scope, &e.Scope) // Scope never fails
	}
	if len(raw.Cookie) > 0 {
		if err := json.Unmarshal(raw.Cookie, &e.Cookie); err != nil {
			e.Cookie = nil
		}
	}
	return nil
}

// Scope carries the caller's credentials.
type Scope struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// UnmarshalJSON leaves Token empty when the scope or token has the wrong
// shape; an empty token is rejected as an invalid access token.
func (s *Scope) UnmarshalJSON(data []byte) error {
	*s = Scope{}

	var raw struct {
		Type  json.RawMessage `json:"type"`
		Token json.RawMessage `json:"token"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	s.Type, _ = scalarString(raw.Type)
	s.Token, _ = scalarString(raw.Token)
	return nil
}

// Temperature is a value with its scale, used both in directive payloads
// and in reported properties.
type Temperature struct {
	Value float64 `json:"value"`
	Scale string  `json:"scale"`
}

// Celsius returns a Temperature in the CELSIUS scale.
func Celsius(v float64) Temperature {
	return Temperature{Value: v, Scale: ScaleCelsius}
}

// Decode parses a raw directive body.
//
// Parameters:
//   - data: JSON request body
//
// Returns:
//   - *Request: The decoded envelope
//   - error: ErrMalformedDirective (wrapped) if the body cannot be decoded
func Decode(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDirective, err)
	}
	return &req, nil
}

// Operation is one supported directive, narrowed from the raw envelope.
// The concrete types are Discover, TurnOn, TurnOff, SetBrightness,
// SetTargetTemperature, AdjustTargetTemperature, ReportState,
// UnsupportedDirective and UnknownNamespace.
type Operation interface {
	isOperation()
}

// Target is the endpoint addressed by a control or query directive.
type Target struct {
	// Token is the trimmed bearer token. Empty if none was sent.
	Token string

	// EndpointID is the controller object ID. Empty if none was sent.
	EndpointID string

	// EndpointIDInvalid is set when the endpoint ID had an unusable type.
	EndpointIDInvalid bool

	// CorrelationToken is echoed on the resulting event.
	CorrelationToken string
}

// Discover asks for the list of appliances.
type Discover struct {
	Token string
}

// TurnOn switches an appliance on.
type TurnOn struct{ Target }

// TurnOff switches an appliance off.
type TurnOff struct{ Target }

// SetBrightness sets a dimmer level in percent. Brightness is nil when the
// payload omitted it; Invalid is set when it was present but not a number.
type SetBrightness struct {
	Target
	Brightness *float64
	Invalid    bool
}

// SetTargetTemperature sets a thermostat setpoint.
type SetTargetTemperature struct {
	Target
	Setpoint *Temperature
	Invalid  bool
}

// AdjustTargetTemperature nudges a thermostat setpoint up or down.
type AdjustTargetTemperature struct {
	Target
	Delta   *Temperature
	Invalid bool
}

// ReportState asks for the current state of an appliance.
type ReportState struct{ Target }

// UnsupportedDirective is a directive in a known namespace whose name the
// bridge does not implement.
type UnsupportedDirective struct {
	Target
	Namespace string
	Name      string
}

// UnknownNamespace is a directive whose namespace no handler serves.
type UnknownNamespace struct {
	Namespace string
	Name      string
}

func (Discover) isOperation()                {}
func (TurnOn) isOperation()                  {}
func (TurnOff) isOperation()                 {}
func (SetBrightness) isOperation()           {}
func (SetTargetTemperature) isOperation()    {}
func (AdjustTargetTemperature) isOperation() {}
func (ReportState) isOperation()             {}
func (UnsupportedDirective) isOperation()    {}
func (UnknownNamespace) isOperation()        {}

// IsControlNamespace reports whether ns is served by the control handler.
func IsControlNamespace(ns string) bool {
	switch ns {
	case NamespacePower, NamespaceBrightness, NamespaceThermostat:
		return true
	}
	return false
}

// Operation narrows the directive to its variant.
//
// Within a control namespace the directive name alone selects the
// operation, so a TurnOn sent under Alexa.BrightnessController is still a
// TurnOn. Only ReportState is served in the bare Alexa namespace.
func (d *Directive) Operation() Operation {
	ns, name := d.Header.Namespace, d.Header.Name

	payload := readPayload(d.Payload)

	if ns == NamespaceDiscovery {
		var scope Scope
		if raw, ok := payload.fields["scope"]; ok {
			_ = json.Unmarshal(raw, &scope) // Scope never fails
		}
		return Discover{Token: strings.TrimSpace(scope.Token)}
	}

	target := d.target()

	if IsControlNamespace(ns) {
		switch name {
		case NameTurnOn:
			return TurnOn{target}
		case NameTurnOff:
			return TurnOff{target}
		case NameSetBrightness:
			v, ok := payload.number("brightness")
			return SetBrightness{Target: target, Brightness: v, Invalid: !ok}
		case NameSetTargetTemperature:
			v, ok := payload.temperature("targetSetpoint")
			return SetTargetTemperature{Target: target, Setpoint: v, Invalid: !ok}
		case NameAdjustTargetTemperature:
			v, ok := payload.temperature("targetSetpointDelta")
			return AdjustTargetTemperature{Target: target, Delta: v, Invalid: !ok}
		}
		return UnsupportedDirective{Target: target, Namespace: ns, Name: name}
	}

	if ns == NamespaceAlexa {
		if name == NameReportState {
			return ReportState{target}
		}
		return UnsupportedDirective{Target: target, Namespace: ns, Name: name}
	}

	return UnknownNamespace{Namespace: ns, Name: name}
}

func (d *Directive) target() Target {
	t := Target{CorrelationToken: strings.TrimSpace(d.Header.CorrelationToken)}
	if d.Endpoint != nil {
		t.Token = strings.TrimSpace(d.Endpoint.Scope.Token)
		t.EndpointID = d.Endpoint.EndpointID
		t.EndpointIDInvalid = d.Endpoint.EndpointIDInvalid
	}
	return t
}

// payload is a directive payload split into its fields. A payload that is
// not a JSON object makes every field invalid.
type payload struct {
	fields  map[string]json.RawMessage
	invalid bool
}

func readPayload(raw json.RawMessage) payload {
	var p payload
	if len(raw) == 0 || string(raw) == "null" {
		return p
	}
	if err := json.Unmarshal(raw, &p.fields); err != nil {
		p.invalid = true
	}
	return p
}

// lookup returns the raw field, or nil if it is absent or null.
func (p payload) lookup(name string) json.RawMessage {
	raw, ok := p.fields[name]
	if !ok || string(raw) == "null" {
		return nil
	}
	return raw
}

// number reads a numeric field. The bool is false when the field is
// present with another type.
func (p payload) number(name string) (*float64, bool) {
	if p.invalid {
		return nil, false
	}
	raw := p.lookup(name)
	if raw == nil {
		return nil, true
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// temperature reads a {value, scale} field. A value that is not a number,
// or a field that is not an object, is invalid.
func (p payload) temperature(name string) (*Temperature, bool) {
	if p.invalid {
		return nil, false
	}
	raw := p.lookup(name)
	if raw == nil {
		return nil, true
	}
	var t struct {
		Value *float64 `json:"value"`
		Scale string   `json:"scale"`
	}
	if err := json.Unmarshal(raw, &t); err != nil || t.Value == nil {
		return nil, false
	}
	return &Temperature{Value: *t.Value, Scale: t.Scale}, true
}

// scalarString reads a JSON string or number as text. Absent and null give
// "" and true; any other type gives false.
func scalarString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}
