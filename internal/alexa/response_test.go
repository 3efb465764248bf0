package alexa

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewContext_HealthAppendedLast(t *testing.T) {
	ctx := NewContext(
		NewProperty(NamespaceBrightness, PropertyBrightness, 40.0),
		HealthProperty(),
		NewProperty(NamespacePower, PropertyPowerState, PowerOn),
	)

	if len(ctx.Properties) != 3 {
		t.Fatalf("len(Properties) = %d, want 3", len(ctx.Properties))
	}

	health := 0
	for _, p := range ctx.Properties {
		if p.Namespace == NamespaceEndpointHealth {
			health++
		}
	}
	if health != 1 {
		t.Errorf("health readings = %d, want exactly 1", health)
	}

	last := ctx.Properties[len(ctx.Properties)-1]
	if last.Namespace != NamespaceEndpointHealth || last.Name != PropertyConnectivity || last.Value != ConnectivityOK {
		t.Errorf("last property = %+v, want connectivity OK", last)
	}
	if ctx.Properties[0].Name != PropertyBrightness || ctx.Properties[1].Name != PropertyPowerState {
		t.Errorf("order = %s, %s; want brightness, powerState", ctx.Properties[0].Name, ctx.Properties[1].Name)
	}
}

func TestNewContext_Empty(t *testing.T) {
	ctx := NewContext()
	if len(ctx.Properties) != 1 || ctx.Properties[0].Name != PropertyConnectivity {
		t.Errorf("NewContext() = %+v, want health only", ctx.Properties)
	}
}

func TestNewProperty(t *testing.T) {
	p := NewProperty(NamespaceTemperatureSensor, PropertyTemperature, Celsius(18.5))

	if p.UncertaintyInMilliseconds != 200 {
		t.Errorf("UncertaintyInMilliseconds = %d, want 200", p.UncertaintyInMilliseconds)
	}
	if p.TimeOfSample.IsZero() {
		t.Error("TimeOfSample not set")
	}
	if p.TimeOfSample.Location().String() != "UTC" {
		t.Errorf("TimeOfSample location = %v, want UTC", p.TimeOfSample.Location())
	}
}

func TestNewErrorResponse_JSON(t *testing.T) {
	resp := NewErrorResponse(ErrorInvalidAccessToken, nil)

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	header, ok := got["header"].(map[string]any)
	if !ok {
		t.Fatalf("header missing: %s", data)
	}
	if header["namespace"] != NamespaceControl {
		t.Errorf("namespace = %v, want %s", header["namespace"], NamespaceControl)
	}
	if header["name"] != ErrorInvalidAccessToken {
		t.Errorf("name = %v", header["name"])
	}
	if header["payloadVersion"] != "3" {
		t.Errorf("payloadVersion = %v, want 3", header["payloadVersion"])
	}
	if header["messageId"] == "" {
		t.Error("messageId empty")
	}
	if payload, ok := got["payload"].(map[string]any); !ok || len(payload) != 0 {
		t.Errorf("payload = %v, want empty object", got["payload"])
	}
	if _, ok := got["event"]; ok {
		t.Error("error response must not carry an event")
	}
	if !resp.IsError() {
		t.Error("IsError() = false")
	}
}

func TestNewUnexpectedInformation(t *testing.T) {
	resp := NewUnexpectedInformation("applianceId", "missing")

	fp, ok := resp.Payload.(FaultingParameter)
	if !ok {
		t.Fatalf("Payload = %T, want FaultingParameter", resp.Payload)
	}
	if fp.FaultingParameter != "applianceId: missing" {
		t.Errorf("FaultingParameter = %q", fp.FaultingParameter)
	}
	if resp.Name() != ErrorUnexpectedInformationReceived {
		t.Errorf("Name() = %q", resp.Name())
	}
}

func TestNewDependentServiceUnavailable(t *testing.T) {
	resp := NewDependentServiceUnavailable("Cortex controller")

	ds, ok := resp.Payload.(DependentService)
	if !ok || ds.DependentServiceName != "Cortex controller" {
		t.Errorf("Payload = %+v", resp.Payload)
	}
}

func TestNewEventResponse(t *testing.T) {
	target := Target{Token: "tok", EndpointID: "1001", CorrelationToken: "corr"}
	resp := NewEventResponse(NameResponse, target, NewContext(NewProperty(NamespacePower, PropertyPowerState, PowerOn)))

	if resp.Header != nil {
		t.Error("event response must not carry a top-level header")
	}
	h := resp.Event.Header
	if h.Namespace != NamespaceAlexa || h.Name != NameResponse || h.PayloadVersion != PayloadVersion {
		t.Errorf("header = %+v", h)
	}
	if h.CorrelationToken != "corr" {
		t.Errorf("CorrelationToken = %q, want corr", h.CorrelationToken)
	}
	if h.MessageID == "" || h.MessageID == "corr" {
		t.Errorf("MessageID = %q, want fresh id", h.MessageID)
	}
	ep := resp.Event.Endpoint
	if ep.Scope.Type != ScopeBearerToken || ep.Scope.Token != "tok" || ep.EndpointID != "1001" {
		t.Errorf("endpoint = %+v", ep)
	}
	if resp.IsError() {
		t.Error("IsError() = true for event")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"payload":{}`) {
		t.Errorf("event payload not an empty object: %s", data)
	}
}

func TestNewDiscoveryResponse_EmptyList(t *testing.T) {
	resp := NewDiscoveryResponse(nil)

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"endpoints":[]`) {
		t.Errorf("endpoints not an empty list: %s", data)
	}
	if resp.Name() != NameDiscoverResponse {
		t.Errorf("Name() = %q", resp.Name())
	}
	if resp.Event.Header.Namespace != NamespaceDiscovery {
		t.Errorf("namespace = %q", resp.Event.Header.Namespace)
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewMessageID()
		if seen[id] {
			t.Fatalf("duplicate message id %q", id)
		}
		seen[id] = true
	}
}

func TestNewCapability(t *testing.T) {
	c := NewCapability(NamespaceThermostat, PropertyTargetSetpoint, PropertyThermostatMode)

	if c.Type != InterfaceType || c.Version != InterfaceVersion3 {
		t.Errorf("type/version = %s/%s", c.Type, c.Version)
	}
	if len(c.Properties.Supported) != 2 || c.Properties.Supported[1].Name != PropertyThermostatMode {
		t.Errorf("Supported = %+v", c.Properties.Supported)
	}
	if !c.Properties.ProactivelyReported || !c.Properties.Retrievable {
		t.Error("capability should be reported and retrievable")
	}
}

func TestResponseAccessorsNil(t *testing.T) {
	var r *Response
	if r.Name() != "" || r.MessageID() != "" || r.IsError() {
		t.Error("nil response accessors should be zero")
	}
}
