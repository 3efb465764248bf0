package skill

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

func TestControl_Commands(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		directive string
		payload   string
		wantPaths []string
		property  string
		value     any
	}{
		{
			name:      "turn on",
			namespace: alexa.NamespacePower,
			directive: alexa.NameTurnOn,
			payload:   `{}`,
			wantPaths: []string{"Objects.json/1001?5=1"},
			property:  alexa.PropertyPowerState,
			value:     alexa.PowerOn,
		},
		{
			name:      "turn off",
			namespace: alexa.NamespacePower,
			directive: alexa.NameTurnOff,
			payload:   `{}`,
			wantPaths: []string{"Objects.json/1001?6=1"},
			property:  alexa.PropertyPowerState,
			value:     alexa.PowerOff,
		},
		{
			name:      "set brightness powers on first",
			namespace: alexa.NamespaceBrightness,
			directive: alexa.NameSetBrightness,
			payload:   `{"brightness":75}`,
			wantPaths: []string{"Objects.json/1001?5=1", "Objects.json/1001?10=75"},
			property:  alexa.PropertyBrightness,
			value:     75.0,
		},
		{
			name:      "negative brightness skips power on",
			namespace: alexa.NamespaceBrightness,
			directive: alexa.NameSetBrightness,
			payload:   `{"brightness":-5}`,
			wantPaths: []string{"Objects.json/1001?10=-5"},
			property:  alexa.PropertyBrightness,
			value:     -5.0,
		},
		{
			name:      "set target temperature",
			namespace: alexa.NamespaceThermostat,
			directive: alexa.NameSetTargetTemperature,
			payload:   `{"targetSetpoint":{"value":21.5,"scale":"CELSIUS"}}`,
			wantPaths: []string{"Objects.json/1001?31=21.5"},
			property:  alexa.PropertyTargetSetpoint,
			value:     alexa.Celsius(21.5),
		},
		{
			name:      "adjust up",
			namespace: alexa.NamespaceThermostat,
			directive: alexa.NameAdjustTargetTemperature,
			payload:   `{"targetSetpointDelta":{"value":0.5,"scale":"CELSIUS"}}`,
			wantPaths: []string{"Objects.json/1001?10=1"},
			property:  alexa.PropertyTargetSetpointDelta,
			value:     alexa.Celsius(0.5),
		},
		{
			name:      "adjust down",
			namespace: alexa.NamespaceThermostat,
			directive: alexa.NameAdjustTargetTemperature,
			payload:   `{"targetSetpointDelta":{"value":-2,"scale":"CELSIUS"}}`,
			wantPaths: []string{"Objects.json/1001?11=1"},
			property:  alexa.PropertyTargetSetpointDelta,
			value:     alexa.Celsius(-2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newMockController()
			s := newTestService(t, ctrl)

			resp := mustHandle(t, s, controlDirective(tt.namespace, tt.directive, "tok", "1001", tt.payload))

			cmds := ctrl.commands()
			if len(cmds) != len(tt.wantPaths) {
				t.Fatalf("commands = %v, want %v", cmds, tt.wantPaths)
			}
			for i, want := range tt.wantPaths {
				if cmds[i].Method != http.MethodPost || cmds[i].Path != want {
					t.Errorf("command[%d] = %s, want POST %s", i, cmds[i], want)
				}
			}

			if resp.IsError() {
				t.Fatalf("response = %s, want success", resp.Name())
			}
			if resp.Event.Header.Name != alexa.NameResponse {
				t.Errorf("event name = %q, want Response", resp.Event.Header.Name)
			}
			props := resp.Context.Properties
			if len(props) != 2 {
				t.Fatalf("properties = %+v, want reading + health", props)
			}
			if props[0].Name != tt.property || props[0].Value != tt.value {
				t.Errorf("reading = %s=%v, want %s=%v", props[0].Name, props[0].Value, tt.property, tt.value)
			}
			if props[1].Namespace != alexa.NamespaceEndpointHealth {
				t.Errorf("last property = %+v, want health", props[1])
			}
		})
	}
}

func TestControl_MissingPayloadValues(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		directive string
		payload   string
		fault     string
	}{
		{"brightness absent", alexa.NamespaceBrightness, alexa.NameSetBrightness, `{}`, "percentageState: missing"},
		{"brightness zero", alexa.NamespaceBrightness, alexa.NameSetBrightness, `{"brightness":0}`, "percentageState: 0"},
		{"setpoint absent", alexa.NamespaceThermostat, alexa.NameSetTargetTemperature, `{}`, "targetSetpoint: missing"},
		{"setpoint zero", alexa.NamespaceThermostat, alexa.NameSetTargetTemperature, `{"targetSetpoint":{"value":0,"scale":"CELSIUS"}}`, "targetSetpoint: 0"},
		{"delta absent", alexa.NamespaceThermostat, alexa.NameAdjustTargetTemperature, `{}`, "targetSetpointDelta: missing"},
		{"delta zero", alexa.NamespaceThermostat, alexa.NameAdjustTargetTemperature, `{"targetSetpointDelta":{"value":0}}`, "targetSetpointDelta: 0"},
		{"brightness as string", alexa.NamespaceBrightness, alexa.NameSetBrightness, `{"brightness":"75"}`, "percentageState: invalid"},
		{"brightness as object", alexa.NamespaceBrightness, alexa.NameSetBrightness, `{"brightness":{"value":75}}`, "percentageState: invalid"},
		{"payload not an object", alexa.NamespaceBrightness, alexa.NameSetBrightness, `[75]`, "percentageState: invalid"},
		{"setpoint as bare number", alexa.NamespaceThermostat, alexa.NameSetTargetTemperature, `{"targetSetpoint":21}`, "targetSetpoint: invalid"},
		{"setpoint without value", alexa.NamespaceThermostat, alexa.NameSetTargetTemperature, `{"targetSetpoint":{"scale":"CELSIUS"}}`, "targetSetpoint: invalid"},
		{"delta value as string", alexa.NamespaceThermostat, alexa.NameAdjustTargetTemperature, `{"targetSetpointDelta":{"value":"1"}}`, "targetSetpointDelta: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newMockController()
			s := newTestService(t, ctrl)

			resp := mustHandle(t, s, controlDirective(tt.namespace, tt.directive, "tok", "1001", tt.payload))

			if got := errorName(resp); got != alexa.ErrorUnexpectedInformationReceived {
				t.Fatalf("response = %q, want %s", got, alexa.ErrorUnexpectedInformationReceived)
			}
			if fp := resp.Payload.(alexa.FaultingParameter); fp.FaultingParameter != tt.fault {
				t.Errorf("faultingParameter = %q, want %q", fp.FaultingParameter, tt.fault)
			}
			if n := len(ctrl.commands()); n != 0 {
				t.Errorf("issued %d controller calls, want 0", n)
			}
		})
	}
}

func TestControl_WronglyTypedPayloadStillChecksToken(t *testing.T) {
	ctrl := newMockController()
	s := newTestService(t, ctrl)

	resp, err := s.HandleJSON(context.Background(),
		controlDirective(alexa.NamespaceBrightness, alexa.NameSetBrightness, "", "1001", `{"brightness":"75"}`))
	if err != nil {
		t.Fatalf("HandleJSON() error = %v, want a response", err)
	}
	if got := errorName(resp); got != alexa.ErrorInvalidAccessToken {
		t.Errorf("response = %q, want %s", got, alexa.ErrorInvalidAccessToken)
	}
}

func TestControl_EndpointIDTypes(t *testing.T) {
	const envelope = `{"directive":{"header":{"namespace":"Alexa.PowerController","name":"TurnOn","payloadVersion":"3","messageId":"in-1"},` +
		`"endpoint":{"scope":{"type":"BearerToken","token":"tok"},"endpointId":%s},"payload":{}}}`

	tests := []struct {
		name      string
		id        string
		wantPaths []string
		fault     string
	}{
		{name: "numeric id", id: `1001`, wantPaths: []string{"Objects.json/1001?5=1"}},
		{name: "object id", id: `{"id":1001}`, fault: "applianceId: invalid"},
		{name: "boolean id", id: `true`, fault: "applianceId: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newMockController()
			s := newTestService(t, ctrl)

			resp := mustHandle(t, s, []byte(fmt.Sprintf(envelope, tt.id)))

			if tt.fault != "" {
				if got := errorName(resp); got != alexa.ErrorUnexpectedInformationReceived {
					t.Fatalf("response = %q, want %s", got, alexa.ErrorUnexpectedInformationReceived)
				}
				if fp := resp.Payload.(alexa.FaultingParameter); fp.FaultingParameter != tt.fault {
					t.Errorf("faultingParameter = %q, want %q", fp.FaultingParameter, tt.fault)
				}
				if n := len(ctrl.commands()); n != 0 {
					t.Errorf("issued %d controller calls, want 0", n)
				}
				return
			}

			if resp.IsError() {
				t.Fatalf("response = %s, want success", resp.Name())
			}
			cmds := ctrl.commands()
			if len(cmds) != len(tt.wantPaths) || cmds[0].Path != tt.wantPaths[0] {
				t.Errorf("commands = %v, want %v", cmds, tt.wantPaths)
			}
		})
	}
}

func TestControl_TransportFailure(t *testing.T) {
	ctrl := newMockController()
	ctrl.fail("Objects.json/1001?5=1", errConnRefused)
	s := newTestService(t, ctrl)

	resp := mustHandle(t, s, controlDirective(alexa.NamespacePower, alexa.NameTurnOn, "tok", "1001", `{}`))

	if got := errorName(resp); got != alexa.ErrorDependentServiceUnavailable {
		t.Fatalf("response = %q, want %s", got, alexa.ErrorDependentServiceUnavailable)
	}
	ds := resp.Payload.(alexa.DependentService)
	if ds.DependentServiceName != DependentServiceName {
		t.Errorf("dependentServiceName = %q", ds.DependentServiceName)
	}
}

func TestControl_PowerOnFailureDoesNotBlockBrightness(t *testing.T) {
	ctrl := newMockController()
	ctrl.fail("Objects.json/1001?5=1", errConnRefused)
	s := newTestService(t, ctrl)

	resp := mustHandle(t, s, controlDirective(alexa.NamespaceBrightness, alexa.NameSetBrightness, "tok", "1001", `{"brightness":40}`))

	if resp.IsError() {
		t.Fatalf("response = %s, want success", resp.Name())
	}
	cmds := ctrl.commands()
	if len(cmds) != 2 || cmds[1].Path != "Objects.json/1001?10=40" {
		t.Errorf("commands = %v, want power-on then brightness", cmds)
	}
}

func TestPlanControl_UnknownOperation(t *testing.T) {
	_, resp := planControl(alexa.ReportState{})
	if errorName(resp) != alexa.ErrorUnsupportedOperation {
		t.Errorf("planControl(ReportState) = %q, want UnsupportedOperationError", errorName(resp))
	}
}

func TestControl_ErrorIsNotInvocationFailure(t *testing.T) {
	ctrl := newMockController()
	ctrl.fail("Objects.json/1001?6=1", cortex.ErrUnexpectedStatus)
	s := newTestService(t, ctrl)

	resp, err := s.HandleJSON(context.Background(), controlDirective(alexa.NamespacePower, alexa.NameTurnOff, "tok", "1001", `{}`))
	if err != nil {
		t.Fatalf("HandleJSON() error = %v, want nil", err)
	}
	if errors.Is(err, ErrUnrecognizedNamespace) || resp == nil {
		t.Error("controller failure must produce a response")
	}
}
