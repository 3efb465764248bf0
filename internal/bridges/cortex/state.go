package cortex

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
)

// reportNumber matches an unsigned decimal in an HVAC report string.
var reportNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// TranslateDimmer turns a dimmer state port reply into brightness and
// powerState readings.
func TranslateDimmer(body string) (*alexa.Context, error) {
	ev, err := ParsePortEvent(body)
	if err != nil {
		return nil, err
	}

	power := alexa.PowerOff
	if ev.On() {
		power = alexa.PowerOn
	}

	return alexa.NewContext(
		alexa.NewProperty(alexa.NamespaceBrightness, alexa.PropertyBrightness, ev.Value),
		alexa.NewProperty(alexa.NamespacePower, alexa.PropertyPowerState, power),
	), nil
}

// TranslateTemperature turns a temperature port reply into a temperature
// reading. Sensors have no power state, so none is reported.
func TranslateTemperature(body string) (*alexa.Context, error) {
	ev, err := ParsePortEvent(body)
	if err != nil {
		return nil, err
	}

	return alexa.NewContext(
		alexa.NewProperty(alexa.NamespaceTemperatureSensor, alexa.PropertyTemperature, alexa.Celsius(ev.Value)),
	), nil
}

// ThermostatContext builds thermostat readings from a report string.
// The mode is always HEAT.
func ThermostatContext(report string) (*alexa.Context, error) {
	setpoint, temperature, err := ParseReport(report)
	if err != nil {
		return nil, err
	}

	return alexa.NewContext(
		alexa.NewProperty(alexa.NamespaceThermostat, alexa.PropertyThermostatMode, alexa.ThermostatHeat),
		alexa.NewProperty(alexa.NamespaceThermostat, alexa.PropertyTargetSetpoint, alexa.Celsius(setpoint)),
		alexa.NewProperty(alexa.NamespaceTemperatureSensor, alexa.PropertyTemperature, alexa.Celsius(temperature)),
	), nil
}

// ParseReport extracts the setpoint and measured temperature from an HVAC
// report string such as "H = 19.50C, T = 18.97C.". The first number is the
// setpoint and the second the temperature, both read as Celsius. Signs and
// units in the text are not interpreted. Anything after the second number
// is ignored.
func ParseReport(report string) (setpoint, temperature float64, err error) {
	found := reportNumber.FindAllString(report, 2)
	if len(found) < 2 {
		return 0, 0, parseErr("ReportString", fmt.Errorf("want 2 numbers in %q, found %d", report, len(found)))
	}

	if setpoint, err = strconv.ParseFloat(found[0], 64); err != nil {
		return 0, 0, parseErr("ReportString", err)
	}
	if temperature, err = strconv.ParseFloat(found[1], 64); err != nil {
		return 0, 0, parseErr("ReportString", err)
	}
	return setpoint, temperature, nil
}
