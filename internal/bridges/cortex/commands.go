package cortex

import (
	"net/http"
	"net/url"
	"strconv"
)

// Port numbers used by the bridge. The same number means different things
// on different object types.
const (
	// PortTemperature is the temperature output of a Temperature object.
	PortTemperature = 0

	// PortPowerOn and PortPowerOff switch a dimmer on or off when written 1.
	PortPowerOn  = 5
	PortPowerOff = 6

	// PortBrightness sets a dimmer level in percent.
	PortBrightness = 10

	// PortSetpointIncrease and PortSetpointDecrease nudge an HVAC setpoint
	// by one controller step when written 1.
	PortSetpointIncrease = 10
	PortSetpointDecrease = 11

	// PortDimmerState reports a dimmer's level and on/off state.
	PortDimmerState = 13

	// PortSetpoint sets a temporary HVAC setpoint.
	PortSetpoint = 31
)

// Command is a single request to the controller. Path is relative to the
// API base (/api/v1/).
type Command struct {
	Method string
	Path   string
}

func (c Command) String() string {
	return c.Method + " " + c.Path
}

// ListObjects lists every object known to the controller.
func ListObjects() Command {
	return Command{Method: http.MethodGet, Path: "Objects.json/"}
}

// DescribeObject fetches one object, including its type and report string.
func DescribeObject(id string) Command {
	return Command{Method: http.MethodGet, Path: "Objects/" + url.PathEscape(id)}
}

// ReadPort fetches the current event on one port of an object.
func ReadPort(id string, port int) Command {
	return Command{
		Method: http.MethodGet,
		Path:   "Ports/" + url.PathEscape(id) + "/" + strconv.Itoa(port),
	}
}

// WritePort sets one port of an object to value.
func WritePort(id string, port int, value string) Command {
	return Command{
		Method: http.MethodPost,
		Path:   "Objects.json/" + url.PathEscape(id) + "?" + strconv.Itoa(port) + "=" + url.QueryEscape(value),
	}
}

// TurnOn switches an object on.
func TurnOn(id string) Command {
	return WritePort(id, PortPowerOn, "1")
}

// TurnOff switches an object off.
func TurnOff(id string) Command {
	return WritePort(id, PortPowerOff, "1")
}

// SetBrightness sets a dimmer level in percent.
func SetBrightness(id string, percent float64) Command {
	return WritePort(id, PortBrightness, FormatValue(percent))
}

// SetSetpoint sets a temporary HVAC setpoint in degrees Celsius.
func SetSetpoint(id string, celsius float64) Command {
	return WritePort(id, PortSetpoint, FormatValue(celsius))
}

// AdjustSetpoint nudges an HVAC setpoint in the direction of delta.
// Only the sign is sent; the controller applies its own step size.
// A delta of zero counts as a decrease.
func AdjustSetpoint(id string, delta float64) Command {
	if delta > 0 {
		return WritePort(id, PortSetpointIncrease, "1")
	}
	return WritePort(id, PortSetpointDecrease, "1")
}

// FormatValue renders v with no trailing zeros, so 75 is "75" and 21.5 is
// "21.5".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
