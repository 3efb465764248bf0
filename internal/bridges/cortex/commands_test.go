package cortex

import (
	"net/http"
	"testing"
)

func TestCommands(t *testing.T) {
	tests := []struct {
		name   string
		cmd    Command
		method string
		path   string
	}{
		{"list objects", ListObjects(), http.MethodGet, "Objects.json/"},
		{"describe object", DescribeObject("1001"), http.MethodGet, "Objects/1001"},
		{"read dimmer port", ReadPort("1001", PortDimmerState), http.MethodGet, "Ports/1001/13"},
		{"read temperature port", ReadPort("2002", PortTemperature), http.MethodGet, "Ports/2002/0"},
		{"turn on", TurnOn("1001"), http.MethodPost, "Objects.json/1001?5=1"},
		{"turn off", TurnOff("1001"), http.MethodPost, "Objects.json/1001?6=1"},
		{"set brightness", SetBrightness("1001", 75), http.MethodPost, "Objects.json/1001?10=75"},
		{"set setpoint", SetSetpoint("3003", 21.5), http.MethodPost, "Objects.json/3003?31=21.5"},
		{"adjust up", AdjustSetpoint("3003", 0.5), http.MethodPost, "Objects.json/3003?10=1"},
		{"adjust down", AdjustSetpoint("3003", -1), http.MethodPost, "Objects.json/3003?11=1"},
		{"escaped id", DescribeObject("../etc"), http.MethodGet, "Objects/..%2Fetc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd.Method != tt.method {
				t.Errorf("Method = %s, want %s", tt.cmd.Method, tt.method)
			}
			if tt.cmd.Path != tt.path {
				t.Errorf("Path = %s, want %s", tt.cmd.Path, tt.path)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		75:    "75",
		21.5:  "21.5",
		0.25:  "0.25",
		100.0: "100",
	}
	for in, want := range tests {
		if got := FormatValue(in); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestCommand_String(t *testing.T) {
	if got := TurnOff("9").String(); got != "POST Objects.json/9?6=1" {
		t.Errorf("String() = %q", got)
	}
}
