package cortex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ObjectType is the controller's ControlObjectType tag.
type ObjectType string

// Object types the bridge understands. Every other tag is ignored.
const (
	TypeDimmer      ObjectType = "IdratekDimmer1"
	TypeHVAC        ObjectType = "HVAC"
	TypeTemperature ObjectType = "Temperature"
)

// Known reports whether the bridge can translate objects of type t.
func (t ObjectType) Known() bool {
	switch t {
	case TypeDimmer, TypeHVAC, TypeTemperature:
		return true
	}
	return false
}

// Object is one controller object record.
type Object struct {
	ID           string
	FriendlyName string
	Type         ObjectType

	// ReportString is a free-text status line, e.g. "H = 19.50C, T = 18.97C."
	// on HVAC objects. Empty when the reply did not include one.
	ReportString string
}

// UnmarshalJSON accepts IDNumber as either a JSON string or a number.
func (o *Object) UnmarshalJSON(data []byte) error {
	var raw struct {
		IDNumber          json.RawMessage `json:"IDNumber"`
		FriendlyName      string          `json:"FriendlyName"`
		ControlObjectType string          `json:"ControlObjectType"`
		ReportString      string          `json:"ReportString"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := scalarText(raw.IDNumber)
	if err != nil {
		return fmt.Errorf("IDNumber: %w", err)
	}

	*o = Object{
		ID:           id,
		FriendlyName: raw.FriendlyName,
		Type:         ObjectType(raw.ControlObjectType),
		ReportString: raw.ReportString,
	}
	return nil
}

// objectList holds CortexObject records undecoded, whether the reply had
// one object or many. Records are decoded once their type is known.
type objectList []json.RawMessage

func (l *objectList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = nil
		return nil
	case trimmed[0] == '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return err
		}
		*l = records
		return nil
	default:
		*l = objectList{append(json.RawMessage(nil), trimmed...)}
		return nil
	}
}

// objectTypeOf reads only the ControlObjectType of a record. A record that
// is not an object, or whose tag is not a scalar, has an empty type.
func objectTypeOf(record json.RawMessage) ObjectType {
	var head struct {
		ControlObjectType json.RawMessage `json:"ControlObjectType"`
	}
	if err := json.Unmarshal(record, &head); err != nil {
		return ""
	}
	tag, err := scalarText(head.ControlObjectType)
	if err != nil {
		return ""
	}
	return ObjectType(tag)
}

// looseObject reads what it can of a record whose type the bridge does not
// translate. Fields of the wrong shape are left empty.
func looseObject(record json.RawMessage, typ ObjectType) Object {
	var raw struct {
		IDNumber     json.RawMessage `json:"IDNumber"`
		FriendlyName json.RawMessage `json:"FriendlyName"`
	}
	_ = json.Unmarshal(record, &raw) // best effort
	id, _ := scalarText(raw.IDNumber)
	name, _ := scalarText(raw.FriendlyName)
	return Object{ID: id, FriendlyName: name, Type: typ}
}

// PortEvent is the last event seen on one port.
type PortEvent struct {
	Value float64
	State string
}

// On reports whether the port state is "True".
func (p PortEvent) On() bool {
	return strings.EqualFold(strings.TrimSpace(p.State), "true")
}

// UnmarshalJSON accepts Value as either a number or a numeric string.
func (p *PortEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value json.RawMessage `json:"Value"`
		State json.RawMessage `json:"State"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Value) == 0 {
		return errors.New("port value missing")
	}

	text, err := scalarText(raw.Value)
	if err != nil {
		return fmt.Errorf("Value: %w", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("Value: %w", err)
	}

	state, err := scalarText(raw.State)
	if err != nil {
		return fmt.Errorf("State: %w", err)
	}

	*p = PortEvent{Value: v, State: state}
	return nil
}

// scalarText renders a JSON string, number or boolean as text. Absent and
// null values become "".
func scalarText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", trimmed)
	default:
		// Numbers and booleans are kept verbatim.
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return "", err
		}
		return string(trimmed), nil
	}
}

// envelope is the outer shape of every controller reply.
type envelope struct {
	CortexAPI *struct {
		CortexObject *objectList `json:"CortexObject"`
		PortEvent    *PortEvent  `json:"PortEvent"`
	} `json:"CortexAPI"`
}

func decodeEnvelope(shape, body string) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, parseErr(shape, err)
	}
	if env.CortexAPI == nil {
		return nil, parseErr(shape, errors.New("CortexAPI envelope missing"))
	}
	return &env, nil
}

// ParseObjectList decodes the reply to ListObjects. Records whose type the
// bridge does not translate are dropped before they are decoded, so their
// shape never fails the list. A reply with no CortexObject member is an
// empty inventory.
func ParseObjectList(body string) ([]Object, error) {
	env, err := decodeEnvelope("object list", body)
	if err != nil {
		return nil, err
	}
	if env.CortexAPI.CortexObject == nil {
		return nil, nil
	}

	records := *env.CortexAPI.CortexObject
	objects := make([]Object, 0, len(records))
	for i, record := range records {
		if !objectTypeOf(record).Known() {
			continue
		}
		var obj Object
		if err := json.Unmarshal(record, &obj); err != nil {
			return nil, parseErr("object list", fmt.Errorf("CortexObject[%d]: %w", i, err))
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// ParseObject decodes the reply to DescribeObject. An object of a type the
// bridge does not translate is returned with whatever fields could be read.
func ParseObject(body string) (Object, error) {
	env, err := decodeEnvelope("object", body)
	if err != nil {
		return Object{}, err
	}

	list := env.CortexAPI.CortexObject
	if list == nil || len(*list) != 1 {
		return Object{}, parseErr("object", errors.New("expected exactly one CortexObject"))
	}

	record := (*list)[0]
	if typ := objectTypeOf(record); !typ.Known() {
		return looseObject(record, typ), nil
	}
	var obj Object
	if err := json.Unmarshal(record, &obj); err != nil {
		return Object{}, parseErr("object", err)
	}
	return obj, nil
}

// ParsePortEvent decodes the reply to ReadPort.
func ParsePortEvent(body string) (PortEvent, error) {
	env, err := decodeEnvelope("PortEvent", body)
	if err != nil {
		return PortEvent{}, err
	}
	if env.CortexAPI.PortEvent == nil {
		return PortEvent{}, parseErr("PortEvent", errors.New("PortEvent missing"))
	}
	return *env.CortexAPI.PortEvent, nil
}
