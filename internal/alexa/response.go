package alexa

import (
	"time"

	"github.com/google/uuid"
)

// uncertaintyMillis is reported on every property reading.
const uncertaintyMillis = 200

// Response is the outbound message. Discovery results and normalized errors
// set Header and Payload (discovery wraps them in Event). Control
// confirmations and state reports set Context and Event.
type Response struct {
	Header  *Header  `json:"header,omitempty"`
	Payload any      `json:"payload,omitempty"`
	Context *Context `json:"context,omitempty"`
	Event   *Event   `json:"event,omitempty"`
}

// Header identifies an outbound message.
type Header struct {
	MessageID        string `json:"messageId"`
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	PayloadVersion   string `json:"payloadVersion"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

// Event is the body of a discovery, control or query reply.
type Event struct {
	Header   Header         `json:"header"`
	Endpoint *EventEndpoint `json:"endpoint,omitempty"`
	Payload  any            `json:"payload"`
}

// EventEndpoint echoes the addressed endpoint and the caller's token.
type EventEndpoint struct {
	Scope      Scope  `json:"scope"`
	EndpointID string `json:"endpointId"`
}

// Context is the ordered list of property readings in a reply.
type Context struct {
	Properties []Property `json:"properties"`
}

// Property is one reading of one capability property.
type Property struct {
	Namespace                 string    `json:"namespace"`
	Name                      string    `json:"name"`
	Value                     any       `json:"value"`
	TimeOfSample              time.Time `json:"timeOfSample"`
	UncertaintyInMilliseconds int       `json:"uncertaintyInMilliseconds"`
}

// FaultingParameter is the payload of UnexpectedInformationReceivedError.
type FaultingParameter struct {
	FaultingParameter string `json:"faultingParameter"`
}

// DependentService is the payload of DependentServiceUnavailableError.
type DependentService struct {
	DependentServiceName string `json:"dependentServiceName"`
}

// DiscoveryPayload lists the discovered endpoints.
type DiscoveryPayload struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// NewMessageID returns a fresh message identifier.
func NewMessageID() string {
	return uuid.NewString()
}

// NewProperty builds a reading sampled now.
func NewProperty(namespace, name string, value any) Property {
	return Property{
		Namespace:                 namespace,
		Name:                      name,
		Value:                     value,
		TimeOfSample:              time.Now().UTC(),
		UncertaintyInMilliseconds: uncertaintyMillis,
	}
}

// HealthProperty is the connectivity=OK reading every context ends with.
func HealthProperty() Property {
	return NewProperty(NamespaceEndpointHealth, PropertyConnectivity, ConnectivityOK)
}

// NewContext returns the given readings followed by exactly one
// connectivity=OK reading. Health readings passed in are dropped so the
// context never reports health twice.
func NewContext(props ...Property) *Context {
	out := make([]Property, 0, len(props)+1)
	for _, p := range props {
		if p.Namespace == NamespaceEndpointHealth && p.Name == PropertyConnectivity {
			continue
		}
		out = append(out, p)
	}
	return &Context{Properties: append(out, HealthProperty())}
}

// NewErrorResponse builds a normalized error response. A nil payload is
// sent as an empty object.
func NewErrorResponse(name string, payload any) *Response {
	if payload == nil {
		payload = struct{}{}
	}
	return &Response{
		Header: &Header{
			MessageID:      NewMessageID(),
			Namespace:      NamespaceControl,
			Name:           name,
			PayloadVersion: PayloadVersion,
		},
		Payload: payload,
	}
}

// NewUnexpectedInformation reports a missing or unusable directive field,
// e.g. "percentageState: 0".
func NewUnexpectedInformation(param, value string) *Response {
	return NewErrorResponse(ErrorUnexpectedInformationReceived, FaultingParameter{
		FaultingParameter: param + ": " + value,
	})
}

// NewDependentServiceUnavailable reports that a downstream service failed.
func NewDependentServiceUnavailable(service string) *Response {
	return NewErrorResponse(ErrorDependentServiceUnavailable, DependentService{
		DependentServiceName: service,
	})
}

// NewEventResponse builds a control confirmation or state report for target.
//
// Parameters:
//   - name: Event name (Response or StateReport)
//   - target: The endpoint the directive addressed
//   - ctx: Property readings to report
//
// Returns:
//   - *Response: Response with Context and Event set
func NewEventResponse(name string, target Target, ctx *Context) *Response {
	return &Response{
		Context: ctx,
		Event: &Event{
			Header: Header{
				MessageID:        NewMessageID(),
				Namespace:        NamespaceAlexa,
				Name:             name,
				PayloadVersion:   PayloadVersion,
				CorrelationToken: target.CorrelationToken,
			},
			Endpoint: &EventEndpoint{
				Scope: Scope{
					Type:  ScopeBearerToken,
					Token: target.Token,
				},
				EndpointID: target.EndpointID,
			},
			Payload: struct{}{},
		},
	}
}

// NewDiscoveryResponse builds a Discover.Response event. A nil slice is
// sent as an empty list.
func NewDiscoveryResponse(endpoints []Endpoint) *Response {
	if endpoints == nil {
		endpoints = []Endpoint{}
	}
	return &Response{
		Event: &Event{
			Header: Header{
				MessageID:      NewMessageID(),
				Namespace:      NamespaceDiscovery,
				Name:           NameDiscoverResponse,
				PayloadVersion: PayloadVersion,
			},
			Payload: DiscoveryPayload{Endpoints: endpoints},
		},
	}
}

// Name returns the name of the outbound message, taken from the event
// header when there is one.
func (r *Response) Name() string {
	switch {
	case r == nil:
		return ""
	case r.Event != nil:
		return r.Event.Header.Name
	case r.Header != nil:
		return r.Header.Name
	}
	return ""
}

// MessageID returns the outbound message identifier.
func (r *Response) MessageID() string {
	switch {
	case r == nil:
		return ""
	case r.Event != nil:
		return r.Event.Header.MessageID
	case r.Header != nil:
		return r.Header.MessageID
	}
	return ""
}

// IsError reports whether r is a normalized error response.
func (r *Response) IsError() bool {
	return r != nil && r.Header != nil && r.Header.Namespace == NamespaceControl
}
