package mqtt

import "strings"

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "cortexbridge"

// Topics builds the bridge's topic names under one prefix.
//
//	topics := mqtt.NewTopics("home/cortex")
//	topics.Response("req-1") // "home/cortex/response/req-1"
type Topics struct {
	prefix string
}

// NewTopics returns builders rooted at prefix. Surrounding slashes are
// dropped; an empty prefix uses DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the topic root.
func (t Topics) Prefix() string {
	return t.prefix
}

// Directive returns the topic a directive with the given request ID
// arrives on.
//
// Example: cortexbridge/directive/req-abc123
func (t Topics) Directive(requestID string) string {
	return t.prefix + "/directive/" + requestID
}

// AllDirectives returns the wildcard subscription for every directive.
//
// Example: cortexbridge/directive/+
func (t Topics) AllDirectives() string {
	return t.prefix + "/directive/+"
}

// Response returns the topic the reply to requestID is published on.
//
// Example: cortexbridge/response/req-abc123
func (t Topics) Response(requestID string) string {
	return t.prefix + "/response/" + requestID
}

// Event returns the topic outcome events with the given name go to.
//
// Example: cortexbridge/event/StateReport
func (t Topics) Event(name string) string {
	return t.prefix + "/event/" + name
}

// Status returns the retained online/offline status topic.
//
// Example: cortexbridge/status
func (t Topics) Status() string {
	return t.prefix + "/status"
}

// RequestID extracts the request ID from a directive topic. It returns ""
// if topic is not a directive topic under this prefix.
func (t Topics) RequestID(topic string) string {
	id, ok := strings.CutPrefix(topic, t.prefix+"/directive/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
