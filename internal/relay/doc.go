// Package relay serves directives over MQTT.
//
// A Relay subscribes to <prefix>/directive/+. Each message is one directive;
// the trailing topic level is the caller's request ID. The response is
// published on <prefix>/response/<request-id>. A directive that cannot be
// handled at all (malformed JSON, unrecognized namespace) gets
// {"error": "..."} on the same response topic.
//
// Relay also implements skill.Observer: every produced response is
// published as an event on <prefix>/event/<response-name>, so dashboards
// and automations can follow what the voice assistant is doing.
package relay
