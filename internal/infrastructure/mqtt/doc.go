// Package mqtt provides MQTT connectivity for the Cortex voice bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support, restored on reconnect
//   - Last Will and Testament (LWT) so subscribers see the bridge go offline
//
// # Topics
//
// Every topic lives under the configured prefix (default "cortexbridge"):
//
//	<prefix>/directive/<request-id>   directives in
//	<prefix>/response/<request-id>    responses out
//	<prefix>/event/<name>             outcome events out
//	<prefix>/status                   online/offline, retained
//
// # Security Considerations
//
//   - Enable TLS (mqtt.broker.tls) when the broker is not on localhost
//   - Directives still carry bearer tokens; restrict who may publish to
//     <prefix>/directive/+ with broker ACLs
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topics := client.Topics()
//	err = client.Subscribe(topics.AllDirectives(), 1,
//	    func(topic string, payload []byte) error {
//	        id := topics.RequestID(topic)
//	        ...
//	    })
package mqtt
