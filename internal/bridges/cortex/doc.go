// Package cortex talks to an Idratek Cortex controller over its HTTP API
// and translates between controller objects and smart-home capabilities.
//
// The controller addresses everything as numbered ports on numbered
// objects. A command is one HTTP request under /api/v1/:
//
//	GET  Objects.json/            list every object
//	GET  Objects/<id>             describe one object (type, report string)
//	GET  Ports/<id>/<port>        read one port
//	POST Objects.json/<id>?<p>=<v> write value v to port p
//
// Replies are JSON wrapped in a {"CortexAPI": {...}} envelope. The
// controller is loose about shapes: an object list of one is sent as a
// bare object, and numbers and IDs are sometimes quoted. The reply types
// in this package accept both forms and report anything else as a
// *ParseError.
//
// # Components
//
//   - Client: sends a Command and returns the raw reply body
//   - MapInventory: turns an object list into discovery endpoints
//   - TranslateDimmer, TranslateTemperature: turn port replies into
//     property contexts
//   - ThermostatContext: reads an HVAC report string
//
// Nothing here keeps state between calls.
package cortex
