// Package schema converts actions to and from their wire form.
//
// Hosts that receive actions from outside the process (HTTP bodies, MCP tool
// calls, line commands) describe them as an Envelope: a "type" naming the
// action kind plus the fields that kind needs.
//
//	{"type": "delete_button_tapped", "id": "42"}
//	{"type": "add_contact.set_name", "name": "Blob"}
//	{"type": "confirm_deletion.confirm_deletion", "id": "42"}
//
// Each kind has a field Schema. Decode validates the raw payload against it
// and reports every problem at once as an *AggregateError of *ValidationError
// values before building the domain.Action.
package schema
