/*
Package server implements msgpack IPC for prefix completion services.

The server provides a minimal interface for weighted prefix lookup using
msgpack serialization over stdin/stdout.

Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout.
Each message contains an ID field, a command, and other fields based on the
operation type.

Completion requests use mainly this structure:

	{"id": "req_001", "cmd": "complete", "p": "ame", "l": 24}

The server responds with suggestions ranked by weight:

	{"id": "req_001", "s": [{"v": "amenity", "w": 5.0}, {"v": "america", "w": 2.5}], "c": 2, "t": 145}

Removal requests prune every value reachable under a prefix:

	{"id": "rm_001", "cmd": "remove", "p": "ame"}

"count" reports the number of stored values, "health" replies with a status
message.

Response structures include status information and error details when an op
fails.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing
latency in most cases.
*/
package server

// Request is the envelope for every incoming IPC message.
type Request struct {
	ID     string `msgpack:"id"`
	Cmd    string `msgpack:"cmd"` // "complete", "remove", "count", "health"
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Suggestion - a single completion candidate
type Suggestion struct {
	Value  string  `msgpack:"v"`
	Weight float64 `msgpack:"w"`
}

// CompleteResponse - completion response
type CompleteResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// CountResponse reports how many values the tree currently holds.
type CountResponse struct {
	ID    string `msgpack:"id"`
	Count int    `msgpack:"c"`
}

// StatusResponse - generic acknowledgement, used by "remove" and "health"
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
