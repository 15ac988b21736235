package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

var _ connect.Codec = JSONCodec{}

// JSONCodec carries plain Go structs over Connect. It replaces the default
// protojson codec under the same "json" name, so clients send
// application/json bodies.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
