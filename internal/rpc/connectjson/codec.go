// Package connectjson provides a plain-JSON codec so Connect streams can
// carry ordinary Go structs without generated protobuf types.
package connectjson

import (
	"encoding/json"

	"github.com/bufbuild/connect-go"
)

// Codec marshals stream payloads with encoding/json.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Option returns the client/handler option selecting this codec.
func Option() connect.Option {
	return connect.WithCodec(Codec{})
}

var _ connect.Codec = (*Codec)(nil)
