package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec marshals plain structs as JSON. It registers under the name "json",
// replacing Connect's protobuf JSON codec for the application/json content
// type.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	// Connect sends an empty body for empty messages.
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithCodec is the option both handlers and clients must be built with.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
