package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// encodePayload converts any JSON-serializable value into a Struct
func encodePayload(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to convert payload to struct: %w", err)
	}
	return out, nil
}

// decodePayload fills v from a Struct using the value's json tags
func decodePayload(in *structpb.Struct, v interface{}) error {
	if in == nil || len(in.GetFields()) == 0 {
		return nil
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
