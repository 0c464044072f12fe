package session

import (
	"encoding/json"
	"fmt"
)

// EncodePayload serializes a payload and enforces the configured size bound.
// Backends use it so the bound is checked identically before any write,
// regardless of the storage medium.
func EncodePayload[Data any](data Data, maxSize int) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("session: encode payload: %w", err)
	}
	if maxSize > 0 && len(b) > maxSize {
		return nil, ErrPayloadTooLarge
	}
	return b, nil
}

// DecodePayload deserializes a payload produced by EncodePayload.
func DecodePayload[Data any](b []byte) (Data, error) {
	var data Data
	if err := json.Unmarshal(b, &data); err != nil {
		return data, fmt.Errorf("session: decode payload: %w", err)
	}
	return data, nil
}
