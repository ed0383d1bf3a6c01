package types

import (
	"fmt"

	"github.com/shamaton/msgpack/v2"
)

// MessagePayload is the body of a process message exchanged between the
// browser and renderer processes. It travels as a single binary value.
type MessagePayload struct {
	Name string            `msgpack:"name"`
	Args []any             `msgpack:"args"`
	Meta map[string]string `msgpack:"meta,omitempty"`
}

// EncodePayload serializes p for a binary process message argument.
func EncodePayload(p MessagePayload) ([]byte, error) {
	bz, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("cannot encode message payload %q: %w", p.Name, err)
	}
	return bz, nil
}

// DecodePayload is the inverse of EncodePayload.
func DecodePayload(bz []byte) (MessagePayload, error) {
	var p MessagePayload
	if err := msgpack.Unmarshal(bz, &p); err != nil {
		return MessagePayload{}, fmt.Errorf("cannot decode message payload: %w", err)
	}
	return p, nil
}
