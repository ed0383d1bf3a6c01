package api

import (
	"fmt"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/types"
)

// ProcessMessage is a message between the browser and a renderer process.
// Messages built with NewPayloadMessage carry a msgpack encoded
// types.MessagePayload as their first argument.
type ProcessMessage struct{ ref }

// NewProcessMessage creates an empty message.
func (b *Binding) NewProcessMessage(name string) (*ProcessMessage, error) {
	const op = "cef_process_message_create"
	if err := b.alloc(op, types.AnyThread); err != nil {
		return nil, err
	}
	var a ffi.Arena
	defer a.Free()
	h, err := b.wrap(descriptor.ProcessMessage, b.lib.Call(b.sym.ProcessMessageCreate, a.String(name)), op)
	if err != nil {
		return nil, err
	}
	return &ProcessMessage{ref{b: b, h: h}}, nil
}

// NewPayloadMessage creates a message named after p carrying p.
func (b *Binding) NewPayloadMessage(p types.MessagePayload) (*ProcessMessage, error) {
	bz, err := types.EncodePayload(p)
	if err != nil {
		return nil, err
	}
	msg, err := b.NewProcessMessage(p.Name)
	if err != nil {
		return nil, err
	}
	if err := msg.setBinary(0, bz); err != nil {
		msg.Release()
		return nil, err
	}
	return msg, nil
}

func (m *ProcessMessage) Clone() *ProcessMessage {
	return &ProcessMessage{m.clone()}
}

func (m *ProcessMessage) IsValid() (bool, error) {
	return m.flag("is_valid")
}

func (m *ProcessMessage) Name() (string, error) {
	return m.text("get_name")
}

// Payload decodes the payload carried as first argument.
func (m *ProcessMessage) Payload() (types.MessagePayload, error) {
	bz, err := m.binary(0)
	if err != nil {
		return types.MessagePayload{}, err
	}
	return types.DecodePayload(bz)
}

func (m *ProcessMessage) arguments() (*handle.Handle, error) {
	return m.produce(m.b.alloc, descriptor.ListValue, "get_argument_list")
}

func (m *ProcessMessage) setBinary(index int, data []byte) error {
	list, err := m.arguments()
	if err != nil {
		return err
	}
	defer list.Release()

	var a ffi.Arena
	defer a.Free()
	bin, err := m.b.wrap(descriptor.BinaryValue,
		m.b.lib.Call(m.b.sym.BinaryValueCreate, a.Bytes(data), uintptr(len(data))), "cef_binary_value_create")
	if err != nil {
		return err
	}
	defer bin.Release()
	if !truthy(list.Invoke("set_binary", uintptr(index), bin.Pass())) {
		return types.ForeignStatus{Op: "cef_list_value_t.set_binary", Code: 0}
	}
	return nil
}

func (m *ProcessMessage) binary(index int) ([]byte, error) {
	list, err := m.arguments()
	if err != nil {
		return nil, err
	}
	defer list.Release()

	bin, err := m.b.wrap(descriptor.BinaryValue, list.Invoke("get_binary", uintptr(index)), "cef_list_value_t.get_binary")
	if err != nil {
		return nil, fmt.Errorf("argument %d is not binary: %w", index, err)
	}
	defer bin.Release()

	size := int(bin.Invoke("get_size"))
	if size == 0 {
		return nil, nil
	}
	var a ffi.Arena
	defer a.Free()
	addr, buf := a.Buffer(size)
	n := min(int(bin.Invoke("get_data", addr, uintptr(size), 0)), size)
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}
