package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// CommandLine is an engine command line.
type CommandLine struct{ ref }

// NewCommandLine creates an empty command line.
func (b *Binding) NewCommandLine() (*CommandLine, error) {
	const op = "cef_command_line_create"
	if err := b.alloc(op, types.AnyThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.CommandLine, b.lib.Call(b.sym.CommandLineCreate), op)
	if err != nil {
		return nil, err
	}
	return &CommandLine{ref{b: b, h: h}}, nil
}

// GlobalCommandLine is the read-only command line of this process. It is
// only available once the engine started.
func (b *Binding) GlobalCommandLine() (*CommandLine, error) {
	const op = "cef_command_line_get_global"
	if err := b.create(op, types.AnyThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.CommandLine, b.lib.Call(b.sym.CommandLineGetGlobal), op)
	if err != nil {
		return nil, err
	}
	return &CommandLine{ref{b: b, h: h}}, nil
}

func (c *CommandLine) Clone() *CommandLine {
	return &CommandLine{c.clone()}
}

// Copy returns an independent, writable copy.
func (c *CommandLine) Copy() (*CommandLine, error) {
	h, err := c.produce(c.b.alloc, descriptor.CommandLine, "copy")
	if err != nil {
		return nil, err
	}
	return &CommandLine{ref{b: c.b, h: h}}, nil
}

func (c *CommandLine) IsValid() (bool, error) {
	return c.flag("is_valid")
}

func (c *CommandLine) IsReadOnly() (bool, error) {
	return c.flag("is_read_only")
}

// InitFromArgv replaces the contents with argv, program name first.
func (c *CommandLine) InitFromArgv(argv []string) error {
	var a ffi.Arena
	defer a.Free()
	ptrs := make([]uintptr, 0, len(argv)+1)
	for _, arg := range argv {
		ptrs = append(ptrs, a.CString(arg))
	}
	ptrs = append(ptrs, 0)
	return c.void("init_from_argv", intWord(len(argv)), a.Words(ptrs...))
}

// InitFromString replaces the contents with a command line string.
func (c *CommandLine) InitFromString(line string) error {
	var a ffi.Arena
	defer a.Free()
	return c.void("init_from_string", a.String(line))
}

func (c *CommandLine) Reset() error {
	return c.void("reset")
}

// String is the whole command line as one string.
func (c *CommandLine) String() (string, error) {
	return c.text("get_command_line_string")
}

func (c *CommandLine) Program() (string, error) {
	return c.text("get_program")
}

func (c *CommandLine) SetProgram(program string) error {
	var a ffi.Arena
	defer a.Free()
	return c.void("set_program", a.String(program))
}

func (c *CommandLine) HasSwitches() (bool, error) {
	return c.flag("has_switches")
}

func (c *CommandLine) HasSwitch(name string) (bool, error) {
	var a ffi.Arena
	defer a.Free()
	return c.flag("has_switch", a.String(name))
}

// SwitchValue is the value of a switch, empty when it has none.
func (c *CommandLine) SwitchValue(name string) (string, error) {
	var a ffi.Arena
	defer a.Free()
	return c.text("get_switch_value", a.String(name))
}

func (c *CommandLine) AppendSwitch(name string) error {
	var a ffi.Arena
	defer a.Free()
	return c.void("append_switch", a.String(name))
}

// AppendSwitchWithValue adds name=value, or a bare switch for an empty
// value.
func (c *CommandLine) AppendSwitchWithValue(name, value string) error {
	if value == "" {
		return c.AppendSwitch(name)
	}
	var a ffi.Arena
	defer a.Free()
	return c.void("append_switch_with_value", a.String(name), a.String(value))
}

func (c *CommandLine) HasArguments() (bool, error) {
	return c.flag("has_arguments")
}

func (c *CommandLine) AppendArgument(arg string) error {
	var a ffi.Arena
	defer a.Free()
	return c.void("append_argument", a.String(arg))
}

// PrependWrapper puts a wrapper program such as a debugger in front.
func (c *CommandLine) PrependWrapper(wrapper string) error {
	var a ffi.Arena
	defer a.Free()
	return c.void("prepend_wrapper", a.String(wrapper))
}
