package types

import (
	"errors"
	"fmt"
)

var (
	_ error = VersionMismatch{}
	_ error = UnknownInterface{}
	_ error = NullPointer{}
	_ error = WrongThread{}
	_ error = ForeignStatus{}
	_ error = UseAfterRelease{}
	_ error = LifecycleError{}
	_ error = Exit{}
)

// VersionMismatch is returned when the ABI version compiled into a descriptor
// disagrees with the version reported by the loaded engine, or with an earlier
// registration of the same interface. It is a defect: the binding cannot talk
// to a library whose tables it does not know the layout of.
type VersionMismatch struct {
	Interface string
	Compiled  int
	Runtime   int
}

func (e VersionMismatch) Error() string {
	return fmt.Sprintf("abi version mismatch for %s: compiled %d, runtime %d", e.Interface, e.Compiled, e.Runtime)
}

// UnknownInterface is returned when a family was never registered.
type UnknownInterface struct {
	Name string
}

func (e UnknownInterface) Error() string {
	return fmt.Sprintf("unknown interface: %s", e.Name)
}

// NullPointer is returned when a foreign call that should produce a table
// returned none. No handle is created.
type NullPointer struct {
	Op string
}

func (e NullPointer) Error() string {
	return fmt.Sprintf("null pointer returned by %s", e.Op)
}

// WrongThread is returned when an operation is attempted from a thread other
// than the one the engine requires. The foreign library is not called; the
// caller has to re-dispatch the operation itself.
type WrongThread struct {
	Op   string
	Want AffinityTag
}

func (e WrongThread) Error() string {
	return fmt.Sprintf("%s must run on the %s thread", e.Op, e.Want)
}

// ForeignStatus carries a failure code reported by the engine itself.
type ForeignStatus struct {
	Op   string
	Code int
}

func (e ForeignStatus) Error() string {
	return fmt.Sprintf("%s failed with engine status %d", e.Op, e.Code)
}

// UseAfterRelease reports an access to a table whose last reference was
// already dropped. It is a binding defect, never a runtime condition.
type UseAfterRelease struct {
	Interface string
	Op        string
}

func (e UseAfterRelease) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("use of released %s", e.Interface)
	}
	return fmt.Sprintf("use of released %s in %s", e.Interface, e.Op)
}

// LifecycleError is returned when an operation is not permitted in the
// current state of the application lifecycle.
type LifecycleError struct {
	Op    string
	State LifecycleState
}

func (e LifecycleError) Error() string {
	return fmt.Sprintf("%s not allowed while %s", e.Op, e.State)
}

// Exit is returned by ExecuteProcess when the current process was a
// sub-process that ran to completion and should exit with Code.
type Exit struct {
	Code int
}

func (e Exit) Error() string {
	return fmt.Sprintf("process exit: %d", e.Code)
}

// IsDefect reports whether err marks a binding invariant violation that must
// terminate the component instead of being handled at the call site.
func IsDefect(err error) bool {
	if err == nil {
		return false
	}
	var vm VersionMismatch
	if errors.As(err, &vm) {
		return true
	}
	var uar UseAfterRelease
	return errors.As(err, &uar)
}
