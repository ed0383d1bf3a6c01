package api

import (
	"fmt"

	"github.com/gocef/cef/internal/descriptor"
)

const bindingVersion = "0.3.0"

// BindingVersion returns the version of this library and the engine major
// version its tables follow, e.g. "0.3.0+cef126".
func BindingVersion() string {
	return fmt.Sprintf("%s+cef%d", bindingVersion, descriptor.ABIVersion)
}
