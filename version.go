package cef

import (
	"github.com/gocef/cef/internal/api"
	"github.com/gocef/cef/internal/descriptor"
)

// ABIVersion is the engine major version the interface layouts match.
const ABIVersion = descriptor.ABIVersion

// Version returns the binding version, suffixed with ABIVersion.
func Version() string {
	return api.BindingVersion()
}
