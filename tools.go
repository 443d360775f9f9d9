//go:build tools
// +build tools

package tools

// This file ensures tool dependencies are tracked in go.mod.
// Tools are not imported by application code; they are used during
// development and deployment.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
