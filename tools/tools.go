//go:build tools

package tools

// Pins the oapi-codegen version internal/api is generated with
// and the goose CLI used to author migrations.

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
