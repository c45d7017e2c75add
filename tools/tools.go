//go:build tools

// Package tools pins the linter used on this module:
//
//	cd tools && go run github.com/golangci/golangci-lint/cmd/golangci-lint run ../...
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
