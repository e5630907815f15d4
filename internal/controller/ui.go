// Package controller provides output adapters for displaying generation results.
package controller

import (
	"context"
	"fmt"
	"strings"

	m "propgen.dev/pkg/propgen/internal/model"
)

// ListFormat selects how detected classes are printed.
type ListFormat string

// Available ListFormat values.
const (
	FormatTable ListFormat = "table"
	FormatYAML  ListFormat = "yaml"
)

// ParseListFormat validates a user supplied format name.
func ParseListFormat(value string) (ListFormat, error) {
	switch ListFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported list format %q (want %s or %s)", value, FormatTable, FormatYAML)
	}
}

// UI defines how the workflow reports progress.
// Implementations can use different output methods.
type UI interface {
	DisplayReport(ctx context.Context, report m.Report)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayListing(ctx context.Context, listings []m.Listing, format ListFormat) error
}
