package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "propgen.dev/pkg/propgen/internal/model"
)

// SimpleUI implements UI on top of the cobra command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

type palette struct {
	written lipgloss.Style
	skipped lipgloss.Style
	failed  lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	return palette{
		written: r.NewStyle().Foreground(lipgloss.Color("2")),
		skipped: r.NewStyle().Faint(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// DisplayReport prints one line per unit that touched, or tried to touch, an output file.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	styles := newPalette(s.out())
	name := filepath.Base(string(report.Target))

	switch report.Outcome {
	case m.Written:
		s.printf("%s\n", styles.written.Render(fmt.Sprintf("Processing %s ...", name)))
	case m.SkippedExisting:
		s.printf("%s\n", styles.skipped.Render(fmt.Sprintf("Skipping %s (already exists)", name)))
	case m.Failed:
		s.printf("%s\n", styles.failed.Render(fmt.Sprintf("Failed %s: %v", report.Source, report.Err)))
	case m.SkippedNoAccessors:
		// nothing to show
	}
}

// DisplaySummary prints the per-outcome counts.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Outcome", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	rows := []struct {
		outcome m.Outcome
		count   int
	}{
		{m.Written, summary.Written},
		{m.SkippedExisting, summary.SkippedExisting},
		{m.SkippedNoAccessors, summary.SkippedNoAccessors},
		{m.Failed, summary.Failed},
	}

	for _, row := range rows {
		table.Append([]string{row.outcome.String(), fmt.Sprintf("%d", row.count)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})
	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

// DisplayListing prints detected classes without generating anything.
func (s *SimpleUI) DisplayListing(ctx context.Context, listings []m.Listing, format ListFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		if listings == nil {
			listings = []m.Listing{}
		}

		out, err := yaml.Marshal(listings)
		if err != nil {
			return fmt.Errorf("marshal listing: %w", err)
		}

		s.printf("%s", out)

		return nil
	case FormatTable, "":
		s.printf("\n%s", renderListingTable(listings))

		return nil
	default:
		return fmt.Errorf("unsupported list format %q", format)
	}
}

func renderListingTable(listings []m.Listing) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "Read", "Write", "Properties"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	accessors := 0
	mutators := 0

	for _, listing := range listings {
		table.Append([]string{
			listing.ClassName,
			fmt.Sprintf("%d", len(listing.Accessors)),
			fmt.Sprintf("%d", len(listing.Mutators)),
			strings.Join(listing.Accessors, ", "),
		})

		accessors += len(listing.Accessors)
		mutators += len(listing.Mutators)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Classes %d", len(listings)),
		fmt.Sprintf("%d", accessors),
		fmt.Sprintf("%d", mutators),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) out() io.Writer {
	return s.cmd.OutOrStdout()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out(), format, args...)
}
