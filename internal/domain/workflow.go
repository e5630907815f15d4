package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"propgen.dev/pkg/propgen/internal/adapter"
	"propgen.dev/pkg/propgen/internal/controller"
	m "propgen.dev/pkg/propgen/internal/model"
)

const filePerm = 0o644

var (
	// ErrMissingArgument is returned when a required argument is empty.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrInputNotDirectory is returned when the input path is absent or not a directory.
	ErrInputNotDirectory = errors.New("input directory does not exist or is not a directory")
	// ErrOutsideInput is returned when a walked file cannot be mapped below the input directory.
	ErrOutsideInput = errors.New("path is outside the input directory")
)

// SourceArgs selects the source files to scan.
type SourceArgs struct {
	Input           m.Path
	Exclude         []string
	SourceExtension string
	Extraction      ExtractorConfig
}

// GenerateArgs contains the arguments for generating property classes.
type GenerateArgs struct {
	SourceArgs
	Output          m.Path
	Package         string
	TargetExtension string
	Template        TemplateConfig
}

// ListArgs contains the arguments for listing detected classes.
type ListArgs struct {
	SourceArgs
	Format controller.ListFormat
}

// Workflow defines the generation use cases.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, ui controller.UI) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
	}
}

// Generate walks the input tree and writes one property class per source unit
// that exposes accessors. Existing outputs are never overwritten. A failing
// unit does not stop the run; all unit failures are joined into the result.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	if args.Output == "" {
		return fmt.Errorf("%w: output directory", ErrMissingArgument)
	}

	if strings.TrimSpace(args.Package) == "" {
		return fmt.Errorf("%w: package name", ErrMissingArgument)
	}

	extractor, err := NewExtractor(args.Extraction)
	if err != nil {
		return err
	}

	input, err := w.resolveInput(args.Input)
	if err != nil {
		return err
	}

	output, err := filepath.Abs(string(args.Output))
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}

	if err := w.MkdirAll(m.Path(output)); err != nil {
		slog.Error("Failed to create output directory", "path", output, "error", err)
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer := NewRenderer(args.Template)
	targetExt := defaultString(args.TargetExtension, DefaultTargetExtension)

	var (
		summary m.Summary
		errs    []error
	)

	err = w.eachSource(ctx, input, args.SourceArgs, func(path m.Path) error {
		report := w.generateUnit(unitJob{
			path:      path,
			input:     input,
			output:    m.Path(output),
			sourceExt: defaultString(args.SourceExtension, DefaultSourceExtension),
			targetExt: targetExt,
			pkg:       args.Package,
			extractor: extractor,
			renderer:  renderer,
		})

		summary.Add(report)
		w.DisplayReport(ctx, report)

		if report.Outcome == m.Failed {
			errs = append(errs, report.Err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Generation finished",
		"written", summary.Written,
		"skipped_existing", summary.SkippedExisting,
		"skipped_no_accessors", summary.SkippedNoAccessors,
		"failed", summary.Failed,
	)
	w.DisplaySummary(ctx, summary)

	return errors.Join(errs...)
}

type unitJob struct {
	path      m.Path
	input     m.Path
	output    m.Path
	sourceExt string
	targetExt string
	pkg       string
	extractor Extractor
	renderer  Renderer
}

func (w *workflow) generateUnit(job unitJob) m.Report {
	className := ClassNameOf(job.path)
	report := m.Report{Source: job.path, ClassName: className}

	fail := func(err error) m.Report {
		slog.Error("Failed to generate property class", "path", job.path, "error", err)

		report.Outcome = m.Failed
		report.Err = err

		return report
	}

	content, err := w.ReadFile(job.path)
	if err != nil {
		return fail(fmt.Errorf("read %s: %w", job.path, err))
	}

	spec := job.extractor.Extract(m.SourceUnit{Path: job.path, ClassName: className, Content: content})
	report.Accessors = len(spec.Accessors)
	report.Mutators = spec.Mutators.Len()

	if !spec.HasAccessors() {
		slog.Debug("No accessors found", "path", job.path, "class", className)

		report.Outcome = m.SkippedNoAccessors

		return report
	}

	target, ok := MirrorPath(job.path, job.input, job.output, job.sourceExt, job.targetExt)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrOutsideInput, job.path))
	}

	report.Target = target

	exists, err := w.Exists(target)
	if err != nil {
		return fail(fmt.Errorf("stat %s: %w", target, err))
	}

	if exists {
		slog.Debug("Output already exists", "path", target)

		report.Outcome = m.SkippedExisting

		return report
	}

	rendered, err := job.renderer.Render(job.pkg, spec)
	if err != nil {
		return fail(err)
	}

	if err := w.MkdirAll(m.Path(filepath.Dir(string(target)))); err != nil {
		return fail(fmt.Errorf("create directory for %s: %w", target, err))
	}

	if err := w.CreateFile(target, rendered, filePerm); err != nil {
		if errors.Is(err, os.ErrExist) {
			report.Outcome = m.SkippedExisting
			return report
		}

		return fail(fmt.Errorf("write %s: %w", target, err))
	}

	slog.Debug("Generated property class", "path", target, "class", className,
		"accessors", report.Accessors, "mutators", report.Mutators)

	report.Outcome = m.Written

	return report
}

// List extracts every source unit and displays the classes that would be generated.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	extractor, err := NewExtractor(args.Extraction)
	if err != nil {
		return err
	}

	input, err := w.resolveInput(args.Input)
	if err != nil {
		return err
	}

	var listings []m.Listing

	err = w.eachSource(ctx, input, args.SourceArgs, func(path m.Path) error {
		content, err := w.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		spec := extractor.Extract(m.SourceUnit{Path: path, ClassName: ClassNameOf(path), Content: content})
		if !spec.HasAccessors() {
			return nil
		}

		rel, err := w.RelPath(input, path)
		if err != nil {
			rel = path
		}

		listings = append(listings, m.Listing{
			Source:    m.Path(filepath.ToSlash(string(rel))),
			ClassName: spec.ClassName,
			Accessors: spec.AccessorNames(),
			Mutators:  describeMutators(spec),
		})

		return nil
	})
	if err != nil {
		return err
	}

	return w.DisplayListing(ctx, listings, args.Format)
}

func describeMutators(spec m.ClassSpec) []string {
	entries := spec.Mutators.Entries()
	if len(entries) == 0 {
		return nil
	}

	out := make([]string, 0, len(entries))
	for _, mutator := range entries {
		out = append(out, fmt.Sprintf("%s:%s", mutator.Name, mutator.Type))
	}

	return out
}

func (w *workflow) resolveInput(input m.Path) (m.Path, error) {
	if input == "" {
		return "", fmt.Errorf("%w: input directory", ErrMissingArgument)
	}

	abs, err := filepath.Abs(string(input))
	if err != nil {
		return "", fmt.Errorf("resolve input directory: %w", err)
	}

	info, err := w.FileInfo(m.Path(abs))
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInputNotDirectory, input)
	}

	return m.Path(abs), nil
}

// eachSource calls fn for every regular file under input with the source
// extension that is not excluded, one at a time in walk order.
func (w *workflow) eachSource(ctx context.Context, input m.Path, args SourceArgs, fn func(path m.Path) error) error {
	sourceExt := defaultString(args.SourceExtension, DefaultSourceExtension)

	for _, pattern := range args.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return w.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() || filepath.Ext(path) != sourceExt {
			return nil
		}

		if w.excluded(input, m.Path(path), args.Exclude) {
			slog.Debug("Excluded source", "path", path)
			return nil
		}

		return fn(m.Path(path))
	})
}

func (w *workflow) excluded(input, path m.Path, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := w.RelPath(input, path)
	if err != nil {
		return false
	}

	slashed := filepath.ToSlash(string(rel))
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}

	return false
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
