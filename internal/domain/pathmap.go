package domain

import (
	"path/filepath"
	"strings"

	m "propgen.dev/pkg/propgen/internal/model"
)

const (
	// DefaultSourceExtension selects input files.
	DefaultSourceExtension = ".java"
	// DefaultTargetExtension replaces the source extension in output paths.
	DefaultTargetExtension = ".kt"
)

// ClassNameOf returns the file name without its extension.
func ClassNameOf(path m.Path) string {
	base := baseName(string(path))

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MirrorPath swaps the inputDir prefix of path for outputDir and replaces
// sourceExt with targetExt. It reports false when path is not under inputDir.
// Both '/' and '\' are treated as separators so the mapping is a pure function
// of its arguments regardless of the host platform.
func MirrorPath(path, inputDir, outputDir m.Path, sourceExt, targetExt string) (m.Path, bool) {
	in := withTrailingSeparator(string(inputDir))
	out := withTrailingSeparator(string(outputDir))

	rel, ok := strings.CutPrefix(string(path), in)
	if !ok || rel == "" {
		return "", false
	}

	rel = strings.TrimSuffix(rel, sourceExt) + targetExt

	return m.Path(out + rel), true
}

func withTrailingSeparator(dir string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`) {
		return dir
	}

	separator := string(filepath.Separator)
	if strings.Contains(dir, `\`) && !strings.Contains(dir, "/") {
		separator = `\`
	}

	return dir + separator
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}

	return path
}
