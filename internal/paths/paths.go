// Package paths handles input discovery and output path resolution for
// batch runs: filtering recordings by extension, expanding the output
// naming scheme, and resolving collisions with existing files.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultExtension is the recording container the trimmer targets.
const DefaultExtension = ".m4a"

// ErrOutputExists is returned by ResolveOutput under ConflictFail when the
// resolved output path is already taken.
var ErrOutputExists = errors.New("output file already exists")

// ConflictPolicy decides what happens when a resolved output path already
// exists on disk.
type ConflictPolicy string

const (
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictFail aborts with ErrOutputExists.
	ConflictFail ConflictPolicy = "fail"
	// ConflictRename probes name_1, name_2, ... until a free slot is found.
	ConflictRename ConflictPolicy = "rename"
)

// ParseConflictPolicy validates a policy name from the CLI.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case ConflictOverwrite, ConflictFail, ConflictRename:
		return p, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q (want overwrite, fail or rename)", s)
	}
}

// ListInputs returns the recordings under root with extension ext, sorted
// lexically. When root itself is a matching file, it is the sole result.
// With recursive set, subdirectories are walked; otherwise only direct
// children are considered.
func ListInputs(root string, ext string, recursive bool) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("paths: stat %q: %w", root, err)
	}

	// An explicitly named file is always accepted; the extension filter
	// only applies to directory listings.
	if !info.IsDir() {
		return []string{root}, nil
	}

	var inputs []string

	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && matchesExt(path, ext) {
				inputs = append(inputs, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("paths: walk %q: %w", root, err)
		}
	} else {
		entries, readErr := os.ReadDir(root)
		if readErr != nil {
			return nil, fmt.Errorf("paths: read dir %q: %w", root, readErr)
		}

		for _, entry := range entries {
			if !entry.IsDir() && matchesExt(entry.Name(), ext) {
				inputs = append(inputs, filepath.Join(root, entry.Name()))
			}
		}
	}

	slices.Sort(inputs)

	return inputs, nil
}

func matchesExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// EnsureWritableDir creates dir if missing and verifies it is a directory.
func EnsureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("paths: create output dir %q: %w", dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("paths: stat output dir %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("paths: output path %q is not a directory", dir)
	}

	return nil
}

// Scheme placeholders accepted by ResolveOutput.
const (
	TokenOriginal  = "{ORIGINAL}"
	TokenTimestamp = "{TIMESTAMP}"
	TokenUnix      = "{UNIX}"
)

// ValidateScheme checks that a naming scheme contains at least one
// placeholder, so distinct inputs cannot all collapse onto one output name.
func ValidateScheme(scheme string) error {
	if scheme == "" {
		return errors.New("naming scheme must not be empty")
	}

	if !strings.Contains(scheme, TokenOriginal) &&
		!strings.Contains(scheme, TokenTimestamp) &&
		!strings.Contains(scheme, TokenUnix) {
		return fmt.Errorf("naming scheme %q contains no placeholder ({ORIGINAL}, {TIMESTAMP} or {UNIX})", scheme)
	}

	return nil
}

// ResolveOutput expands the naming scheme for inputPath into a full output
// path under outDir and applies the conflict policy against files already
// on disk. The returned path carries the input's extension.
func ResolveOutput(inputPath, outDir, scheme string, policy ConflictPolicy, now time.Time) (string, error) {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := scheme
	name = strings.ReplaceAll(name, TokenOriginal, stem)
	name = strings.ReplaceAll(name, TokenTimestamp, now.Format("20060102-150405"))
	name = strings.ReplaceAll(name, TokenUnix, strconv.FormatInt(now.Unix(), 10))

	candidate := filepath.Join(outDir, name+ext)

	if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
		return candidate, nil
	}

	switch policy {
	case ConflictOverwrite:
		return candidate, nil
	case ConflictFail:
		return "", fmt.Errorf("%w: %s", ErrOutputExists, candidate)
	case ConflictRename:
	default:
		return "", fmt.Errorf("unknown conflict policy %q", policy)
	}

	for n := 1; ; n++ {
		probe := filepath.Join(outDir, name+"_"+strconv.Itoa(n)+ext)
		if _, err := os.Stat(probe); errors.Is(err, fs.ErrNotExist) {
			return probe, nil
		}
	}
}
