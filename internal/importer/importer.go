// Package importer copies candidate files from another directory into the
// candidates directory, applying exclude filtering and MD5-based conflict
// resolution.
package importer

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamusis/scout-cli/internal/candidate"
)

// ConflictPair records a conflict found during import.
type ConflictPair struct {
	Original string // path of the file already in the candidates directory
	Conflict string // path where the incoming conflicting version was stored
	Label    string // import label used in the conflict file name
}

// Result is returned by ImportDir.
type Result struct {
	Conflicts []ConflictPair
	Imported  int // files copied (including conflict copies)
	Skipped   int // identical duplicates skipped
	Ignored   int // excluded or non-candidate files
	Invalid   []InvalidFile
}

// InvalidFile is a candidate file that failed to parse or validate and was
// not copied.
type InvalidFile = candidate.InvalidFile

// ImportDir copies candidate files from srcDir into dstDir. Files matching
// excludes, files that are not candidate files, and files that do not load
// are left behind. label is used to build conflict file names.
func ImportDir(srcDir, dstDir, label string, excludes []string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(srcDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		if matchesExclude(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			result.Ignored++
			return nil
		}

		dst := filepath.Join(dstDir, rel)

		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		if !candidate.IsCandidateFile(d.Name()) {
			result.Ignored++
			return nil
		}
		if _, err := candidate.LoadFile(path); err != nil {
			result.Invalid = append(result.Invalid, InvalidFile{Path: path, Err: err})
			return nil
		}

		if _, err := os.Stat(dst); err == nil {
			srcMD5, err := fileMD5(path)
			if err != nil {
				return fmt.Errorf("md5 %s: %w", path, err)
			}
			dstMD5, err := fileMD5(dst)
			if err != nil {
				return fmt.Errorf("md5 %s: %w", dst, err)
			}
			if srcMD5 == dstMD5 {
				result.Skipped++
				return nil
			}
			conflictDst := conflictPath(dst, label)
			if err := copyFile(path, conflictDst); err != nil {
				return fmt.Errorf("conflict copy %s → %s: %w", path, conflictDst, err)
			}
			result.Conflicts = append(result.Conflicts, ConflictPair{
				Original: dst,
				Conflict: conflictDst,
				Label:    label,
			})
			result.Imported++
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, dst); err != nil {
			return fmt.Errorf("copy %s → %s: %w", path, dst, err)
		}
		result.Imported++
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// conflictPath builds the conflict filename for an incoming file by inserting
// .conflict-<label> before the final extension.
//
//	jane_doe.md        → jane_doe.conflict-ats.md
//	team.backend.yaml  → team.backend.conflict-ats.yaml
func conflictPath(original, label string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return base + ".conflict-" + label + ext
}

// matchesExclude reports whether relPath matches any of the given glob patterns,
// either as a whole or by basename.
func matchesExclude(relPath string, patterns []string) bool {
	name := filepath.Base(relPath)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// copyFile copies src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
