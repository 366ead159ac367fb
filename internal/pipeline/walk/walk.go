// Package walk is the shared recursive-folder-walk helper every format
// detector uses: spec §4.6 requires each detector to "recursively walk
// the folder; for each file matching the plugin's endings
// (case-insensitive)... checking the cancellation flag between files".
package walk

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
)

// Files walks root, invoking visit(path) for every regular file whose
// name ends with suffix (case-insensitive). The walk stops promptly,
// returning domain.ErrCancelled, the moment isCancelled reports true.
// A visit error is returned immediately (detectors may also choose to
// swallow per-file errors themselves and return nil to keep walking,
// per spec §4.6's "malformed files are logged and skipped").
func Files(root, suffix string, isCancelled func() bool, visit func(path string) error) error {
	suffix = strings.ToLower(suffix)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isCancelled() {
			return domain.ErrCancelled
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			return nil
		}
		return visit(path)
	})
}
