package domain

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// FileBacking reads a WAV file fresh from disk on every WriteSample
// call, per spec §3.1's "scoped acquisition, released on every exit
// path" resource rule.
type FileBacking struct {
	Path string
}

// WriteSample streams the file's bytes verbatim.
func (b FileBacking) WriteSample(out interface{ Write([]byte) (int, error) }) error {
	f, err := os.Open(b.Path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, b.Path)
	}
	defer f.Close()
	if _, err := io.Copy(out.(io.Writer), f); err != nil {
		return fmt.Errorf("sampledata: copy %s: %w", b.Path, err)
	}
	return nil
}

// ZipBacking reads a sample from a named entry inside a ZIP archive.
// Only the archive path and entry name are retained; each WriteSample
// opens a fresh zip.ReadCloser so no file handle is held across calls.
type ZipBacking struct {
	ArchivePath string
	EntryName   string
}

// WriteSample opens the archive, locates the entry, and streams it.
func (b ZipBacking) WriteSample(out interface{ Write([]byte) (int, error) }) error {
	zr, err := zip.OpenReader(b.ArchivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, b.ArchivePath, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == b.EntryName {
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("%w: open entry %s: %v", ErrIO, b.EntryName, err)
			}
			defer rc.Close()
			if _, err := io.Copy(out.(io.Writer), rc); err != nil {
				return fmt.Errorf("sampledata: copy zip entry %s: %w", b.EntryName, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s in %s", ErrFileNotFound, b.EntryName, b.ArchivePath)
}

// MemoryBacking holds already-decoded WAV bytes in memory, used by
// detectors that synthesize sample data (e.g. split-stereo combination).
type MemoryBacking struct {
	Data []byte
}

// WriteSample writes the in-memory buffer verbatim.
func (b MemoryBacking) WriteSample(out interface{ Write([]byte) (int, error) }) error {
	_, err := out.Write(b.Data)
	return err
}
