// Rename table parsing (spec §6's "Rename CSV"): two-column old,new
// CSV, blank lines and #-comments ignored, duplicate sources take the
// last assignment. Grounded on stdlib encoding/csv — no ecosystem CSV
// library appears anywhere in the retrieval pack, and the format is a
// plain two-field table with no quoting complexity that would justify
// one.
package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// RenameTable maps a detected source name to its replacement.
type RenameTable map[string]string

// LoadRenameTable reads a two-column CSV rename table from path.
func LoadRenameTable(path string) (RenameTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open rename table: %w", err)
	}
	defer f.Close()
	return parseRenameTable(f)
}

func parseRenameTable(r io.Reader) (RenameTable, error) {
	table := RenameTable{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil || len(rec) != 2 {
			return nil, fmt.Errorf("pipeline: malformed rename table line %q", line)
		}
		table[strings.TrimSpace(rec[0])] = strings.TrimSpace(rec[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: reading rename table: %w", err)
	}
	return table, nil
}

// Apply looks up name, reporting whether a mapping existed.
func (t RenameTable) Apply(name string) (renamed string, found bool) {
	if t == nil {
		return name, false
	}
	v, ok := t[name]
	if !ok {
		return name, false
	}
	return v, true
}
