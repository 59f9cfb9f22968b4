package dataset

import (
	"path/filepath"
	"strings"
)

// replaceableExts are the input extensions swapped out for the output suffix.
var replaceableExts = []string{".csv", ".xlsx", ".tsv", ".txt"}

// DerivePath builds the output path for input by replacing its trailing
// extension with suffix (e.g. "_cleaned.csv"). Inputs with any other
// extension keep their name and get the suffix appended. A non-empty dir
// relocates the output; otherwise it sits next to the input.
func DerivePath(input, suffix, dir string) string {
	stem := input
	ext := filepath.Ext(input)
	for _, known := range replaceableExts {
		if strings.EqualFold(ext, known) {
			stem = strings.TrimSuffix(input, ext)
			break
		}
	}
	out := stem + suffix
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}
