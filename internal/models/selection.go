package models

import (
	"errors"
	"strings"
)

var (
	ErrNoRegions   = errors.New("no region selected")
	ErrNoOutputDir = errors.New("no export folder selected")
)

// Selection is the value the form hands to an export worker.
type Selection struct {
	Codes     []string
	OutputDir string
}

// NewSelection normalizes codes to upper case, drops blanks and duplicates,
// and keeps the caller's order.
func NewSelection(codes []string, outputDir string) Selection {
	seen := make(map[string]struct{}, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		c := strings.ToUpper(strings.TrimSpace(code))
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		normalized = append(normalized, c)
	}
	return Selection{Codes: normalized, OutputDir: strings.TrimSpace(outputDir)}
}

// Validate reports the first missing input.
func (s Selection) Validate() error {
	if len(s.Codes) == 0 {
		return ErrNoRegions
	}
	if s.OutputDir == "" {
		return ErrNoOutputDir
	}
	return nil
}
