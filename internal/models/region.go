package models

import "strings"

// Region pairs a human-readable name with the code sent to the trends provider.
type Region struct {
	Name string
	Code string
}

// Label is the text shown next to the region's checkbox.
func (r Region) Label() string {
	return r.Name + " (" + r.Code + ")"
}

// DefaultRegionCode is pre-checked when the form opens.
const DefaultRegionCode = "GR"

// regionCatalog lists the supported regions in display order.
var regionCatalog = []Region{
	{Name: "Greece", Code: "GR"},
	{Name: "Serbia", Code: "RS"},
	{Name: "Croatia", Code: "HR"},
	{Name: "Bulgaria", Code: "BG"},
	{Name: "North Macedonia", Code: "MK"},
	{Name: "Romania", Code: "RO"},
	{Name: "Czechia", Code: "CZ"},
	{Name: "Bosnia and Herzegovina", Code: "BA"},
	{Name: "Slovakia", Code: "SK"},
	{Name: "Slovenia", Code: "SI"},
}

// Regions returns a copy of the catalog in display order.
func Regions() []Region {
	out := make([]Region, len(regionCatalog))
	copy(out, regionCatalog)
	return out
}

// LookupRegion finds a catalog entry by code, case-insensitively.
func LookupRegion(code string) (Region, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, r := range regionCatalog {
		if r.Code == normalized {
			return r, true
		}
	}
	return Region{}, false
}

// DefaultRegionCodes returns the codes checked on a fresh form.
func DefaultRegionCodes() []string {
	return []string{DefaultRegionCode}
}
