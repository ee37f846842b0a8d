package components

import (
	"trends-exporter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RegionSelector shows one checkbox per catalog region.
type RegionSelector struct {
	container *fyne.Container
	group     *widget.CheckGroup

	regions     []models.Region
	codeByLabel map[string]string
	labelByCode map[string]string
	defaults    []string
}

// NewRegionSelector builds the check group and checks defaults.
func NewRegionSelector(regions []models.Region, defaults []string) *RegionSelector {
	rs := &RegionSelector{
		regions:     regions,
		codeByLabel: make(map[string]string, len(regions)),
		labelByCode: make(map[string]string, len(regions)),
		defaults:    append([]string(nil), defaults...),
	}

	labels := make([]string, 0, len(regions))
	for _, r := range regions {
		label := r.Label()
		labels = append(labels, label)
		rs.codeByLabel[label] = r.Code
		rs.labelByCode[r.Code] = label
	}

	rs.group = widget.NewCheckGroup(labels, nil)
	rs.SetSelectedCodes(defaults)

	rs.container = container.NewVBox(
		widget.NewLabelWithStyle("Select Regions to Track:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rs.group,
	)
	return rs
}

// SelectedCodes returns the checked codes in catalog order.
func (rs *RegionSelector) SelectedCodes() []string {
	checked := make(map[string]bool, len(rs.group.Selected))
	for _, label := range rs.group.Selected {
		checked[label] = true
	}

	codes := make([]string, 0, len(checked))
	for _, r := range rs.regions {
		if checked[r.Label()] {
			codes = append(codes, r.Code)
		}
	}
	return codes
}

// SetSelectedCodes replaces the checked set; unknown codes are ignored.
func (rs *RegionSelector) SetSelectedCodes(codes []string) {
	labels := make([]string, 0, len(codes))
	for _, code := range codes {
		if r, ok := models.LookupRegion(code); ok {
			if label, known := rs.labelByCode[r.Code]; known {
				labels = append(labels, label)
			}
		}
	}
	rs.group.SetSelected(labels)
}

// Reset restores the default selection.
func (rs *RegionSelector) Reset() {
	rs.SetSelectedCodes(rs.defaults)
}

// GetContainer returns the selector container
func (rs *RegionSelector) GetContainer() *fyne.Container {
	return rs.container
}
