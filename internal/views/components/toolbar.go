package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the form's action buttons.
type Toolbar struct {
	container   *fyne.Container
	fetchButton *widget.Button
	resetButton *widget.Button

	// Event handlers
	fetchHandler func()
	resetHandler func()

	exportActive bool
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.fetchButton = widget.NewButtonWithIcon("Fetch & Export Trends", theme.DownloadIcon(), func() {
		if t.fetchHandler != nil && !t.exportActive {
			t.fetchHandler()
		}
	})
	t.fetchButton.Importance = widget.HighImportance

	t.resetButton = widget.NewButtonWithIcon("Reset", theme.ContentUndoIcon(), func() {
		if t.resetHandler != nil {
			t.resetHandler()
		}
	})
	t.resetButton.Importance = widget.LowImportance
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		layout.NewSpacer(),
		t.resetButton,
		t.fetchButton,
		layout.NewSpacer(),
	)
}

// SetFetchHandler sets the handler for the fetch button
func (t *Toolbar) SetFetchHandler(handler func()) {
	t.fetchHandler = handler
}

// SetResetHandler sets the handler for the reset button
func (t *Toolbar) SetResetHandler(handler func()) {
	t.resetHandler = handler
}

// SetExportActive disables the buttons while an export runs.
// Must be called on the UI thread.
func (t *Toolbar) SetExportActive(active bool) {
	t.exportActive = active
	if active {
		t.fetchButton.Disable()
		t.resetButton.Disable()
		return
	}
	t.fetchButton.Enable()
	t.resetButton.Enable()
}

// IsExportActive reports the last state passed to SetExportActive.
func (t *Toolbar) IsExportActive() bool {
	return t.exportActive
}

// FetchButton exposes the fetch button for keyboard shortcuts and tests.
func (t *Toolbar) FetchButton() *widget.Button {
	return t.fetchButton
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
