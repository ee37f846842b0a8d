package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const initialStatus = "Waiting for user action..."

// StatusBar shows the latest status line and an activity indicator.
// Its methods must be called on the UI thread.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	activity    *widget.ProgressBarInfinite
	busy        bool
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabelWithStyle(initialStatus, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	sb.statusLabel.Wrapping = fyne.TextWrapWord
	sb.statusLabel.Importance = widget.LowImportance

	sb.activity = widget.NewProgressBarInfinite()
	sb.activity.Stop()
	sb.activity.Hide()
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewVBox(
		sb.activity,
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetBusy shows or hides the activity indicator.
func (sb *StatusBar) SetBusy(busy bool) {
	sb.busy = busy
	if busy {
		sb.activity.Show()
		sb.activity.Start()
		return
	}
	sb.activity.Stop()
	sb.activity.Hide()
}

// IsBusy returns true while the activity indicator is shown.
func (sb *StatusBar) IsBusy() bool {
	return sb.busy
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.SetBusy(false)
	sb.statusLabel.SetText(initialStatus)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
