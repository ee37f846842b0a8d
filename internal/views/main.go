package views

import (
	"fmt"

	"trends-exporter/internal/models"
	"trends-exporter/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainView is the exporter form: regions, export folder, actions and status.
type MainView struct {
	// UI Components
	window         fyne.Window
	mainContainer  *fyne.Container
	regionSelector *components.RegionSelector
	folderPicker   *components.FolderPicker
	toolbar        *components.Toolbar
	statusBar      *components.StatusBar

	// Event handlers - connected to controller
	submitHandler func(models.Selection)
}

// NewMainView builds the form. defaultCodes are pre-checked and outputDir
// prefills the folder entry.
func NewMainView(window fyne.Window, regions []models.Region, defaultCodes []string, outputDir string) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents(regions, defaultCodes, outputDir)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents(regions []models.Region, defaultCodes []string, outputDir string) {
	mv.regionSelector = components.NewRegionSelector(regions, defaultCodes)
	mv.folderPicker = components.NewFolderPicker(mv.window, outputDir)
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	form := container.NewVBox(
		mv.regionSelector.GetContainer(),
		widget.NewSeparator(),
		mv.folderPicker.GetContainer(),
		widget.NewSeparator(),
		mv.toolbar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		container.NewPadded(mv.statusBar.GetContainer()),
		nil,
		nil,
		container.NewVScroll(container.NewPadded(form)),
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetFetchHandler(func() {
		if mv.submitHandler != nil {
			mv.submitHandler(mv.CurrentSelection())
		}
	})

	mv.toolbar.SetResetHandler(func() {
		mv.regionSelector.Reset()
		mv.statusBar.Reset()
	})

	mv.folderPicker.SetErrorHandler(func(err error) {
		mv.ShowError("Folder Selection", err)
	})
}

// CurrentSelection snapshots the form into a plain value.
func (mv *MainView) CurrentSelection() models.Selection {
	return models.NewSelection(mv.regionSelector.SelectedCodes(), mv.folderPicker.Path())
}

// SetSubmitHandler sets the handler for fetch requests
func (mv *MainView) SetSubmitHandler(handler func(models.Selection)) {
	mv.submitHandler = handler
}

// UpdateStatus updates the status line
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// SetExportActive updates UI state for a running export
func (mv *MainView) SetExportActive(active bool) {
	fyne.Do(func() {
		mv.toolbar.SetExportActive(active)
		mv.folderPicker.SetEnabled(!active)
		mv.statusBar.SetBusy(active)
	})
}

// ShowWarning displays a validation or busy notice
func (mv *MainView) ShowWarning(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// GetStatus returns the current status line
func (mv *MainView) GetStatus() string {
	return mv.statusBar.GetStatus()
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}
