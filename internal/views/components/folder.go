package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// FolderPicker is an entry plus a Browse button opening a folder dialog.
type FolderPicker struct {
	container    *fyne.Container
	entry        *widget.Entry
	browseButton *widget.Button
	window       fyne.Window

	errorHandler func(error)
}

// NewFolderPicker creates a folder picker prefilled with initial.
func NewFolderPicker(window fyne.Window, initial string) *FolderPicker {
	fp := &FolderPicker{window: window}

	fp.entry = widget.NewEntry()
	fp.entry.SetPlaceHolder("Choose a folder for the CSV file")
	fp.entry.SetText(initial)

	fp.browseButton = widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), fp.browse)

	fp.container = container.NewVBox(
		widget.NewLabelWithStyle("Export Folder:", fyne.TextAlignLeading, fyne.TextStyle{}),
		container.NewBorder(nil, nil, nil, fp.browseButton, fp.entry),
	)
	return fp
}

func (fp *FolderPicker) browse() {
	folderDialog := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			if fp.errorHandler != nil {
				fp.errorHandler(err)
			}
			return
		}
		if uri == nil {
			return
		}
		fp.entry.SetText(uri.Path())
	}, fp.window)

	if current := fp.Path(); current != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(current)); err == nil {
			folderDialog.SetLocation(lister)
		}
	}
	folderDialog.Show()
}

// SetErrorHandler receives errors from the folder dialog.
func (fp *FolderPicker) SetErrorHandler(handler func(error)) {
	fp.errorHandler = handler
}

// Path returns the trimmed folder path.
func (fp *FolderPicker) Path() string {
	return strings.TrimSpace(fp.entry.Text)
}

// SetPath replaces the folder path.
func (fp *FolderPicker) SetPath(path string) {
	fp.entry.SetText(path)
}

// SetEnabled toggles the entry and the Browse button.
func (fp *FolderPicker) SetEnabled(enabled bool) {
	if enabled {
		fp.entry.Enable()
		fp.browseButton.Enable()
		return
	}
	fp.entry.Disable()
	fp.browseButton.Disable()
}

// GetContainer returns the picker container
func (fp *FolderPicker) GetContainer() *fyne.Container {
	return fp.container
}
