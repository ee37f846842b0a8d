package views

import (
	"reflect"
	"testing"

	"trends-exporter/internal/models"

	"fyne.io/fyne/v2/test"
)

func newTestView(t *testing.T, defaults []string, dir string) *MainView {
	t.Helper()
	app := test.NewTempApp(t)
	window := app.NewWindow("trends")
	t.Cleanup(window.Close)
	return NewMainView(window, models.Regions(), defaults, dir)
}

func TestDefaultSelection(t *testing.T) {
	view := newTestView(t, models.DefaultRegionCodes(), "")

	sel := view.CurrentSelection()
	if !reflect.DeepEqual(sel.Codes, []string{"GR"}) {
		t.Fatalf("codes = %v, want [GR]", sel.Codes)
	}
	if sel.OutputDir != "" {
		t.Fatalf("output dir = %q", sel.OutputDir)
	}
	if view.GetStatus() != "Waiting for user action..." {
		t.Errorf("status = %q", view.GetStatus())
	}
}

func TestFetchButtonPassesSelection(t *testing.T) {
	dir := t.TempDir()
	view := newTestView(t, []string{"RO", "GR"}, dir)

	var got []models.Selection
	view.SetSubmitHandler(func(sel models.Selection) {
		got = append(got, sel)
	})

	test.Tap(view.toolbar.FetchButton())

	if len(got) != 1 {
		t.Fatalf("expected one submission, got %d", len(got))
	}
	// Catalog order, not the order defaults were given in.
	if !reflect.DeepEqual(got[0].Codes, []string{"GR", "RO"}) {
		t.Errorf("codes = %v", got[0].Codes)
	}
	if got[0].OutputDir != dir {
		t.Errorf("output dir = %q, want %q", got[0].OutputDir, dir)
	}
}

func TestFetchButtonIgnoredWhileActive(t *testing.T) {
	view := newTestView(t, []string{"GR"}, t.TempDir())

	calls := 0
	view.SetSubmitHandler(func(models.Selection) { calls++ })

	view.toolbar.SetExportActive(true)
	test.Tap(view.toolbar.FetchButton())
	if calls != 0 {
		t.Fatalf("expected no submission while active, got %d", calls)
	}

	view.toolbar.SetExportActive(false)
	test.Tap(view.toolbar.FetchButton())
	if calls != 1 {
		t.Fatalf("expected one submission, got %d", calls)
	}
}

func TestRegionSelectorIgnoresUnknownCodes(t *testing.T) {
	view := newTestView(t, []string{"US", "hr"}, "")

	if got := view.regionSelector.SelectedCodes(); !reflect.DeepEqual(got, []string{"HR"}) {
		t.Fatalf("codes = %v, want [HR]", got)
	}

	view.regionSelector.SetSelectedCodes(nil)
	if got := view.regionSelector.SelectedCodes(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}

	view.regionSelector.Reset()
	if got := view.regionSelector.SelectedCodes(); !reflect.DeepEqual(got, []string{"HR"}) {
		t.Fatalf("after reset codes = %v", got)
	}
}
