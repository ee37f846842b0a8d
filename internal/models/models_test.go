package models

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestRegionsCatalog(t *testing.T) {
	regions := Regions()
	if len(regions) != 10 {
		t.Fatalf("expected 10 regions, got %d", len(regions))
	}
	if regions[0].Code != DefaultRegionCode {
		t.Errorf("expected %s first, got %s", DefaultRegionCode, regions[0].Code)
	}

	seen := make(map[string]bool)
	for _, r := range regions {
		if seen[r.Code] {
			t.Errorf("duplicate code %s", r.Code)
		}
		seen[r.Code] = true
	}

	regions[0].Code = "XX"
	if Regions()[0].Code != DefaultRegionCode {
		t.Error("Regions must return a copy")
	}
}

func TestLookupRegion(t *testing.T) {
	r, ok := LookupRegion(" ro ")
	if !ok || r.Name != "Romania" {
		t.Fatalf("LookupRegion(ro) = %+v, %v", r, ok)
	}
	if r.Label() != "Romania (RO)" {
		t.Errorf("unexpected label %q", r.Label())
	}
	if _, ok := LookupRegion("US"); ok {
		t.Error("US is not in the catalog")
	}
}

func TestSelectionValidate(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want error
	}{
		{"no regions", NewSelection(nil, "/tmp"), ErrNoRegions},
		{"blank regions", NewSelection([]string{" ", ""}, "/tmp"), ErrNoRegions},
		{"no folder", NewSelection([]string{"GR"}, "  "), ErrNoOutputDir},
		{"ok", NewSelection([]string{"GR"}, "/tmp"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sel.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewSelectionNormalizes(t *testing.T) {
	sel := NewSelection([]string{"gr", "RO", "GR", " hr "}, " /out ")
	if !reflect.DeepEqual(sel.Codes, []string{"GR", "RO", "HR"}) {
		t.Errorf("codes = %v", sel.Codes)
	}
	if sel.OutputDir != "/out" {
		t.Errorf("output dir = %q", sel.OutputDir)
	}
}

func TestTrendTablePadsRaggedColumns(t *testing.T) {
	table := NewTrendTable()
	table.AddColumn("GR", []string{"a", "b", "c"})
	table.AddColumn("RO", []string{"x"})

	if got := table.Header(); !reflect.DeepEqual(got, []string{"Trending in GR", "Trending in RO"}) {
		t.Errorf("header = %v", got)
	}
	if table.RowCount() != 3 {
		t.Fatalf("RowCount = %d", table.RowCount())
	}

	want := [][]string{
		{"a", "x"},
		{"b", PadValue},
		{"c", PadValue},
	}
	if got := table.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestTrendTableEmpty(t *testing.T) {
	table := NewTrendTable()
	if !table.Empty() || table.RowCount() != 0 || len(table.Rows()) != 0 {
		t.Fatal("new table should be empty")
	}
}

func TestExportStateSingleFlight(t *testing.T) {
	repo := NewExportStateRepository()

	if !repo.TryStart([]string{"GR"}) {
		t.Fatal("first TryStart should succeed")
	}
	if repo.TryStart([]string{"RO"}) {
		t.Fatal("second TryStart should be rejected while active")
	}
	if got := repo.GetState().Codes; !reflect.DeepEqual(got, []string{"GR"}) {
		t.Errorf("codes = %v", got)
	}

	repo.Complete("/tmp/a.csv", nil)
	if repo.IsExporting() {
		t.Fatal("Complete should clear the active flag")
	}
	if repo.GetState().LastPath != "/tmp/a.csv" {
		t.Errorf("LastPath = %q", repo.GetState().LastPath)
	}
	if !repo.TryStart([]string{"RO"}) {
		t.Fatal("TryStart should succeed after Complete")
	}
}

func TestExportStateConcurrentTryStart(t *testing.T) {
	repo := NewExportStateRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	started := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.TryStart([]string{"GR"}) {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if started != 1 {
		t.Fatalf("expected exactly one start, got %d", started)
	}
}
