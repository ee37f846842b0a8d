package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"trends-exporter/internal/logger"
	"trends-exporter/internal/models"
	"trends-exporter/internal/services"
)

// ErrExportInProgress is returned by Submit while an earlier export is running.
var ErrExportInProgress = errors.New("an export is already in progress")

// Exporter runs one fetch-and-export pass.
type Exporter interface {
	Run(ctx context.Context, sel models.Selection, sink services.StatusSink) (*models.ExportResult, error)
}

// View is the part of the main window the controller drives. Implementations
// marshal every call onto the UI thread themselves.
type View interface {
	SetSubmitHandler(handler func(models.Selection))
	UpdateStatus(status string)
	SetExportActive(active bool)
	ShowWarning(title, message string)
	ShowError(title string, err error)
	ShowInfo(title, message string)
}

// MainController validates form submissions and runs exports off the UI thread.
type MainController struct {
	exporter  Exporter
	stateRepo *models.ExportStateRepository
	log       logger.Logger

	mainView View

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMainController creates a new main controller
func NewMainController(exporter Exporter, stateRepo *models.ExportStateRepository, log logger.Logger) *MainController {
	ctx, cancel := context.WithCancel(context.Background())
	return &MainController{
		exporter:  exporter,
		stateRepo: stateRepo,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mu.Lock()
	mc.mainView = view
	mc.mu.Unlock()

	view.SetSubmitHandler(func(sel models.Selection) {
		_ = mc.Submit(sel)
	})
}

func (mc *MainController) view() View {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.mainView
}

// Submit validates sel and, if no export is running, starts one in the
// background. sel is handed to the worker by value.
func (mc *MainController) Submit(sel models.Selection) error {
	view := mc.view()

	if err := sel.Validate(); err != nil {
		mc.log.Warning("MainController", "submission rejected", map[string]interface{}{
			"reason": err.Error(),
		})
		if view != nil {
			switch {
			case errors.Is(err, models.ErrNoRegions):
				view.ShowWarning("No Region", "Please select at least one region.")
			case errors.Is(err, models.ErrNoOutputDir):
				view.ShowWarning("No Folder", "Please select an export folder.")
			}
		}
		return err
	}

	if mc.ctx.Err() != nil {
		return mc.ctx.Err()
	}

	if !mc.stateRepo.TryStart(sel.Codes) {
		mc.log.Info("MainController", "export already running", map[string]interface{}{
			"regions": sel.Codes,
		})
		if view != nil {
			view.ShowWarning("Export Running", "An export is already in progress. Please wait for it to finish.")
		}
		return ErrExportInProgress
	}

	if view != nil {
		view.SetExportActive(true)
		view.UpdateStatus("Fetching Google Trends...")
	}

	mc.wg.Add(1)
	go mc.performExport(sel)
	return nil
}

// performExport runs on its own goroutine; UI updates go through the view.
func (mc *MainController) performExport(sel models.Selection) {
	defer mc.wg.Done()

	view := mc.view()
	sink := services.StatusFunc(func(msg string) {
		if view != nil {
			view.UpdateStatus(msg)
		}
	})

	result, err := mc.exporter.Run(mc.ctx, sel, sink)

	path := ""
	if result != nil {
		path = result.Path
	}
	mc.stateRepo.Complete(path, err)

	if view == nil {
		return
	}
	view.SetExportActive(false)

	switch {
	case err == nil:
		view.UpdateStatus(fmt.Sprintf("Trends saved to:\n%s", result.Path))
		view.ShowInfo("Success", fmt.Sprintf("Trends data exported to:\n%s", result.Path))
	case errors.Is(err, context.Canceled):
		view.UpdateStatus("Export cancelled")
	case errors.Is(err, services.ErrNoData):
		view.UpdateStatus("No trend data retrieved")
		view.ShowError("No Data", errors.New("No trend data could be retrieved."))
	default:
		view.UpdateStatus("Export failed")
		view.ShowError("Export Failed", err)
	}
}

// Wait blocks until every started export has finished.
func (mc *MainController) Wait() {
	mc.wg.Wait()
}

// Shutdown cancels a running export and waits for its worker to return.
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.wg.Wait()
	mc.log.Info("MainController", "controller stopped", nil)
}
