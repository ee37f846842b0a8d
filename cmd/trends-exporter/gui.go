package main

import (
	"runtime"
	"time"

	"trends-exporter/internal/config"
	"trends-exporter/internal/controllers"
	"trends-exporter/internal/logger"
	"trends-exporter/internal/models"
	"trends-exporter/internal/services"
	"trends-exporter/internal/shutdown"
	"trends-exporter/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppTitle = "Google Trends Exporter"
	AppID    = "com.trends-exporter.app"

	statsInterval = 30 * time.Second
)

// Application owns the window and the MVC wiring for one GUI session.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView

	exportService *services.ExportService
	stateRepo     *models.ExportStateRepository
	shutdownMgr   *shutdown.Manager
}

func runGUI(rt *runtimeDeps) error {
	application := NewApplication(rt)
	return application.Run()
}

// NewApplication wires provider, service, controller and view together.
func NewApplication(rt *runtimeDeps) *Application {
	fyneApp := app.NewWithID(AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppTitle,
		Version: getVersion(),
	})

	window := fyneApp.NewWindow(AppTitle)
	window.Resize(fyne.NewSize(480, 560))
	window.CenterOnScreen()

	rt.log.Info("Application", "starting", map[string]interface{}{
		"version":     getVersion(),
		"config_file": rt.configPath,
		"go_version":  runtime.Version(),
		"endpoint":    rt.cfg.Provider.Endpoint,
	})

	provider := newProvider(rt)
	exportService := services.NewExportService(provider, rt.log, rt.cfg.Export.Concurrency)
	stateRepo := models.NewExportStateRepository()

	mainController := controllers.NewMainController(exportService, stateRepo, rt.log)
	mainView := views.NewMainView(window, models.Regions(), defaultCodes(rt.cfg), rt.cfg.Export.OutputDir)
	mainController.SetMainView(mainView)

	shutdownMgr := shutdown.NewManager(rt.log)
	shutdownMgr.Register("trends provider", provider)
	shutdownMgr.Register("controller", mainController)

	application := &Application{
		fyneApp:       fyneApp,
		window:        window,
		logger:        rt.log,
		controller:    mainController,
		view:          mainView,
		exportService: exportService,
		stateRepo:     stateRepo,
		shutdownMgr:   shutdownMgr,
	}
	application.setupWindowEvents()

	return application
}

// defaultCodes falls back to the catalog default when the configured list
// names nothing the form can show.
func defaultCodes(cfg *config.Config) []string {
	var codes []string
	for _, code := range models.NewSelection(cfg.Export.DefaultRegions, "").Codes {
		if _, ok := models.LookupRegion(code); ok {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return models.DefaultRegionCodes()
	}
	return codes
}

// Run shows the window and blocks until the Fyne event loop exits.
func (a *Application) Run() error {
	a.shutdownMgr.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go a.monitorStats()

	a.window.ShowAndRun()

	a.shutdownMgr.Shutdown()
	a.logger.Info("Application", "terminated", nil)
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		if !a.stateRepo.IsExporting() {
			a.window.Close()
			return
		}

		a.view.ShowConfirm(
			"Export Running",
			"An export is still running. Cancel it and exit?",
			func(confirmed bool) {
				if confirmed {
					a.logger.Info("Application", "exit confirmed during export", nil)
					a.window.Close()
				}
			},
		)
	})
}

func (a *Application) monitorStats() {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	done := a.shutdownMgr.Context().Done()
	for {
		select {
		case <-ticker.C:
			a.logStats()
		case <-done:
			return
		}
	}
}

func (a *Application) logStats() {
	stats := a.exportService.GetExportStats()
	state := a.stateRepo.GetState()

	a.logger.Debug("Application", "export statistics", map[string]interface{}{
		"total_exports":   stats.TotalExports,
		"failed_exports":  stats.FailedExports,
		"regions_failed":  stats.RegionsFailed,
		"avg_export_ms":   stats.AverageTime.Milliseconds(),
		"exporting":       state.IsActive,
		"last_export":     state.LastPath,
		"goroutine_count": runtime.NumGoroutine(),
	})
}
