package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
	"buildtrack/config"
	"buildtrack/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := pocketbase.New()

	// Create collections, seed data and refresh derived caches on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app); err != nil {
			return err
		}
		if cfg.App.SeedData {
			if err := collections.Seed(app); err != nil {
				app.Logger().Warn("seed data failed", "error", err)
			}
		}
		if _, err := collections.RefreshDerivedCaches(app, cfg.ViewPolicy()); err != nil {
			app.Logger().Warn("derived cache refresh failed", "error", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app, cfg))
		se.Router.GET("/projects/{id}/progress", handlers.HandleProjectProgress(app))

		// ── BOM ──────────────────────────────────────────────────
		se.Router.GET("/projects/{id}/bom", handlers.HandleBOMView(app, cfg))
		se.Router.POST("/projects/{id}/bom/markup", handlers.HandleBOMMarkup(app, cfg))
		se.Router.GET("/projects/{id}/bom/export/excel", handlers.HandleBOMExportExcel(app, cfg))
		se.Router.GET("/projects/{id}/bom/export/pdf", handlers.HandleBOMExportPDF(app, cfg))

		// ── Stateless engine API ─────────────────────────────────
		se.Router.POST("/api/bom/compute", handlers.HandleComputeBOM(cfg))
		se.Router.POST("/api/progress/compute", handlers.HandleComputeProgress())

		// Redirect home to projects list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
