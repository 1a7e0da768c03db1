package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/config"
	"buildtrack/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

func attachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// HandleBOMExportExcel returns a handler that generates and downloads an
// Excel workbook with the project's BOM and progress.
func HandleBOMExportExcel(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return respondError(e, http.StatusBadRequest, "Missing project ID")
		}

		project, priced, err := loadPricedProject(app, projectID, cfg.ViewPolicy())
		if err != nil {
			return loadFailed(app, e, "export_excel", err)
		}
		progress, err := services.ComputeProgress(project)
		if err != nil {
			return loadFailed(app, e, "export_excel", err)
		}

		now := time.Now()
		data := services.BuildExportData(project, priced, &progress, cfg.Pricing.CurrencySymbol, now.Format("02 Jan 2006"))

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			app.Logger().Error("export_excel: failed to generate", "project", projectID, "error", err)
			return respondError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("BOM_%s_%d.xlsx", sanitizeFilename(project.Name), now.Year())
		return attachment(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, xlsxBytes)
	}
}

// HandleBOMExportPDF returns a handler that generates and downloads the
// client BOM as a PDF.
func HandleBOMExportPDF(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return respondError(e, http.StatusBadRequest, "Missing project ID")
		}

		project, priced, err := loadPricedProject(app, projectID, cfg.ViewPolicy())
		if err != nil {
			return loadFailed(app, e, "export_pdf", err)
		}

		now := time.Now()
		summary := services.BuildClientSummary(project.Name, priced, cfg.PDFCurrency(), now.Format("02 Jan 2006"))

		pdfBytes, err := services.GenerateClientPDF(summary)
		if err != nil {
			app.Logger().Error("export_pdf: failed to generate", "project", projectID, "error", err)
			return respondError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Client_BOM_%s_%d.pdf", sanitizeFilename(project.Name), now.Year())
		return attachment(e, "application/pdf", filename, pdfBytes)
	}
}
