// CSV import and export HTTP handlers.
//
// This file exposes the bulk endpoints:
//   - POST /buyers/import  (multipart CSV upload, all-or-nothing)
//   - GET  /buyers/export  (filtered CSV download)
//
// The import endpoint always answers a blocked batch with 200 and a report
// whose success flag is false; 4xx is reserved for whole-file violations
// (wrong extension, empty file, bad header, size and row caps) and 5xx for
// commit failures.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leadstack/buyer-intake/internal/http/middleware"
	"github.com/leadstack/buyer-intake/internal/importer"
	"github.com/leadstack/buyer-intake/internal/services"
)

//
// Service contracts (context-aware)
//

// ImportService scans an uploaded CSV and commits it atomically.
type ImportService interface {
	// Import returns the row-level report, or an error for whole-file
	// violations (*importer.FatalError) and commit failures.
	Import(ctx context.Context, userID string, content []byte) (*importer.Report, error)
}

// ExportService renders the matching buyers as a downloadable CSV.
type ExportService interface {
	// Export returns the suggested filename and the CSV document.
	Export(ctx context.Context, p services.FilterParams) (filename, csv string, err error)
}

// ImportBuyers godoc
// @ID          importBuyers
// @Summary     Import buyers from CSV
// @Description Uploads a CSV (multipart field "file", max 5MB, 200 data rows) and inserts every row, or none: a single invalid row blocks the whole batch and the response lists each offending row. Blocked batches still answer 200; inspect the success flag.
// @Tags        Import/Export
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(agent-7)
// @Param       file       formData  file  true  "CSV file with the buyers header row"
//
// @Success     200  {object} importer.Report
// @Failure     400  {object} handlers.ErrorResponse "Whole-file violation"
// @Failure     429  {object} handlers.ErrorResponse "Create quota exhausted"
// @Failure     500  {object} handlers.ErrorResponse "Commit failed"
// @Router      /buyers/import [post]
func (h *Handlers) ImportBuyers(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, `multipart field "file" is required`)
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "only .csv uploads are accepted")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unable to read uploaded file")
		return
	}
	defer f.Close()

	// The request body limiter upstream bounds this read.
	content, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unable to read uploaded file")
		return
	}

	report, err := h.importSvc.Import(c.Request.Context(), userID(c), content)
	if err != nil {
		var fatal *importer.FatalError
		if errors.As(err, &fatal) {
			fail(c, http.StatusBadRequest, ErrCodeImportFailed, fatal.Message)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeImportFailed, err.Error())
		return
	}

	middleware.ObserveImportRows(report.InsertedCount, len(report.Errors))
	if !report.Success {
		middleware.LoggerFrom(c).Warn().
			Int("total_rows", report.TotalRows).
			Int("invalid_rows", len(report.Errors)).
			Msg("import batch blocked")
	}
	ok(c, http.StatusOK, report)
}

// ExportBuyers godoc
// @ID          exportBuyers
// @Summary     Export buyers as CSV
// @Description Streams every buyer matching the current filters as a CSV download with the same columns the importer accepts.
// @Tags        Import/Export
// @Produce     text/csv
//
// @Param       q             query  string  false "Search across name, phone, email, and other text columns"
// @Param       city          query  string  false "Filter by city"          Enums(Chandigarh, Mohali, Zirakpur, Panchkula, Other)
// @Param       propertyType  query  string  false "Filter by property type" Enums(Apartment, Villa, Plot, Office, Retail)
// @Param       status        query  string  false "Filter by status"
// @Param       timeline      query  string  false "Filter by timeline"
//
// @Success     200  {string} string "CSV document"
// @Header      200  {string} Content-Disposition "attachment; filename=buyers-YYYY-MM-DD.csv"
// @Failure     400  {object} handlers.ErrorResponse "Unknown filter value"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/export [get]
func (h *Handlers) ExportBuyers(c *gin.Context) {
	filename, doc, err := h.exportSvc.Export(c.Request.Context(), filterParams(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilter) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	middleware.ObserveCSVExport()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(doc))
}
