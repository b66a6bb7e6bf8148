// Export HTTP handlers.
//
// This file exposes the download endpoints:
//   - GET /registrations/export        (CSV of every confirmed registration)
//   - GET /registrations/last/summary  (plain-text summary of the latest one)
//
// Both respond as attachments with canonical filenames.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecopots/go-registration-backend/internal/services"
)

// ExportCSV godoc
// @ID          exportCSV
// @Summary     Download confirmed registrations as CSV
// @Description Streams every confirmed registration, oldest first, with a fixed column set. An empty log yields a header-only file.
// @Tags        Exports
// @Produce     text/csv
//
// @Success     200  {string}  string  "CSV attachment"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations/export [get]
func (h *Handlers) ExportCSV(c *gin.Context) {
	filename := h.exportSvc.CSVFilename(time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Status(http.StatusOK)

	if _, err := h.exportSvc.WriteCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already out; record the error and cut the stream.
		_ = c.Error(err)
		c.Abort()
	}
}

// ExportSummary godoc
// @ID          exportSummary
// @Summary     Download a text summary of the latest registration
// @Tags        Exports
// @Produce     plain
//
// @Success     200  {string}  string  "Text attachment"
// @Failure     404  {object}  handlers.ErrorResponse  "Nothing recorded yet"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations/last/summary [get]
func (h *Handlers) ExportSummary(c *gin.Context) {
	reg, err := h.storeSvc.LastSubmission(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no registration recorded yet")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, h.exportSvc.SummaryFilename(reg)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.exportSvc.Summary(reg)))
}
