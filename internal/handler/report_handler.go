package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/service"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

type reportRenderer interface {
	Payments(payments []models.Payment, format string) (*service.Report, error)
	Students(students []models.Student, format string) (*service.Report, error)
	Open(token string) (io.ReadCloser, string, error)
}

// ReportHandler exports the current list state of a store as a file.
type ReportHandler struct {
	reports reportRenderer
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportRenderer) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// PaymentsCSV godoc
// @Summary Export the filtered payment list as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Router /reports/payments.csv [get]
func (h *ReportHandler) PaymentsCSV(c *gin.Context) {
	h.payments(c, service.FormatCSV)
}

// PaymentsPDF godoc
// @Summary Export the filtered payment list as PDF
// @Tags Reports
// @Produce application/pdf
// @Success 200 {file} file
// @Router /reports/payments.pdf [get]
func (h *ReportHandler) PaymentsPDF(c *gin.Context) {
	h.payments(c, service.FormatPDF)
}

// StudentsCSV godoc
// @Summary Export the filtered student list as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Router /reports/students.csv [get]
func (h *ReportHandler) StudentsCSV(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Students
	if err := s.Fetch(c.Request.Context(), nil); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	report, err := h.reports.Students(s.Snapshot().Items, service.FormatCSV)
	if err != nil {
		response.Error(c, err)
		return
	}
	attach(c, report)
}

// Download godoc
// @Summary Download a previously generated report
// @Tags Reports
// @Param token path string true "Download token"
// @Success 200 {file} file
// @Router /reports/files/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, name, err := h.reports.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, file, map[string]string{
		"Content-Disposition": disposition(name),
	})
}

func (h *ReportHandler) payments(c *gin.Context, format string) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Payments
	if err := s.Fetch(c.Request.Context(), nil); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	report, err := h.reports.Payments(s.Snapshot().Items, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	attach(c, report)
}

func attach(c *gin.Context, report *service.Report) {
	c.Header("Content-Disposition", disposition(report.Filename))
	c.Header("X-Report-Token", report.Token)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, report.ContentType, report.Body)
}

func disposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
