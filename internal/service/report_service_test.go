package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/storage"
)

func newReportService(t *testing.T) *ReportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewReportService(files, storage.NewSignedURLSigner("secret", time.Hour), 24*time.Hour, nil)
	svc.now = func() time.Time { return time.Date(2024, 2, 15, 19, 30, 0, 0, time.UTC) }
	return svc
}

func TestReportServicePaymentsCSV(t *testing.T) {
	svc := newReportService(t)
	payments := []models.Payment{
		{
			ID: "p1", StudentID: "s1", Student: &models.Summary{ID: "s1", Name: "João"},
			Amount: 150, Discount: 10, DueDate: models.NewDate(2024, time.February, 10),
			ReferenceMonth: "2024-02", Status: models.PaymentPending,
		},
		{
			ID: "p2", StudentID: "s2", Amount: 90, DueDate: models.NewDate(2024, time.February, 5),
			ReferenceMonth: "2024-02", Status: models.PaymentPaid, PaymentMethod: models.MethodPix,
		},
		{
			ID: "p3", StudentID: "s3", Amount: 500, DueDate: models.NewDate(2024, time.January, 5),
			ReferenceMonth: "2024-01", Status: models.PaymentCancelled,
		},
	}

	report, err := svc.Payments(payments, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "payments-20240215-193000.csv", report.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", report.ContentType)
	body := string(report.Body)
	assert.Contains(t, body, "João;2024-02;10/02/2024;R$ 150,00;R$ 10,00;R$ 0,00;R$ 140,00;Pendente;;5\n")
	assert.Contains(t, body, "s2;2024-02;05/02/2024;R$ 90,00;R$ 0,00;R$ 0,00;R$ 90,00;Pago;PIX;\n")
	assert.Contains(t, body, "Total;;;;;;R$ 230,00;;;\n")

	file, name, err := svc.Open(report.Token)
	require.NoError(t, err)
	stored, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, report.Filename, name)
	assert.Equal(t, report.Body, stored)
}

func TestReportServiceStudentsPDF(t *testing.T) {
	svc := newReportService(t)
	students := []models.Student{{ID: "s1", Name: "Ana", Belt: models.BeltBlue, BeltDegree: 2, Status: models.StudentActive}}

	report, err := svc.Students(students, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasPrefix(string(report.Body), "%PDF-"))
}

func TestReportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newReportService(t)

	_, err := svc.Students(nil, "xlsx")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestReportServiceOpenRejectsBadToken(t *testing.T) {
	svc := newReportService(t)

	_, _, err := svc.Open("nope")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}
