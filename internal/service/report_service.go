package service

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/stats"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/export"
	"github.com/okami-ct/okami-dashboard/pkg/storage"
)

// Report formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var contentTypes = map[string]string{
	FormatCSV: "text/csv; charset=utf-8",
	FormatPDF: "application/pdf",
}

var paymentStatusLabels = map[models.PaymentStatus]string{
	models.PaymentPending:   "Pendente",
	models.PaymentPaid:      "Pago",
	models.PaymentOverdue:   "Atrasado",
	models.PaymentCancelled: "Cancelado",
}

var paymentMethodLabels = map[models.PaymentMethod]string{
	models.MethodCash:         "Dinheiro",
	models.MethodPix:          "PIX",
	models.MethodCreditCard:   "Cartão de crédito",
	models.MethodDebitCard:    "Cartão de débito",
	models.MethodBankTransfer: "Transferência",
}

var studentStatusLabels = map[models.StudentStatus]string{
	models.StudentActive:    "Ativo",
	models.StudentInactive:  "Inativo",
	models.StudentSuspended: "Suspenso",
}

// Report is a rendered and stored export.
type Report struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Body        []byte    `json:"-"`
}

// ReportService renders store state into CSV and PDF files and keeps them for download.
type ReportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	files  *storage.LocalStorage
	signer *storage.SignedURLSigner
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(files *storage.LocalStorage, signer *storage.SignedURLSigner, ttl time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		files:  files,
		signer: signer,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Payments renders a payment listing with a totals footer.
func (s *ReportService) Payments(payments []models.Payment, format string) (*Report, error) {
	now := s.now()
	table := export.Table{
		Title: "Relatório de Mensalidades",
		Columns: []export.Column{
			{Title: "Aluno"},
			{Title: "Referência", Width: 24, Align: "C"},
			{Title: "Vencimento", Width: 26, Align: "C"},
			{Title: "Valor", Width: 28, Align: "R"},
			{Title: "Desconto", Width: 26, Align: "R"},
			{Title: "Multa", Width: 24, Align: "R"},
			{Title: "Total", Width: 28, Align: "R"},
			{Title: "Status", Width: 24, Align: "C"},
			{Title: "Pagamento", Width: 30},
			{Title: "Dias em atraso", Width: 26, Align: "C"},
		},
		Rows: make([][]string, 0, len(payments)),
	}
	var total models.Money
	for _, p := range payments {
		final := stats.FinalAmount(p)
		if p.Status != models.PaymentCancelled {
			total += final
		}
		late := ""
		if stats.IsOverdue(p, now) {
			late = strconv.Itoa(stats.DaysOverdue(p.DueDate, now))
		}
		table.Rows = append(table.Rows, []string{
			studentName(p),
			p.ReferenceMonth,
			formatDate(p.DueDate),
			p.Amount.String(),
			p.Discount.String(),
			p.LateFee.String(),
			final.String(),
			label(paymentStatusLabels, p.Status),
			paymentMethod(p),
			late,
		})
	}
	table.Footer = []string{"Total", "", "", "", "", "", total.String(), "", "", ""}
	return s.render("payments", table, format)
}

// Students renders the student roster.
func (s *ReportService) Students(students []models.Student, format string) (*Report, error) {
	table := export.Table{
		Title: "Relatório de Alunos",
		Columns: []export.Column{
			{Title: "Nome"},
			{Title: "E-mail"},
			{Title: "Telefone", Width: 32},
			{Title: "Graduação", Width: 46},
			{Title: "Status", Width: 22, Align: "C"},
			{Title: "Matrícula", Width: 24, Align: "C"},
		},
		Rows: make([][]string, 0, len(students)),
	}
	for _, st := range students {
		table.Rows = append(table.Rows, []string{
			st.Name,
			st.Email,
			st.Phone,
			stats.RankLabel(st.Belt, st.BeltDegree),
			label(studentStatusLabels, st.Status),
			formatDate(st.EnrollmentDate),
		})
	}
	return s.render("students", table, format)
}

// Open returns the stored report a download token grants access to.
func (s *ReportService) Open(token string) (io.ReadCloser, string, error) {
	_, name, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "Link de download expirado")
		}
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "Link de download inválido")
	}
	file, err := s.files.Open(name)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "Relatório não encontrado")
	}
	return file, path.Base(name), nil
}

// Cleanup drops stored reports older than the configured retention.
func (s *ReportService) Cleanup() (int, error) {
	deleted, err := s.files.CleanupOlderThan(s.ttl)
	if err != nil {
		return 0, err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired reports removed", zap.Int("count", len(deleted)))
	}
	return len(deleted), nil
}

func (s *ReportService) render(kind string, table export.Table, format string) (*Report, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case FormatCSV:
		body, err = s.csv.Render(table)
	case FormatPDF:
		body, err = s.pdf.Render(table)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s-%s.%s", kind, s.now().Format("20060102-150405"), format)
	name := path.Join(kind, id, filename)
	if err := s.files.Save(name, body); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}
	token, expiresAt, err := s.signer.Generate(id, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report link")
	}
	s.logger.Debug("report generated", zap.String("kind", kind), zap.String("format", format), zap.Int("rows", len(table.Rows)))

	return &Report{
		ID:          id,
		Filename:    filename,
		ContentType: contentTypes[format],
		Token:       token,
		ExpiresAt:   expiresAt,
		Body:        body,
	}, nil
}

func studentName(p models.Payment) string {
	if p.Student != nil && p.Student.Name != "" {
		return p.Student.Name
	}
	return p.StudentID
}

func paymentMethod(p models.Payment) string {
	if p.PaymentMethod == "" {
		return ""
	}
	return label(paymentMethodLabels, p.PaymentMethod)
}

func formatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

func label[K ~string](labels map[K]string, key K) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return string(key)
}
