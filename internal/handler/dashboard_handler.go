package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/okami-ct/okami-dashboard/internal/stats"
	"github.com/okami-ct/okami-dashboard/internal/store"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// DashboardHandler aggregates several stores into the home pages.
type DashboardHandler struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{logger: logger, now: time.Now}
}

// FinancialView is the financial page: summary, overdue list and yearly history.
type FinancialView struct {
	Summary stats.FinancialSummary `json:"summary"`
	Overdue []stats.OverdueEntry   `json:"overdue"`
	Years   []stats.YearGroup      `json:"years"`
}

// Admin godoc
// @Summary Administrator dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// Each store loads on its own; a failing store leaves its error in meta and an
	// empty section on the page.
	h.loadAll(ctx,
		func(ctx context.Context) error { return stores.Students.Fetch(ctx, nil) },
		func(ctx context.Context) error { return stores.Teachers.Fetch(ctx, nil) },
		func(ctx context.Context) error { return stores.Classes.Fetch(ctx, nil) },
		func(ctx context.Context) error { return stores.Payments.Fetch(ctx, nil) },
		func(ctx context.Context) error { return stores.Expenses.Fetch(ctx, nil) },
		func(ctx context.Context) error {
			_, err := stores.Checkins.LoadToday(ctx)
			return err
		},
	)

	students := stores.Students.Snapshot()
	teachers := stores.Teachers.Snapshot()
	classes := stores.Classes.Snapshot()
	payments := stores.Payments.Snapshot()
	expenses := stores.Expenses.Snapshot()
	checkins := stores.Checkins.Snapshot()

	dash := stats.Admin(stats.AdminInput{
		Students:      students.Items,
		StudentsTotal: students.Pagination.Total,
		Teachers:      teachers.Items,
		TeachersTotal: teachers.Pagination.Total,
		Classes:       classes.Items,
		Payments:      payments.Items,
		Expenses:      expenses.Items,
		TodayCheckins: stores.Checkins.Today(),
	}, h.now())

	response.JSON(c, http.StatusOK, dash, nil, map[string]interface{}{
		"errors": collectErrors(map[string]string{
			"students": students.Error,
			"teachers": teachers.Error,
			"classes":  classes.Error,
			"payments": payments.Error,
			"expenses": expenses.Error,
			"checkins": checkins.Error,
		}),
	})
}

// Financial godoc
// @Summary Financial dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/financial [get]
func (h *DashboardHandler) Financial(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	h.loadAll(c.Request.Context(),
		func(ctx context.Context) error { return stores.Payments.Fetch(ctx, nil) },
		func(ctx context.Context) error { return stores.Expenses.Fetch(ctx, nil) },
	)

	payments := stores.Payments.Snapshot()
	expenses := stores.Expenses.Snapshot()
	now := h.now()
	view := FinancialView{
		Summary: stats.Financial(payments.Items, expenses.Items, now),
		Overdue: stats.Overdue(payments.Items, now),
		Years:   stats.GroupPaymentsByYear(payments.Items),
	}
	response.JSON(c, http.StatusOK, view, nil, map[string]interface{}{
		"errors": collectErrors(map[string]string{
			"payments": payments.Error,
			"expenses": expenses.Error,
		}),
	})
}

func (h *DashboardHandler) loadAll(ctx context.Context, loads ...func(context.Context) error) {
	var g errgroup.Group
	for _, fn := range loads {
		fn := fn
		g.Go(func() error {
			if err := fn(ctx); err != nil && !errors.Is(err, store.ErrSuperseded) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Warn("dashboard loaded with errors", zap.Error(err))
	}
}

func collectErrors(byStore map[string]string) map[string]string {
	out := make(map[string]string)
	for name, msg := range byStore {
		if msg != "" {
			out[name] = msg
		}
	}
	return out
}
