package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// Resource specific ops.
const (
	OpProfile   Op = "profile"
	OpClasses   Op = "classes"
	OpEnroll    Op = "enroll"
	OpUnenroll  Op = "unenroll"
	OpStudents  Op = "students"
	OpCheckins  Op = "checkins"
	OpSchedule  Op = "schedule"
	OpToday     Op = "today"
	OpByStudent Op = "by_student"
	OpByClass   Op = "by_class"
	OpOverdue   Op = "overdue"
	OpPay       Op = "pay"
	OpGenerate  Op = "generate"
	OpPromote   Op = "promote"
	OpOverview  Op = "overview"
	OpProgress  Op = "progress"
	OpUpload    Op = "upload"
	OpByModule  Op = "by_module"
	OpFree      Op = "free"
)

func crudMessages(plural, singular string) map[Op]string {
	return map[Op]string{
		OpList:   "Erro ao carregar " + plural,
		OpGet:    "Erro ao carregar " + singular,
		OpCreate: "Erro ao criar " + singular,
		OpUpdate: "Erro ao atualizar " + singular,
		OpDelete: "Erro ao excluir " + singular,
	}
}

func withMessages(base map[Op]string, extra map[Op]string) map[Op]string {
	for op, msg := range extra {
		base[op] = msg
	}
	return base
}

// load runs a guarded read for op and hands the result to set when it is still current.
func load[V, T, In any](ctx context.Context, c *Collection[T, In], op Op, call func(context.Context) (V, error), set func(V)) (V, error) {
	var out V
	err := c.run(op, true, func() error {
		var err error
		out, err = call(ctx)
		return err
	}, func(*State[T]) {
		set(out)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out, nil
}

func copyOf[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}

func studentKey(s models.Student) string { return s.ID }
func teacherKey(t models.Teacher) string { return t.ID }
func classKey(c models.Class) string { return c.ID }
func checkinKey(c models.Checkin) string { return c.ID }
func paymentKey(p models.Payment) string { return p.ID }
func expenseKey(e models.Expense) string { return e.ID }
func promotionKey(p models.BeltPromotion) string { return p.ID }
func videoKey(v models.Video) string { return v.ID }
func moduleKey(m models.Module) string { return m.ID }
