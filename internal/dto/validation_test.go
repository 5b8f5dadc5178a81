package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestStudentInputValidation(t *testing.T) {
	v := NewValidator()

	err := v.Struct(StudentInput{Name: "Jo", Belt: "pink", CPF: "123"})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Equal(t, "Mínimo de 3", fields["name"])
	assert.Equal(t, "Faixa inválida", fields["belt"])
	assert.Equal(t, "Deve ter 11 caracteres", fields["cpf"])

	require.NoError(t, v.Struct(StudentInput{Name: "João Silva", Belt: models.BeltBlue, BeltDegree: 2, EnrollmentDate: "2024-02-01"}))
}

func TestClassInputValidation(t *testing.T) {
	v := NewValidator()

	err := v.Struct(ClassInput{Name: "Kids", TeacherID: "t1", DaysOfWeek: []int{1, 7}, StartTime: "18:00", EndTime: "25:00"})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Contains(t, fields, "end_time")
	assert.Contains(t, fields, "days_of_week[1]")

	require.NoError(t, v.Struct(ClassInput{Name: "Kids", TeacherID: "t1", DaysOfWeek: []int{1, 3}, StartTime: "18:00", EndTime: "19:00", AgeGroup: models.AgeGroupKids}))
}

func TestPaymentInputValidation(t *testing.T) {
	v := NewValidator()

	err := v.Struct(PaymentInput{StudentID: "s1", Amount: 0, DueDate: "10/02/2024", ReferenceMonth: "2024-02", PaymentMethod: "cheque"})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Equal(t, "Deve ser maior que 0", fields["amount"])
	assert.Equal(t, "Formato esperado 2006-01-02", fields["due_date"])
	assert.Equal(t, "Forma de pagamento inválida", fields["payment_method"])

	require.NoError(t, v.Struct(GenerateMonthlyInput{Month: 2, Year: 2024}))
	require.Error(t, v.Struct(GenerateMonthlyInput{Month: 13, Year: 2024}))
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestUploadVideoInputFields(t *testing.T) {
	fields := UploadVideoInput{Title: "Raspagem", ModuleID: "m1", IsFree: true}.Fields()
	assert.Equal(t, map[string]string{"title": "Raspagem", "module_id": "m1", "is_free": "true"}, fields)
}
