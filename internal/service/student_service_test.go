package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

func TestStudentServiceList(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"GET /api/students": `{"data":[{"id":"s1","name":"Ana Silva","belt":"blue","belt_degree":2,"status":"active"}],"total":1,"page":1,"limit":10,"totalPages":1}`,
	})
	svc := NewStudentService(api)

	result, err := svc.List(context.Background(), models.ListQuery{Filter: models.Filter{"search": "Silva"}, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, models.BeltBlue, result.Data[0].Belt)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, result.Pagination())

	req := backend.last()
	assert.Equal(t, "Silva", req.Query["search"])
	assert.Equal(t, "1", req.Query["page"])
	assert.Equal(t, "10", req.Query["limit"])
}

func TestStudentServiceCreateUnwrapsEnvelope(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/students": `{"data":{"id":"s9","name":"Bruno Costa","belt":"white"},"success":true}`,
	})
	svc := NewStudentService(api)

	student, err := svc.Create(context.Background(), dto.StudentInput{Name: "Bruno Costa", Belt: models.BeltWhite})
	require.NoError(t, err)
	assert.Equal(t, "s9", student.ID)
	assert.Equal(t, "Bruno Costa", backend.last().Body["name"])
}

func TestStudentServiceEnrollAndDelete(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/students/s1/classes": `{"success":true}`,
	})
	svc := NewStudentService(api)

	require.NoError(t, svc.Enroll(context.Background(), "s1", "c1"))
	assert.Equal(t, "c1", backend.last().Body["class_id"])

	require.NoError(t, svc.Unenroll(context.Background(), "s1", "c1"))
	assert.Equal(t, http.MethodDelete, backend.last().Method)
	assert.Equal(t, "/api/students/s1/classes/c1", backend.last().Path)

	require.NoError(t, svc.Delete(context.Background(), "s1"))
	assert.Equal(t, "/api/students/s1", backend.last().Path)
	assert.Equal(t, 3, backend.count())
}

func TestStudentServicePropagatesServerError(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"GET /api/students/missing": `{"message":"Aluno não encontrado"}`,
	})
	backend.status = http.StatusNotFound
	svc := NewStudentService(api)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Aluno não encontrado", err.Error())
}

func TestStudentServiceRejectsDotSegmentIDs(t *testing.T) {
	backend, api := newFakeBackend(t, nil)
	students := NewStudentService(api)
	payments := NewPaymentService(api)
	belts := NewBeltService(api)

	for _, id := range []string{"..", ".", "", " "} {
		err := students.Unenroll(context.Background(), "st-9", id)
		require.Error(t, err, "class id %q", id)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Error(t, students.Enroll(context.Background(), "st-9", ".."))
	assert.Error(t, students.Delete(context.Background(), ".."))
	_, err := payments.MarkAsPaid(context.Background(), "..", dto.MarkAsPaidInput{})
	assert.Error(t, err)
	_, err = belts.StudentProgress(context.Background(), "..")
	assert.Error(t, err)
	_, err = payments.ByStudent(context.Background(), "..")
	assert.Error(t, err)

	assert.Zero(t, backend.count())
}

func TestStudentServiceEscapesIDSegments(t *testing.T) {
	backend, api := newFakeBackend(t, nil)
	svc := NewStudentService(api)

	require.NoError(t, svc.Unenroll(context.Background(), "st-9", "../x"))
	req := backend.last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/students/st-9/classes/..%2Fx", req.RawPath)
	assert.Equal(t, 1, backend.count())
}
