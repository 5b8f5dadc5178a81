package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestBeltServicePromoteAndProgress(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/belts/promote":            `{"data":{"id":"bp1","student_id":"s1","previous_belt":"white","new_belt":"blue","new_degree":0,"promotion_type":"belt"},"success":true}`,
		"GET /api/students/s1/belt-progress": `{"student_id":"s1","current_belt":"blue","current_degree":0,"promotions":[{"id":"bp1"}]}`,
		"GET /api/belts/overview":            `{"data":{"total_students":3,"distribution":[{"belt":"white","degree":0,"count":2},{"belt":"blue","degree":0,"count":1}]}}`,
	})
	svc := NewBeltService(api)

	promotion, err := svc.Promote(context.Background(), dto.PromoteInput{StudentID: "s1", NewBelt: models.BeltBlue, PromotionType: models.PromotionBelt})
	require.NoError(t, err)
	assert.Equal(t, models.BeltBlue, promotion.NewBelt)
	assert.Equal(t, "s1", backend.last().Body["student_id"])

	progress, err := svc.StudentProgress(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.BeltBlue, progress.CurrentBelt)
	assert.Len(t, progress.Promotions, 1)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, overview.TotalStudents)
	assert.Len(t, overview.Distribution, 2)
}

func TestVideoServiceUploadAndFree(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/videos/upload": `{"id":"v1","title":"Armlock","url":"https://cdn.test/v1.mp4"}`,
		"GET /api/videos/free":    `{"data":[{"id":"v2","is_free":true}],"success":true}`,
	})
	svc := NewVideoService(api)

	video, err := svc.Upload(context.Background(), dto.UploadVideoInput{Title: "Armlock"}, "armlock.mp4", "video/mp4", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "v1", video.ID)
	assert.Equal(t, "/api/videos/upload", backend.last().Path)

	free, err := svc.Free(context.Background())
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.True(t, free[0].IsFree)
}
