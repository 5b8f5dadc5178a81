package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestLoadProfileLoadsRelations(t *testing.T) {
	api := newFakeStudentAPI()
	api.getFn = func(id string) (*models.Student, error) { return &models.Student{ID: id, Name: "Ana"}, nil }
	api.classesFn = func(string) ([]models.Class, error) { return []models.Class{{ID: "k1"}}, nil }
	checkins := fakeByStudent[models.Checkin]{fn: func(string) ([]models.Checkin, error) {
		return []models.Checkin{{ID: "c1"}, {ID: "c2"}}, nil
	}}
	payments := fakeByStudent[models.Payment]{fn: func(string) ([]models.Payment, error) {
		return []models.Payment{{ID: "p1"}}, nil
	}}
	s := NewStudentStore(api, checkins, payments, Options{})

	profile, err := s.LoadProfile(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Student.Name)
	assert.Len(t, profile.Classes, 1)
	assert.Len(t, profile.Checkins, 2)
	assert.Len(t, profile.Payments, 1)

	assert.Equal(t, "s1", s.Snapshot().Current.ID)
	assert.Len(t, s.Profile().Checkins, 2)
	assert.Len(t, s.Classes(), 1)
}

func TestLoadProfileFallsBackToEmptyRelations(t *testing.T) {
	api := newFakeStudentAPI()
	api.getFn = func(id string) (*models.Student, error) { return &models.Student{ID: id}, nil }
	api.classesFn = func(string) ([]models.Class, error) { return []models.Class{{ID: "k1"}}, nil }
	checkins := fakeByStudent[models.Checkin]{fn: func(string) ([]models.Checkin, error) {
		return nil, errors.New("checkins down")
	}}
	payments := fakeByStudent[models.Payment]{fn: func(string) ([]models.Payment, error) {
		return []models.Payment{{ID: "p1"}}, nil
	}}
	s := NewStudentStore(api, checkins, payments, Options{})

	profile, err := s.LoadProfile(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, profile.Classes)
	assert.Empty(t, profile.Classes)
	assert.Empty(t, profile.Checkins)
	assert.Empty(t, profile.Payments)
	assert.Empty(t, s.Snapshot().Error)
}

func TestLoadProfileFailsWhenStudentMissing(t *testing.T) {
	api := newFakeStudentAPI()
	api.getFn = func(string) (*models.Student, error) { return nil, errors.New("Aluno não encontrado") }
	s := NewStudentStore(api, fakeByStudent[models.Checkin]{}, fakeByStudent[models.Payment]{}, Options{})

	_, err := s.LoadProfile(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Aluno não encontrado", s.Snapshot().Error)
}

func TestEnrollReloadsClassesAndUnenrollDropsLocally(t *testing.T) {
	api := newFakeStudentAPI()
	api.classesFn = func(string) ([]models.Class, error) { return []models.Class{{ID: "k1"}, {ID: "k2"}}, nil }
	s := NewStudentStore(api, fakeByStudent[models.Checkin]{}, fakeByStudent[models.Payment]{}, Options{})
	ctx := context.Background()

	require.NoError(t, s.Enroll(ctx, "s1", "k2"))
	assert.Equal(t, []string{"s1:k2"}, api.enrolled)
	assert.Len(t, s.Classes(), 2)

	require.NoError(t, s.Unenroll(ctx, "s1", "k1"))
	assert.Equal(t, []string{"s1:k1"}, api.unenrolled)
	classes := s.Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, "k2", classes[0].ID)
}
