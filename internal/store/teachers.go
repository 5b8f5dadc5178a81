package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// TeacherAPI is the slice of the teacher service used by TeacherStore.
type TeacherAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Teacher], error)
	Get(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, input dto.TeacherInput) (*models.Teacher, error)
	Update(ctx context.Context, id string, input dto.TeacherInput) (*models.Teacher, error)
	Delete(ctx context.Context, id string) error
	Classes(ctx context.Context, id string) ([]models.Class, error)
}

// TeacherStore holds instructors and the classes of the selected one.
type TeacherStore struct {
	*Collection[models.Teacher, dto.TeacherInput]

	api     TeacherAPI
	classes []models.Class
}

// NewTeacherStore constructs a teacher store.
func NewTeacherStore(api TeacherAPI, opts Options) *TeacherStore {
	endpoints := Endpoints[models.Teacher, dto.TeacherInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("professores", "professor"), map[Op]string{
		OpClasses: "Erro ao carregar turmas do professor",
	})
	return &TeacherStore{
		Collection: NewCollection("teachers", endpoints, teacherKey, messages, opts),
		api:        api,
	}
}

// LoadClasses loads the classes assigned to a teacher.
func (s *TeacherStore) LoadClasses(ctx context.Context, id string) ([]models.Class, error) {
	return load(ctx, s.Collection, OpClasses, func(ctx context.Context) ([]models.Class, error) {
		return s.api.Classes(ctx, id)
	}, func(classes []models.Class) {
		s.classes = copyOf(classes)
	})
}

// Classes returns the last loaded class list.
func (s *TeacherStore) Classes() []models.Class {
	var out []models.Class
	s.read(func() { out = copyOf(s.classes) })
	return out
}
