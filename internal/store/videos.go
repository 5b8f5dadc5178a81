package store

import (
	"context"
	"io"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// VideoAPI is the video service.
type VideoAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Video], error)
	Get(ctx context.Context, id string) (*models.Video, error)
	Create(ctx context.Context, input dto.VideoInput) (*models.Video, error)
	Update(ctx context.Context, id string, input dto.VideoInput) (*models.Video, error)
	Delete(ctx context.Context, id string) error
	Upload(ctx context.Context, input dto.UploadVideoInput, filename, contentType string, content io.Reader) (*models.Video, error)
	ByModule(ctx context.Context, moduleID string) ([]models.Video, error)
	ByClass(ctx context.Context, classID string) ([]models.Video, error)
	Free(ctx context.Context) ([]models.Video, error)
}

// ModuleAPI is the curriculum module service.
type ModuleAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Module], error)
	Get(ctx context.Context, id string) (*models.Module, error)
	Create(ctx context.Context, input dto.ModuleInput) (*models.Module, error)
	Update(ctx context.Context, id string, input dto.ModuleInput) (*models.Module, error)
	Delete(ctx context.Context, id string) error
}

// VideoStore holds training videos and the module, class and free selections.
type VideoStore struct {
	*Collection[models.Video, dto.VideoInput]

	api      VideoAPI
	byModule []models.Video
	byClass  []models.Video
	free     []models.Video
}

// NewVideoStore constructs a video store.
func NewVideoStore(api VideoAPI, opts Options) *VideoStore {
	endpoints := Endpoints[models.Video, dto.VideoInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("vídeos", "vídeo"), map[Op]string{
		OpUpload:   "Erro ao enviar vídeo",
		OpByModule: "Erro ao carregar vídeos do módulo",
		OpByClass:  "Erro ao carregar vídeos da turma",
		OpFree:     "Erro ao carregar vídeos gratuitos",
	})
	return &VideoStore{
		Collection: NewCollection("videos", endpoints, videoKey, messages, opts),
		api:        api,
	}
}

// Upload sends a video file, prepends the created entity and refetches the page.
func (s *VideoStore) Upload(ctx context.Context, input dto.UploadVideoInput, filename, contentType string, content io.Reader) (*models.Video, error) {
	var video *models.Video
	err := s.run(OpUpload, false, func() error {
		var err error
		video, err = s.api.Upload(ctx, input, filename, contentType, content)
		return err
	}, func(st *State[models.Video]) {
		st.Items = append([]models.Video{*video}, st.Items...)
	})
	if err != nil {
		return nil, err
	}
	s.resync(ctx, OpUpload)
	return video, nil
}

// LoadByModule loads the videos of a module.
func (s *VideoStore) LoadByModule(ctx context.Context, moduleID string) ([]models.Video, error) {
	return load(ctx, s.Collection, OpByModule, func(ctx context.Context) ([]models.Video, error) {
		return s.api.ByModule(ctx, moduleID)
	}, func(videos []models.Video) {
		s.byModule = copyOf(videos)
	})
}

// LoadByClass loads the videos attached to a class.
func (s *VideoStore) LoadByClass(ctx context.Context, classID string) ([]models.Video, error) {
	return load(ctx, s.Collection, OpByClass, func(ctx context.Context) ([]models.Video, error) {
		return s.api.ByClass(ctx, classID)
	}, func(videos []models.Video) {
		s.byClass = copyOf(videos)
	})
}

// LoadFree loads the videos open to every student.
func (s *VideoStore) LoadFree(ctx context.Context) ([]models.Video, error) {
	return load(ctx, s.Collection, OpFree, s.api.Free, func(videos []models.Video) {
		s.free = copyOf(videos)
	})
}

// ByModule returns the last loaded module selection.
func (s *VideoStore) ByModule() []models.Video {
	var out []models.Video
	s.read(func() { out = copyOf(s.byModule) })
	return out
}

// ByClass returns the last loaded class selection.
func (s *VideoStore) ByClass() []models.Video {
	var out []models.Video
	s.read(func() { out = copyOf(s.byClass) })
	return out
}

// Free returns the last loaded free videos.
func (s *VideoStore) Free() []models.Video {
	var out []models.Video
	s.read(func() { out = copyOf(s.free) })
	return out
}

// ModuleStore holds curriculum modules.
type ModuleStore struct {
	*Collection[models.Module, dto.ModuleInput]
}

// NewModuleStore constructs a module store.
func NewModuleStore(api ModuleAPI, opts Options) *ModuleStore {
	endpoints := Endpoints[models.Module, dto.ModuleInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	return &ModuleStore{
		Collection: NewCollection("modules", endpoints, moduleKey, crudMessages("módulos", "módulo"), opts),
	}
}
