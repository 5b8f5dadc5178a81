package service

import (
	"context"
	"io"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
)

// VideoService wraps the /videos endpoints.
type VideoService struct {
	api    apiClient
	videos resource[models.Video]
}

// NewVideoService constructs the video service.
func NewVideoService(api apiClient) *VideoService {
	return &VideoService{api: api, videos: newResource[models.Video](api, "videos")}
}

func (s *VideoService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Video], error) {
	return s.videos.list(ctx, query)
}

func (s *VideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	return s.videos.get(ctx, id)
}

func (s *VideoService) Create(ctx context.Context, input dto.VideoInput) (*models.Video, error) {
	return s.videos.create(ctx, input)
}

func (s *VideoService) Update(ctx context.Context, id string, input dto.VideoInput) (*models.Video, error) {
	return s.videos.update(ctx, id, input)
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	return s.videos.delete(ctx, id)
}

// Upload sends a video file with its metadata as multipart form data.
func (s *VideoService) Upload(ctx context.Context, input dto.UploadVideoInput, filename, contentType string, content io.Reader) (*models.Video, error) {
	raw, err := s.api.Upload(ctx, "videos/upload", input.Fields(), apiclient.File{
		Field:       "video",
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.Video](raw)
}

// ByModule lists the videos of a curriculum module.
func (s *VideoService) ByModule(ctx context.Context, moduleID string) ([]models.Video, error) {
	return s.videos.slice(ctx, "module", moduleID)
}

// ByClass lists the videos attached to a class.
func (s *VideoService) ByClass(ctx context.Context, classID string) ([]models.Video, error) {
	return s.videos.slice(ctx, "class", classID)
}

// Free lists videos available without enrolment.
func (s *VideoService) Free(ctx context.Context) ([]models.Video, error) {
	return s.videos.slice(ctx, "free")
}

// ModuleService wraps the /modules endpoints.
type ModuleService struct {
	modules resource[models.Module]
}

// NewModuleService constructs the module service.
func NewModuleService(api apiClient) *ModuleService {
	return &ModuleService{modules: newResource[models.Module](api, "modules")}
}

func (s *ModuleService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Module], error) {
	return s.modules.list(ctx, query)
}

func (s *ModuleService) Get(ctx context.Context, id string) (*models.Module, error) {
	return s.modules.get(ctx, id)
}

func (s *ModuleService) Create(ctx context.Context, input dto.ModuleInput) (*models.Module, error) {
	return s.modules.create(ctx, input)
}

func (s *ModuleService) Update(ctx context.Context, id string, input dto.ModuleInput) (*models.Module, error) {
	return s.modules.update(ctx, id, input)
}

func (s *ModuleService) Delete(ctx context.Context, id string) error {
	return s.modules.delete(ctx, id)
}
