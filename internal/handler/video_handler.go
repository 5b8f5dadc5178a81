package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// VideoHandler exposes video upload and the curriculum selections.
type VideoHandler struct {
	validate *validator.Validate
}

// NewVideoHandler constructs VideoHandler.
func NewVideoHandler(validate *validator.Validate) *VideoHandler {
	return &VideoHandler{validate: validate}
}

// Upload godoc
// @Summary Upload a video file with its metadata
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Video file"
// @Param title formData string true "Title"
// @Param module_id formData string false "Module ID"
// @Param class_id formData string false "Class ID"
// @Param is_free formData bool false "Free preview"
// @Success 201 {object} response.Envelope
// @Router /videos/upload [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	var input dto.UploadVideoInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if !validInput(c, h.validate, &input) {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Invalid(c, map[string]string{"file": "Campo obrigatório"})
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable file"))
		return
	}
	defer file.Close() //nolint:errcheck

	s := stores.Videos
	video, err := s.Upload(c.Request.Context(), input, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusCreated, s.Snapshot(), map[string]interface{}{"entity": video})
}

// ByModule godoc
// @Summary Videos of a module
// @Tags Videos
// @Produce json
// @Param moduleId path string true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /videos/module/{moduleId} [get]
func (h *VideoHandler) ByModule(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Videos
	if _, err := s.LoadByModule(c.Request.Context(), c.Param("moduleId")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.ByModule())
		return
	}
	response.OK(c, s.ByModule())
}

// ByClass godoc
// @Summary Videos of a class
// @Tags Videos
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /videos/class/{classId} [get]
func (h *VideoHandler) ByClass(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Videos
	if _, err := s.LoadByClass(c.Request.Context(), c.Param("classId")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.ByClass())
		return
	}
	response.OK(c, s.ByClass())
}

// Free godoc
// @Summary Free preview videos
// @Tags Videos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /videos/free [get]
func (h *VideoHandler) Free(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Videos
	if _, err := s.LoadFree(c.Request.Context()); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Free())
		return
	}
	response.OK(c, s.Free())
}
