package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edfast/timetable-api/internal/dto"
	"github.com/edfast/timetable-api/internal/models"
	"github.com/edfast/timetable-api/internal/service"
	appErrors "github.com/edfast/timetable-api/pkg/errors"
	"github.com/edfast/timetable-api/pkg/response"
)

var allowedExtensions = map[string]struct{}{
	".xlsx": {},
	".csv":  {},
}

type timetableManager interface {
	Ingest(req dto.UploadTimetableRequest) (*models.Timetable, error)
	Get(id string) (*models.Timetable, error)
	List() []models.TimetableSummary
	Delete(id string) error
	Filter(id string, req dto.FilterTimetableRequest) ([]models.ScheduleEntry, error)
	Stats(id string) (*models.ScheduleStats, error)
	Export(id, format string) ([]byte, string, error)
}

type conflictChecker interface {
	Check(universe []models.ScheduleEntry, courses, sections []string) *models.ConflictReport
}

type scheduleOptimizer interface {
	Optimize(universe []models.ScheduleEntry, courses []string) *models.OptimizedSchedule
}

// TimetableHandler exposes timetable ingestion and engine endpoints.
type TimetableHandler struct {
	timetables  timetableManager
	conflicts   conflictChecker
	optimizer   scheduleOptimizer
	maxFileSize int64
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(timetables *service.TimetableService, conflicts *service.ConflictService, optimizer *service.OptimizerService, maxFileSize int64) *TimetableHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	return &TimetableHandler{
		timetables:  timetables,
		conflicts:   conflicts,
		optimizer:   optimizer,
		maxFileSize: maxFileSize,
	}
}

// Upload godoc
// @Summary Upload and parse timetable spreadsheets
// @Description Accepts one or more xlsx/csv files, normalizes and cleans them into a stored timetable.
// @Tags Timetables
// @Accept mpfd
// @Produce json
// @Param files formData file true "Timetable files (xlsx or csv)"
// @Success 201 {object} response.Envelope
// @Router /timetables [post]
func (h *TimetableHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart payload"))
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		response.Error(c, appErrors.ErrEmptyUpload)
		return
	}

	req := dto.UploadTimetableRequest{Files: make([]dto.UploadFile, 0, len(headers))}
	for _, header := range headers {
		if header.Filename == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if _, ok := allowedExtensions[ext]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedFile,
				fmt.Sprintf("invalid file type: %s. Allowed: xlsx, csv", header.Filename)))
			return
		}
		if header.Size > h.maxFileSize {
			response.Error(c, appErrors.Clone(appErrors.ErrFileTooLarge,
				fmt.Sprintf("%s exceeds the upload size limit", header.Filename)))
			return
		}
		data, err := readUpload(header, h.maxFileSize)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
			return
		}
		req.Files = append(req.Files, dto.UploadFile{Name: header.Filename, Data: data})
	}

	timetable, err := h.timetables.Ingest(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.UploadTimetableResponse{
		ID:      timetable.ID,
		Files:   timetable.Files,
		Entries: timetable.Entries,
	})
}

// List godoc
// @Summary List stored timetables
// @Tags Timetables
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.timetables.List())
}

// Get godoc
// @Summary Fetch a stored timetable's entries
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.timetables.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable)
}

// Delete godoc
// @Summary Delete a stored timetable
// @Tags Timetables
// @Param id path string true "Timetable ID"
// @Success 204
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.timetables.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Filter godoc
// @Summary Filter timetable entries by course and department
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param payload body dto.FilterTimetableRequest true "Filter payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/filter [post]
func (h *TimetableHandler) Filter(c *gin.Context) {
	var req dto.FilterTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter payload"))
		return
	}
	entries, err := h.timetables.Filter(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}

// Conflicts godoc
// @Summary Detect time-overlap conflicts for selected courses
// @Tags Engine
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param payload body dto.ConflictCheckRequest true "Conflict check payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/conflicts [post]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict check payload"))
		return
	}
	if len(req.Courses) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courses must contain at least one entry"))
		return
	}
	timetable, err := h.timetables.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	report := h.conflicts.Check(timetable.Entries, req.Courses, req.Sections)
	response.JSON(c, http.StatusOK, report)
}

// Optimize godoc
// @Summary Build a conflict-minimal personal schedule
// @Tags Engine
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param payload body dto.OptimizeScheduleRequest true "Optimize payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/optimize [post]
func (h *TimetableHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid optimize payload"))
		return
	}
	if len(req.Courses) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courses must contain at least one entry"))
		return
	}
	timetable, err := h.timetables.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result := h.optimizer.Optimize(timetable.Entries, req.Courses)
	response.JSON(c, http.StatusOK, result)
}

// Stats godoc
// @Summary Aggregate statistics over a stored timetable
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/stats [get]
func (h *TimetableHandler) Stats(c *gin.Context) {
	stats, err := h.timetables.Stats(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Export godoc
// @Summary Export a stored timetable as CSV or PDF
// @Tags Timetables
// @Produce octet-stream
// @Param id path string true "Timetable ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {string} string "file"
// @Router /timetables/{id}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	id := c.Param("id")
	format := c.DefaultQuery("format", "csv")
	data, contentType, err := h.timetables.Export(id, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("timetable_%s.%s", id, strings.ToLower(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func readUpload(header *multipart.FileHeader, limit int64) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck
	return io.ReadAll(io.LimitReader(file, limit+1))
}
