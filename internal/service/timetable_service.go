package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edfast/timetable-api/internal/dto"
	"github.com/edfast/timetable-api/internal/ingest"
	"github.com/edfast/timetable-api/internal/models"
	appErrors "github.com/edfast/timetable-api/pkg/errors"
	"github.com/edfast/timetable-api/pkg/export"
)

// exportHeaders is the column order of the serialization contract.
var exportHeaders = []string{"Class", "Day", "Course", "Section", "Type", "Time"}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// TimetableConfig tunes ingestion and retention.
type TimetableConfig struct {
	Parser       ingest.Config
	StoreTTL     time.Duration
	RetentionTTL time.Duration
}

// TimetableService owns the upload → normalize → clean → store pipeline and
// the read-side operations over stored timetables (filter, stats, export).
type TimetableService struct {
	store     *timetableStore
	files     fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       TimetableConfig
}

// NewTimetableService wires the ingestion pipeline.
func NewTimetableService(files fileStorage, cfg TimetableConfig, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StoreTTL <= 0 {
		cfg.StoreTTL = 24 * time.Hour
	}
	return &TimetableService{
		store:     newTimetableStore(cfg.StoreTTL),
		files:     files,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Ingest parses every uploaded file into canonical entries, cleans and
// deduplicates the combined result, and stores it under a fresh ID. A file
// that fails to parse contributes nothing instead of failing the batch; raw
// bytes are retained on disk for troubleshooting.
func (s *TimetableService) Ingest(req dto.UploadTimetableRequest) (*models.Timetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrEmptyUpload.Code, appErrors.ErrEmptyUpload.Status, "no files provided")
	}

	timetable := models.Timetable{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	var combined []models.ScheduleEntry
	for _, file := range req.Files {
		entries, stats, err := s.parseFile(file)
		if err != nil {
			s.logger.Warn("skipping unparseable upload",
				zap.String("filename", file.Name),
				zap.Error(err),
			)
			continue
		}

		cleaned, report := ingest.Clean(entries)
		s.metrics.RecordParse(len(cleaned), stats.Skipped, report.RowsBefore-report.RowsAfter)

		stored := ""
		if s.files != nil {
			stored, err = s.files.Save(fmt.Sprintf("%s_%s", timetable.ID, filepath.Base(file.Name)), file.Data)
			if err != nil {
				s.logger.Warn("failed to retain upload file", zap.String("filename", file.Name), zap.Error(err))
			}
		}

		timetable.Files = append(timetable.Files, models.UploadedFile{
			Filename:   file.Name,
			StoredPath: stored,
			Entries:    len(cleaned),
			Report:     report,
		})
		combined = append(combined, cleaned...)
	}

	if len(timetable.Files) == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFile, "no file could be parsed; allowed types: xlsx, csv")
	}

	// Files may repeat each other's rows; dedup once more across the batch.
	timetable.Entries, _ = ingest.Clean(combined)

	s.store.Save(timetable)
	s.logger.Info("timetable ingested",
		zap.String("timetable_id", timetable.ID),
		zap.Int("files", len(timetable.Files)),
		zap.Int("entries", len(timetable.Entries)),
	)
	return &timetable, nil
}

func (s *TimetableService) parseFile(file dto.UploadFile) ([]models.ScheduleEntry, ingest.SheetStats, error) {
	switch strings.ToLower(filepath.Ext(file.Name)) {
	case ".xlsx":
		return ingest.ParseWorkbookReader(bytes.NewReader(file.Data), s.cfg.Parser)
	case ".csv":
		entries, err := ingest.ParseFlatCSV(bytes.NewReader(file.Data))
		return entries, ingest.SheetStats{Parsed: 1}, err
	default:
		return nil, ingest.SheetStats{}, fmt.Errorf("unsupported extension %q", filepath.Ext(file.Name))
	}
}

// Get returns a stored timetable.
func (s *TimetableService) Get(id string) (*models.Timetable, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found or expired")
	}
	return &t, nil
}

// List returns summaries of all live timetables.
func (s *TimetableService) List() []models.TimetableSummary {
	items := s.store.List()
	summaries := make([]models.TimetableSummary, 0, len(items))
	for _, t := range items {
		summaries = append(summaries, t.Summary())
	}
	return summaries
}

// Delete drops a stored timetable along with its retained raw files.
func (s *TimetableService) Delete(id string) error {
	t, ok := s.store.Get(id)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "timetable not found or expired")
	}
	s.store.Delete(id)
	if s.files != nil {
		for _, f := range t.Files {
			if f.StoredPath == "" {
				continue
			}
			if err := s.files.Delete(f.StoredPath); err != nil {
				s.logger.Warn("failed to delete retained upload",
					zap.String("path", f.StoredPath), zap.Error(err))
			}
		}
	}
	return nil
}

// Filter narrows a timetable's entries by course names and department
// prefixes. Either filter may be empty, in which case it passes everything.
func (s *TimetableService) Filter(id string, req dto.FilterTimetableRequest) ([]models.ScheduleEntry, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return FilterEntries(t.Entries, req.Courses, req.Departments), nil
}

// FilterEntries applies course and department filters over an explicit
// universe. Departments match the first two characters of the section code.
func FilterEntries(entries []models.ScheduleEntry, courses, departments []string) []models.ScheduleEntry {
	courseSet := make(map[string]struct{})
	for _, c := range courses {
		if c = strings.TrimSpace(c); c != "" {
			courseSet[c] = struct{}{}
		}
	}
	deptSet := make(map[string]struct{})
	for _, d := range departments {
		if d = strings.TrimSpace(d); d != "" {
			deptSet[d] = struct{}{}
		}
	}

	filtered := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if len(courseSet) > 0 {
			if _, ok := courseSet[strings.TrimSpace(e.Course)]; !ok {
				continue
			}
		}
		if len(deptSet) > 0 {
			section := e.Section
			if len(section) > 2 {
				section = section[:2]
			}
			if _, ok := deptSet[section]; !ok {
				continue
			}
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Stats aggregates counts over a stored timetable.
func (s *TimetableService) Stats(id string) (*models.ScheduleStats, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(t.Entries)
	return &stats, nil
}

// ComputeStats derives the aggregate counts for a cleaned schedule.
func ComputeStats(entries []models.ScheduleEntry) models.ScheduleStats {
	courses := make(map[string]struct{})
	days := make(map[string]struct{})
	rooms := make(map[string]struct{})
	stats := models.ScheduleStats{TotalClasses: len(entries)}
	for _, e := range entries {
		courses[e.Course] = struct{}{}
		days[e.Day] = struct{}{}
		rooms[e.Room] = struct{}{}
		switch e.Kind {
		case models.KindLab:
			stats.LabClasses++
		default:
			stats.TheoryClasses++
		}
	}
	stats.UniqueCourses = len(courses)
	stats.DaysWithClasses = len(days)
	stats.UniqueRooms = len(rooms)
	return stats
}

// Export renders a stored timetable as CSV or PDF bytes.
func (s *TimetableService) Export(id, format string) ([]byte, string, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, "", err
	}

	dataset := entriesToDataset(t.Entries)
	switch strings.ToLower(format) {
	case "csv", "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return data, "text/csv", nil
	case "pdf":
		data, err := s.pdf.Render(dataset, "Weekly Timetable")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func entriesToDataset(entries []models.ScheduleEntry) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Class":   e.Room,
			"Day":     e.Day,
			"Course":  e.Course,
			"Section": e.Section,
			"Type":    string(e.Kind),
			"Time":    e.TimeSlot,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

// CleanupUploads removes retained raw files older than the retention TTL.
func (s *TimetableService) CleanupUploads() {
	if s.files == nil || s.cfg.RetentionTTL <= 0 {
		return
	}
	deleted, err := s.files.CleanupOlderThan(s.cfg.RetentionTTL)
	if err != nil {
		s.logger.Warn("upload cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("upload cleanup", zap.Int("deleted", len(deleted)))
	}
}
