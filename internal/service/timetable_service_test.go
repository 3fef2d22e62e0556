package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edfast/timetable-api/internal/dto"
	"github.com/edfast/timetable-api/internal/models"
	appErrors "github.com/edfast/timetable-api/pkg/errors"
	"github.com/edfast/timetable-api/pkg/storage"
)

const flatScheduleCSV = `Class,Day,Course,Section,Type,Time
Room1,Monday,CS101,CS-A,Theory,09:00-10:30
Room1,Monday,CS101,CS-A,Theory,09:00-10:30
Room2,Monday,MA201,MA-B,Theory,10:00-11:00
Lab 3,Thursday,Networks Lab,CS-A,Lab,14:00-16:45
`

func newTestTimetableService() *TimetableService {
	return NewTimetableService(nil, TimetableConfig{}, nil, nil, nil)
}

func ingestFlatCSV(t *testing.T, svc *TimetableService) *models.Timetable {
	t.Helper()
	timetable, err := svc.Ingest(dto.UploadTimetableRequest{Files: []dto.UploadFile{
		{Name: "schedule.csv", Data: []byte(flatScheduleCSV)},
	}})
	require.NoError(t, err)
	return timetable
}

func TestIngestFlatCSV(t *testing.T) {
	svc := newTestTimetableService()

	timetable := ingestFlatCSV(t, svc)

	assert.NotEmpty(t, timetable.ID)
	require.Len(t, timetable.Files, 1)
	assert.Equal(t, "schedule.csv", timetable.Files[0].Filename)
	assert.Equal(t, 4, timetable.Files[0].Report.RowsBefore)
	assert.Equal(t, 3, timetable.Files[0].Report.RowsAfter, "exact duplicate collapses")
	require.Len(t, timetable.Entries, 3)
}

func TestIngestRejectsEmptyBatch(t *testing.T) {
	svc := newTestTimetableService()

	_, err := svc.Ingest(dto.UploadTimetableRequest{})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyUpload.Code, appErrors.FromError(err).Code)
}

func TestIngestAllFilesUnparseable(t *testing.T) {
	svc := newTestTimetableService()

	_, err := svc.Ingest(dto.UploadTimetableRequest{Files: []dto.UploadFile{
		{Name: "notes.txt", Data: []byte("hello")},
	}})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
}

func TestIngestSkipsBrokenFileKeepsGoodOne(t *testing.T) {
	svc := newTestTimetableService()

	timetable, err := svc.Ingest(dto.UploadTimetableRequest{Files: []dto.UploadFile{
		{Name: "broken.xlsx", Data: []byte("not a workbook")},
		{Name: "schedule.csv", Data: []byte(flatScheduleCSV)},
	}})

	require.NoError(t, err)
	require.Len(t, timetable.Files, 1)
	assert.Equal(t, "schedule.csv", timetable.Files[0].Filename)
	assert.Len(t, timetable.Entries, 3)
}

func TestGetAndDelete(t *testing.T) {
	svc := newTestTimetableService()
	timetable := ingestFlatCSV(t, svc)

	got, err := svc.Get(timetable.ID)
	require.NoError(t, err)
	assert.Equal(t, timetable.Entries, got.Entries)

	require.NoError(t, svc.Delete(timetable.ID))

	_, err = svc.Get(timetable.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Delete(timetable.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteRemovesRetainedUploads(t *testing.T) {
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewTimetableService(files, TimetableConfig{}, nil, nil, nil)

	timetable := ingestFlatCSV(t, svc)
	require.Len(t, timetable.Files, 1)
	stored := timetable.Files[0].StoredPath
	require.NotEmpty(t, stored)
	_, err = os.Stat(filepath.Join(dir, stored))
	require.NoError(t, err, "raw upload retained on disk")

	require.NoError(t, svc.Delete(timetable.ID))

	_, err = os.Stat(filepath.Join(dir, stored))
	assert.True(t, os.IsNotExist(err), "retained file removed with the timetable")
}

func TestListSummaries(t *testing.T) {
	svc := newTestTimetableService()
	assert.Empty(t, svc.List())

	timetable := ingestFlatCSV(t, svc)

	summaries := svc.List()
	require.Len(t, summaries, 1)
	assert.Equal(t, timetable.ID, summaries[0].ID)
}

func TestFilterEntries(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday"},
		{Course: "MA201", Section: "MA-B", Day: "Monday"},
		{Course: "CS102", Section: "CS-C", Day: "Tuesday"},
	}

	byCourse := FilterEntries(entries, []string{"CS101"}, nil)
	require.Len(t, byCourse, 1)
	assert.Equal(t, "CS101", byCourse[0].Course)

	byDept := FilterEntries(entries, nil, []string{"CS"})
	require.Len(t, byDept, 2)

	both := FilterEntries(entries, []string{"CS101", "MA201"}, []string{"MA"})
	require.Len(t, both, 1)
	assert.Equal(t, "MA201", both[0].Course)

	assert.Len(t, FilterEntries(entries, nil, nil), 3)
}

func TestComputeStats(t *testing.T) {
	svc := newTestTimetableService()
	timetable := ingestFlatCSV(t, svc)

	stats, err := svc.Stats(timetable.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalClasses)
	assert.Equal(t, 3, stats.UniqueCourses)
	assert.Equal(t, 2, stats.TheoryClasses)
	assert.Equal(t, 1, stats.LabClasses)
	assert.Equal(t, 2, stats.DaysWithClasses)
	assert.Equal(t, 3, stats.UniqueRooms)
}

func TestExportCSV(t *testing.T) {
	svc := newTestTimetableService()
	timetable := ingestFlatCSV(t, svc)

	data, contentType, err := svc.Export(timetable.ID, "csv")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Class,Day,Course,Section,Type,Time", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "CS101")
}

func TestExportPDF(t *testing.T) {
	svc := newTestTimetableService()
	timetable := ingestFlatCSV(t, svc)

	data, contentType, err := svc.Export(timetable.ID, "pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newTestTimetableService()
	timetable := ingestFlatCSV(t, svc)

	_, _, err := svc.Export(timetable.ID, "xml")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
