package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
	"github.com/noah-isme/tutor-marketplace-api/pkg/export"
	"github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"
)

type scheduleListerMock struct {
	slots map[int64][]models.ClassSchedule
	err   error
}

func (m *scheduleListerMock) ListSchedules(ctx context.Context, classID int64) ([]models.ClassSchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slots[classID], nil
}

func exportSchedules() *scheduleListerMock {
	slot := func(day int, from, to string) models.ClassSchedule {
		return models.ClassSchedule{ClassID: 1, WeekDay: day, From: timeofday.MustEncode(from), To: timeofday.MustEncode(to)}
	}
	return &scheduleListerMock{slots: map[int64][]models.ClassSchedule{
		1: {slot(1, "08:00", "09:30"), slot(1, "09:00", "10:00"), slot(1, "09:30", "11:00"), slot(2, "09:00", "12:00")},
	}}
}

func newExportServiceForTest(repo *mockClassRepo) *ExportService {
	return newExportServiceWithSchedules(repo, exportSchedules())
}

func newExportServiceWithSchedules(repo *mockClassRepo, schedules scheduleLister) *ExportService {
	classes := NewClassService(repo, nil, nil, nil)
	svc := NewExportService(classes, schedules, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 12, 30, 0, 0, time.UTC) }
	return svc
}

func exportRepo() *mockClassRepo {
	return &mockClassRepo{results: []models.ClassSearchResult{
		{ID: 1, Subject: "Física", Cost: 80, TutorID: 3, Name: "Ana", Whatsapp: "5511", Bio: "Loves optics"},
	}}
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportServiceForTest(exportRepo())
	req := SearchClassesRequest{Subject: "Física", WeekDay: "1", Time: "09:30"}

	file, err := svc.ExportClasses(context.Background(), req, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "classes_Física_1_0930_20240506_123000.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Class,Subject,Cost,Tutor,WhatsApp,Bio,Available", lines[0])
	assert.Equal(t, "1,Física,80.00,Ana,5511,Loves optics,09:00-10:00; 09:30-11:00", lines[1])
}

func TestExportServiceWithoutSchedules(t *testing.T) {
	svc := newExportServiceWithSchedules(exportRepo(), nil)

	file, err := svc.ExportClasses(context.Background(), SearchClassesRequest{Subject: "Física", WeekDay: "1", Time: "09:30"}, "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1,Física,80.00,Ana,5511,Loves optics,", lines[1])
}

func TestExportServiceScheduleFailure(t *testing.T) {
	svc := newExportServiceWithSchedules(exportRepo(), &scheduleListerMock{err: errors.New("connection reset")})

	_, err := svc.ExportClasses(context.Background(), SearchClassesRequest{Subject: "Física", WeekDay: "1", Time: "09:30"}, "csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest(exportRepo())
	req := SearchClassesRequest{Subject: "Física", WeekDay: "1", Time: "09:30"}

	file, err := svc.ExportClasses(context.Background(), req, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF-"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	repo := exportRepo()
	svc := newExportServiceForTest(repo)

	_, err := svc.ExportClasses(context.Background(), SearchClassesRequest{Subject: "Física", WeekDay: "1", Time: "09:30"}, "xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.searchCalls)
}

func TestExportServiceMissingFilters(t *testing.T) {
	repo := exportRepo()
	svc := newExportServiceForTest(repo)

	_, err := svc.ExportClasses(context.Background(), SearchClassesRequest{Subject: "Física"}, "csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrMissingSearchParameter)
	assert.Zero(t, repo.searchCalls)
}

func TestExportTitle(t *testing.T) {
	filter := models.ClassSearchFilter{Subject: "Química", WeekDay: 0, Time: 1439}
	assert.Equal(t, "Química classes on Sunday at 23:59", exportTitle(filter))
}
