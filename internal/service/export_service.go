package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
	"github.com/noah-isme/tutor-marketplace-api/pkg/export"
)

// Export formats accepted by ExportService.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type classSearcher interface {
	Search(ctx context.Context, req SearchClassesRequest) ([]models.ClassSearchResult, error)
}

type scheduleLister interface {
	ListSchedules(ctx context.Context, classID int64) ([]models.ClassSchedule, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var exportHeaders = []string{"Class", "Subject", "Cost", "Tutor", "WhatsApp", "Bio", "Available"}

var weekDayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ExportService renders availability search results as CSV or PDF.
type ExportService struct {
	classes   classSearcher
	schedules scheduleLister
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. A nil schedules leaves the
// Available column blank.
func NewExportService(classes classSearcher, schedules scheduleLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{classes: classes, schedules: schedules, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ExportClasses runs the availability search and renders it in the requested format.
func (s *ExportService) ExportClasses(ctx context.Context, req SearchClassesRequest, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	filter, err := ParseSearch(req)
	if err != nil {
		return nil, err
	}
	results, err := s.classes.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	windows, err := s.availableWindows(ctx, filter, results)
	if err != nil {
		return nil, err
	}

	dataset := buildClassDataset(results, windows)
	var body []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		body, err = s.pdf.Render(dataset, exportTitle(filter))
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error("render class export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    exportFilename(filter, format, s.now()),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// availableWindows lists, per class, the slots covering the searched moment.
func (s *ExportService) availableWindows(ctx context.Context, filter models.ClassSearchFilter, results []models.ClassSearchResult) (map[int64]string, error) {
	windows := make(map[int64]string, len(results))
	if s.schedules == nil {
		return windows, nil
	}
	for _, r := range results {
		slots, err := s.schedules.ListSchedules(ctx, r.ID)
		if err != nil {
			s.logger.Error("list class schedules for export", zap.Int64("class_id", r.ID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class schedules")
		}
		var covering []string
		for _, slot := range slots {
			if slot.Contains(filter.WeekDay, filter.Time) {
				covering = append(covering, slot.From.String()+"-"+slot.To.String())
			}
		}
		windows[r.ID] = strings.Join(covering, "; ")
	}
	return windows, nil
}

func buildClassDataset(results []models.ClassSearchResult, windows map[int64]string) export.Dataset {
	rows := make([]map[string]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, map[string]string{
			"Class":     strconv.FormatInt(r.ID, 10),
			"Subject":   r.Subject,
			"Cost":      strconv.FormatFloat(r.Cost, 'f', 2, 64),
			"Tutor":     r.Name,
			"WhatsApp":  r.Whatsapp,
			"Bio":       r.Bio,
			"Available": windows[r.ID],
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func exportTitle(filter models.ClassSearchFilter) string {
	return fmt.Sprintf("%s classes on %s at %s", filter.Subject, weekDayNames[filter.WeekDay], filter.Time)
}

func exportFilename(filter models.ClassSearchFilter, format string, now time.Time) string {
	return fmt.Sprintf("classes_%s_%d_%s_%s.%s",
		sanitizeFilename(filter.Subject),
		filter.WeekDay,
		strings.ReplaceAll(filter.Time.String(), ":", ""),
		now.UTC().Format("20060102_150405"),
		format,
	)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
