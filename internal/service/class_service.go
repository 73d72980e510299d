package service

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
	"github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"
)

type classRepository interface {
	Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassSearchResult, error)
	Register(ctx context.Context, reg models.ClassRegistration) (*models.Class, error)
}

type classMetrics interface {
	ObserveDBQuery(label string, duration time.Duration)
	ObserveSearchResults(count int)
	RecordRegistration(result string)
}

// SearchClassesRequest holds the raw query string filters.
type SearchClassesRequest struct {
	Subject string `form:"subject"`
	WeekDay string `form:"week_day"`
	Time    string `form:"time"`
}

// ScheduleEntryRequest is one weekly slot of a registration payload.
type ScheduleEntryRequest struct {
	WeekDay *int   `json:"week_day" validate:"required,min=0,max=6"`
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
}

// RegisterClassRequest captures the tutor profile, the class and its schedule.
type RegisterClassRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Avatar   string                 `json:"avatar" validate:"required,url"`
	Whatsapp string                 `json:"whatsapp" validate:"required"`
	Bio      string                 `json:"bio" validate:"required"`
	Subject  string                 `json:"subject" validate:"required,subject"`
	Cost     float64                `json:"cost" validate:"gt=0"`
	Schedule []ScheduleEntryRequest `json:"schedule" validate:"min=1,dive"`
}

// ClassService coordinates availability search and class registration.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	metrics   classMetrics
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, validate *validator.Validate, metrics classMetrics, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ClassService{repo: repo, validator: validate, metrics: metrics, logger: logger}
	svc.validator.RegisterTagNameFunc(jsonFieldName)
	svc.validator.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return models.Subject(fl.Field().String()).Valid()
	})
	return svc
}

// ParseSearch turns raw filters into a ClassSearchFilter without touching the store.
func ParseSearch(req SearchClassesRequest) (models.ClassSearchFilter, error) {
	subject := strings.TrimSpace(req.Subject)
	weekDay := strings.TrimSpace(req.WeekDay)
	at := strings.TrimSpace(req.Time)
	if subject == "" || weekDay == "" || at == "" {
		return models.ClassSearchFilter{}, appErrors.Clone(appErrors.ErrMissingSearchParameter, "")
	}

	day, err := strconv.Atoi(weekDay)
	if err != nil || day < models.MinWeekDay || day > models.MaxWeekDay {
		return models.ClassSearchFilter{}, appErrors.Clone(appErrors.ErrValidation, "week_day must be an integer between 0 and 6")
	}

	minutes, err := timeofday.Encode(at)
	if err != nil {
		return models.ClassSearchFilter{}, appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, appErrors.ErrInvalidTimeFormat.Message)
	}

	return models.ClassSearchFilter{Subject: subject, WeekDay: day, Time: minutes}, nil
}

// Search returns every class available on the requested weekday and time.
func (s *ClassService) Search(ctx context.Context, req SearchClassesRequest) ([]models.ClassSearchResult, error) {
	filter, err := ParseSearch(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := s.repo.Search(ctx, filter)
	s.observeQuery("search_classes", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search classes")
	}
	if s.metrics != nil {
		s.metrics.ObserveSearchResults(len(results))
	}
	return results, nil
}

// Register validates the payload and persists tutor, class and schedule atomically.
// Storage failures are reported as the opaque REGISTRATION_FAILED error.
func (s *ClassService) Register(ctx context.Context, req RegisterClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		s.recordRegistration(RegistrationRejected)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, describeValidation(err))
	}

	reg := models.ClassRegistration{
		Tutor: models.Tutor{
			Name:     strings.TrimSpace(req.Name),
			Avatar:   strings.TrimSpace(req.Avatar),
			Whatsapp: strings.TrimSpace(req.Whatsapp),
			Bio:      req.Bio,
		},
		Subject:  req.Subject,
		Cost:     req.Cost,
		Schedule: make([]models.ScheduleEntry, len(req.Schedule)),
	}
	for i, entry := range req.Schedule {
		reg.Schedule[i] = models.ScheduleEntry{WeekDay: *entry.WeekDay, From: strings.TrimSpace(entry.From), To: strings.TrimSpace(entry.To)}
	}

	start := time.Now()
	class, err := s.repo.Register(ctx, reg)
	s.observeQuery("register_class", start)
	if err != nil {
		s.logger.Error("class registration failed",
			zap.String("subject", reg.Subject),
			zap.Int("slots", len(reg.Schedule)),
			zap.Error(err),
		)
		s.recordRegistration(RegistrationFailed)
		return nil, appErrors.Clone(appErrors.ErrRegistrationFailed, "")
	}

	s.recordRegistration(RegistrationSucceeded)
	s.logger.Info("class registered", zap.Int64("class_id", class.ID), zap.Int64("tutor_id", class.TutorID))
	return class, nil
}

func (s *ClassService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func (s *ClassService) recordRegistration(result string) {
	if s.metrics != nil {
		s.metrics.RecordRegistration(result)
	}
}

// describeValidation names the first failing field for the client message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := first.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		return "invalid " + field + ": failed " + first.Tag()
	}
	return appErrors.ErrValidation.Message
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
