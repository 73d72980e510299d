package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
)

type connectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	Count(ctx context.Context) (int, error)
}

type tutorLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type connectionMetrics interface {
	RecordConnection()
}

// CreateConnectionRequest identifies the tutor a student contacted.
type CreateConnectionRequest struct {
	TutorID int64 `json:"tutor_id" validate:"required,gt=0"`
}

// ConnectionService records and counts student/tutor connections.
type ConnectionService struct {
	repo      connectionRepository
	tutors    tutorLookup
	validator *validator.Validate
	metrics   connectionMetrics
	logger    *zap.Logger
}

// NewConnectionService constructs a ConnectionService.
func NewConnectionService(repo connectionRepository, tutors tutorLookup, validate *validator.Validate, metrics connectionMetrics, logger *zap.Logger) *ConnectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionService{repo: repo, tutors: tutors, validator: validate, metrics: metrics, logger: logger}
}

// Create stores a connection for an existing tutor.
func (s *ConnectionService) Create(ctx context.Context, req CreateConnectionRequest) (*models.Connection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tutor_id is required")
	}
	exists, err := s.tutors.Exists(ctx, req.TutorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}

	conn := &models.Connection{TutorID: req.TutorID}
	if err := s.repo.Create(ctx, conn); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create connection")
	}
	if s.metrics != nil {
		s.metrics.RecordConnection()
	}
	s.logger.Debug("connection recorded", zap.Int64("tutor_id", req.TutorID))
	return conn, nil
}

// Total returns the number of connections made so far.
func (s *ConnectionService) Total(ctx context.Context) (*models.ConnectionTotal, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count connections")
	}
	return &models.ConnectionTotal{Total: total}, nil
}
