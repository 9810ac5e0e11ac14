package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Recorder is the write-side interface other modules depend on.
type Recorder interface {
	Record(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{}) error
}

// Reader is the read side of the trail, used by the handler.
type Reader interface {
	History(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error)
}

// Service implements Recorder over the repository.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

var _ Recorder = (*Service)(nil)
var _ Reader = (*Service)(nil)

// NewService creates a new audit service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("audit")}
}

// Record appends an audit entry. Details are optional and stored as JSON.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{}) error {
	entry := &Entry{
		UserID: userID,
		Action: action,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to marshal audit details, recording without them",
				zap.String("action", action), zap.Error(err))
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to write audit entry",
			zap.String("action", action),
			zap.String("userID", userID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// History returns the most recent entries for a user.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error) {
	return s.repo.FindByUserID(ctx, userID, limit)
}
