package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/record"
	"github.com/kailas-cloud/patchscout/internal/metrics"
)

// Service predicts categories for new patch-note text.
type Service struct {
	model  Model
	logger *zap.Logger
}

// New creates a classify service.
func New(model Model, logger *zap.Logger) *Service {
	return &Service{model: model, logger: logger}
}

// Predict returns the predicted label for text.
func (s *Service) Predict(_ context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required: %w", domain.ErrInvalidRequest)
	}
	if len(text) > record.MaxTextSize {
		return "", fmt.Errorf("text too long (max %d bytes): %w", record.MaxTextSize, domain.ErrInvalidRequest)
	}

	label := s.model.Predict(text)
	metrics.PredictionsTotal.WithLabelValues(label).Inc()
	s.logger.Debug("predicted category", zap.String("label", label), zap.Int("text_len", len(text)))
	return label, nil
}

// Classes returns the labels the model can predict.
func (s *Service) Classes() []string {
	return s.model.Classes()
}
