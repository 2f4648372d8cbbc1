package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phonecompany/telebill/internal/domain/errors"
	"github.com/phonecompany/telebill/internal/domain/values"
)

// service wires the log source, parser and calculator into one billing run
type service struct {
	source     LogSource
	parser     Parser
	calculator Calculator
	logger     *zap.Logger
}

// Service computes the total amount due for a call log on disk
type Service interface {
	CalculateTotalCost(ctx context.Context, path string) (values.Money, error)
}

// NewService creates a billing service
func NewService(source LogSource, parser Parser, calculator Calculator, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		source:     source,
		parser:     parser,
		calculator: calculator,
		logger:     logger,
	}
}

// CalculateTotalCost reads the call log at path and returns the rounded total.
// An empty path fails fast; read failures surface wrapped from the source.
func (s *service) CalculateTotalCost(ctx context.Context, path string) (values.Money, error) {
	if strings.TrimSpace(path) == "" {
		return values.Money{}, errors.ErrInvalidFilePath
	}

	runID := uuid.New()
	start := time.Now()

	rawLog, err := s.source.Read(ctx, path)
	if err != nil {
		return values.Money{}, errors.Wrap(err, "loading call log")
	}

	total := s.calculator.CalculateLog(rawLog)

	s.logger.Info("billing run completed",
		zap.String("run_id", runID.String()),
		zap.String("path", path),
		zap.String("total", total.StringWithCode()),
		zap.Duration("elapsed", time.Since(start)))

	return total, nil
}
