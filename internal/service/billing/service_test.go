package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	domainerrors "github.com/phonecompany/telebill/internal/domain/errors"
)

// stubSource returns canned log content or a canned error
type stubSource struct {
	content  string
	err      error
	lastPath string
}

func (s *stubSource) Read(ctx context.Context, path string) (string, error) {
	s.lastPath = path
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func newTestService(t *testing.T, source LogSource) Service {
	t.Helper()
	parser := NewLogParser(testLayout, nil)
	calc := newTestCalculator(t)
	return NewService(source, parser, calc, zap.NewNop())
}

func TestService_CalculateTotalCost(t *testing.T) {
	ctx := context.Background()

	t.Run("computes total from source content", func(t *testing.T) {
		source := &stubSource{
			content: "420607607607,18-11-2021 12:56:00,18-11-2021 13:13:13\n" +
				"420721721721,25-10-2021 19:44:00,26-10-2021 01:05:01\n" +
				"420721721721,25-10-2021 09:45:25,25-10-2021 09:48:00",
		}
		svc := newTestService(t, source)

		total, err := svc.CalculateTotalCost(ctx, "calls.csv")

		require.NoError(t, err)
		assert.Equal(t, "7.60", total.String())
		assert.Equal(t, "calls.csv", source.lastPath)
	})

	t.Run("empty source content yields zero", func(t *testing.T) {
		svc := newTestService(t, &stubSource{content: ""})

		total, err := svc.CalculateTotalCost(ctx, "calls.csv")

		require.NoError(t, err)
		assert.Equal(t, "0.00", total.String())
	})

	t.Run("empty path fails fast without touching the source", func(t *testing.T) {
		source := &stubSource{content: "unused"}
		svc := newTestService(t, source)

		_, err := svc.CalculateTotalCost(ctx, "   ")

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidFilePath)
		assert.Empty(t, source.lastPath)
	})

	t.Run("source failure surfaces wrapped", func(t *testing.T) {
		readErr := errors.New("disk gone")
		svc := newTestService(t, &stubSource{err: readErr})

		_, err := svc.CalculateTotalCost(ctx, "calls.csv")

		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
	})
}

func TestNewService_NilLogger(t *testing.T) {
	svc := NewService(&stubSource{}, NewLogParser(testLayout, nil), newTestCalculator(t), nil)

	assert.NotPanics(t, func() {
		_, _ = svc.CalculateTotalCost(context.Background(), "calls.csv")
	})
}
