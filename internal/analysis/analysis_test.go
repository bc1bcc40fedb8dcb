package analysis_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), analysis.Document{}.Size())
	assert.Equal(t, int64(4), analysis.Document{Data: []byte("%PDF")}.Size())
}

func TestProcessorFunc(t *testing.T) {
	t.Parallel()

	var gotIdentity, gotMode string
	p := analysis.ProcessorFunc(func(ctx context.Context, doc analysis.Document, identity, mode string) (*analysis.Report, error) {
		gotIdentity, gotMode = identity, mode
		return &analysis.Report{FileName: doc.FileName}, nil
	})

	report, err := p.Process(context.Background(), analysis.Document{FileName: "resume.pdf"}, "user@example.com", "skills")

	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", report.FileName)
	assert.Equal(t, "user@example.com", gotIdentity)
	assert.Equal(t, "skills", gotMode)
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		analysis.ErrIO,
		analysis.ErrEmptyDocument,
		analysis.ErrUnsupportedMode,
		analysis.ErrInvalidResponse,
		analysis.ErrContentBlocked,
		analysis.ErrTransientFailure,
		analysis.ErrInvalidConfig,
	}

	for _, sentinel := range sentinels {
		wrapped := fmt.Errorf("analyze resume.pdf: %w", sentinel)
		assert.True(t, errors.Is(wrapped, sentinel), "%v should survive wrapping", sentinel)
		for _, other := range sentinels {
			if other != sentinel {
				assert.False(t, errors.Is(wrapped, other), "%v must not match %v", sentinel, other)
			}
		}
	}
}
