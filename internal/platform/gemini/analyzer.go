package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/careerbooster/cv-api/internal/config"
	"github.com/careerbooster/cv-api/internal/platform/logger"
	"github.com/careerbooster/cv-api/internal/redact"
)

const pdfMIMEType = "application/pdf"

// contentGenerator is the subset of genai.Models the analyzer calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Analyzer implements the analysis.Processor interface using
// Google's Gemini API to review CVs.
type Analyzer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// generator issues the generateContent calls
	generator contentGenerator

	// model is the name of the Gemini model to use
	model string

	prompts *promptSet

	maxRetries     int
	baseDelay      time.Duration
	requestTimeout time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ analysis.Processor = (*Analyzer)(nil)

// NewAnalyzer creates an Analyzer backed by a Gemini API client.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and retry settings
//
// Returns:
//   - A properly initialized Analyzer or an error if initialization fails
func NewAnalyzer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", analysis.ErrInvalidConfig, err)
	}

	return newAnalyzer(client.Models, logger, cfg)
}

func newAnalyzer(generator contentGenerator, logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", analysis.ErrInvalidConfig)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	prompts, err := newPromptSet()
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		logger:         logger.With(slog.String("component", "gemini_analyzer")),
		generator:      generator,
		model:          cfg.ModelName,
		prompts:        prompts,
		maxRetries:     cfg.MaxRetries,
		baseDelay:      time.Duration(cfg.RetryDelaySeconds) * time.Second,
		requestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		now:            time.Now,
		sleep:          sleepContext,
	}, nil
}

// Process sends doc to Gemini with the prompt for mode and returns the
// model's JSON answer wrapped in a report for identity.
func (a *Analyzer) Process(
	ctx context.Context,
	doc analysis.Document,
	identity string,
	mode string,
) (*analysis.Report, error) {
	if len(doc.Data) == 0 {
		return nil, analysis.ErrEmptyDocument
	}
	if mode == "" {
		mode = DefaultAnalysisType
	}

	prompt, err := a.prompts.render(mode, promptData{FileName: doc.FileName})
	if err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, a.logger)
	log.InfoContext(ctx, "Analyzing CV",
		"analysis_type", mode,
		"model", a.model,
		"document_size", doc.Size(),
		"prompt_length", len(prompt))

	mimeType := doc.ContentType
	if mimeType == "" {
		mimeType = pdfMIMEType
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(doc.Data, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	answer, err := a.callGeminiWithRetry(ctx, log, contents)
	if err != nil {
		return nil, err
	}

	report := &analysis.Report{
		ID:              uuid.New(),
		UserEmail:       identity,
		FileName:        doc.FileName,
		AnalysisType:    mode,
		Model:           a.model,
		Analysis:        answer,
		Recommendations: extractRecommendations(answer),
		CreatedAt:       a.now().UTC(),
	}

	log.InfoContext(ctx, "CV analysis completed",
		"report_id", report.ID.String(),
		"analysis_type", mode,
		"answer_length", len(answer))

	return report, nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// Transient errors are retried up to maxRetries times with
// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5)). Content blocks and
// malformed answers are returned immediately.
func (a *Analyzer) callGeminiWithRetry(
	ctx context.Context,
	log *slog.Logger,
	contents []*genai.Content,
) (json.RawMessage, error) {
	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		log.DebugContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", a.maxRetries+1)

		answer, err := a.generateOnce(ctx, contents)
		if err == nil {
			log.DebugContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return answer, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			log.WarnContext(ctx, "Gemini API call cancelled",
				"attempt", attemptNum,
				"ctx_err", ctxErr)
			return nil, fmt.Errorf("gemini call aborted: %w", ctxErr)
		}

		log.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", redact.Error(err))

		if !isTransient(err) {
			return nil, fmt.Errorf("gemini call failed: %w", err)
		}

		if attempt >= a.maxRetries {
			log.WarnContext(ctx, "Maximum retry attempts reached", "max_retries", a.maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				analysis.ErrTransientFailure, a.maxRetries, err)
		}

		delay := a.backoff(attempt)
		log.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		if err := a.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("gemini retry wait aborted: %w", err)
		}
	}
}

// generateOnce performs a single bounded generateContent call and interprets the answer.
func (a *Analyzer) generateOnce(ctx context.Context, contents []*genai.Content) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	resp, err := a.generator.GenerateContent(attemptCtx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		return nil, err
	}

	return interpretResponse(resp)
}

// interpretResponse extracts the JSON object answered by the model.
func interpretResponse(resp *genai.GenerateContentResponse) (json.RawMessage, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", analysis.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", analysis.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates generated", analysis.ErrInvalidResponse)
	}

	switch reason := resp.Candidates[0].FinishReason; reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return nil, fmt.Errorf("%w: finish reason %s", analysis.ErrContentBlocked, reason)
	}

	text := trimCodeFence(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty content in response", analysis.ErrInvalidResponse)
	}

	answer := []byte(text)
	if !json.Valid(answer) || !bytes.HasPrefix(answer, []byte("{")) {
		return nil, fmt.Errorf("%w: answer is not a JSON object", analysis.ErrInvalidResponse)
	}

	return json.RawMessage(answer), nil
}

// trimCodeFence strips a markdown ```json fence some models still emit in JSON mode.
func trimCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// extractRecommendations returns the top-level "recommendations" text of the
// answer. A list of strings is joined with newlines.
func extractRecommendations(answer json.RawMessage) string {
	var envelope responseEnvelope
	if err := json.Unmarshal(answer, &envelope); err != nil || len(envelope.Recommendations) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Recommendations, &text); err == nil {
		return text
	}

	var items []string
	if err := json.Unmarshal(envelope.Recommendations, &items); err == nil {
		return strings.Join(items, "\n")
	}

	return ""
}

// isTransient reports whether a failed call is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, analysis.ErrContentBlocked) || errors.Is(err, analysis.ErrInvalidResponse) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	// Network failures and per-attempt timeouts
	return true
}

func (a *Analyzer) backoff(attempt int) time.Duration {
	backoff := float64(a.baseDelay) * math.Pow(2, float64(attempt))
	jitterFactor := 0.5 + rand.Float64()*0.5 // Between 0.5 and 1.0
	return time.Duration(backoff * jitterFactor)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
