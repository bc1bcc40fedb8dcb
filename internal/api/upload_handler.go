package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/careerbooster/cv-api/internal/api/shared"
	"github.com/careerbooster/cv-api/internal/platform/logger"
	"github.com/careerbooster/cv-api/internal/platform/metrics"
	"github.com/careerbooster/cv-api/internal/redact"
)

const (
	// PDFContentType is the only content type accepted for uploads.
	PDFContentType = "application/pdf"

	// DefaultMaxUploadBytes caps the uploaded file size when no limit is configured.
	DefaultMaxUploadBytes int64 = 10 << 20

	// multipartOverheadBytes is allowed on top of the file limit for part
	// headers, boundaries and form fields.
	multipartOverheadBytes int64 = 1 << 20

	fileFieldName         = "file"
	analysisTypeFieldName = "analysisType"
)

// UploadHandler serves POST /api/cv/upload.
type UploadHandler struct {
	processor      analysis.Processor
	metrics        metrics.Recorder
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewUploadHandler creates a new UploadHandler. A non-positive maxUploadBytes
// selects DefaultMaxUploadBytes.
func NewUploadHandler(
	processor analysis.Processor,
	recorder metrics.Recorder,
	maxUploadBytes int64,
	logger *slog.Logger,
) *UploadHandler {
	if processor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("processor cannot be nil for UploadHandler")
	}
	if recorder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("metrics recorder cannot be nil for UploadHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UploadHandler")
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	return &UploadHandler{
		processor:      processor,
		metrics:        recorder,
		logger:         logger.With(slog.String("component", "upload_handler")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/cv/upload requests.
// It validates the multipart "file" part, hands the PDF to the processor on
// behalf of the authenticated caller and returns the processor's report.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// The auth middleware resolved the caller; this is the only place it is read.
	identity, _ := shared.IdentityFromContext(r.Context())

	log.Info("received CV upload request",
		slog.String("url", r.URL.String()),
		slog.String("method", r.Method),
		slog.String("content_type", r.Header.Get("Content-Type")),
		slog.String("analysis_type", r.URL.Query().Get(analysisTypeFieldName)))

	report, size, uploadErr := h.handleUpload(w, r, identity, log)

	if uploadErr != nil {
		h.metrics.ObserveUpload(uploadErr.Kind.Outcome(), size, time.Since(start))

		var opts []shared.ResponseOption
		if uploadErr.Kind == KindUnauthenticated {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
		shared.RespondWithErrorAndLog(w, r, uploadErr.Kind.Status(), uploadErr.Envelope(), uploadErr, opts...)
		return
	}

	h.metrics.ObserveUpload(metrics.OutcomeSuccess, size, time.Since(start))
	log.Info("CV processed successfully",
		slog.String("report_id", report.ID.String()),
		slog.String("analysis_type", report.AnalysisType),
		slog.Duration("duration", time.Since(start)))
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// handleUpload runs the validation sequence and the processor call. It returns
// the declared file size for metrics even on failure.
func (h *UploadHandler) handleUpload(
	w http.ResponseWriter,
	r *http.Request,
	identity string,
	log *slog.Logger,
) (*analysis.Report, int64, *UploadError) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverheadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, 0, h.classifyParseError(err)
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("failed to remove multipart temp files", slog.String("error", redact.Error(err)))
		}
	}()

	file, header, err := r.FormFile(fileFieldName)
	if err != nil {
		return nil, 0, errNoFile(err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	analysisType := analysisTypeFrom(r)

	log.Info("uploaded file details",
		slog.String("file_name", header.Filename),
		slog.Int64("file_size", header.Size),
		slog.String("file_content_type", contentType),
		slog.String("analysis_type", analysisType))

	if header.Size == 0 {
		return nil, 0, errNoFile(nil)
	}

	if header.Size > h.maxUploadBytes {
		return nil, header.Size, errFileTooLarge(h.maxUploadBytes, nil)
	}

	if contentType != PDFContentType {
		return nil, header.Size, errInvalidFileType(contentType)
	}

	if identity == "" {
		return nil, header.Size, errUnauthenticated()
	}

	data, err := readFile(file)
	if err != nil {
		return nil, header.Size, errProcessing(err)
	}

	doc := analysis.Document{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}

	report, err := h.processor.Process(r.Context(), doc, identity, analysisType)
	if err != nil {
		return nil, doc.Size(), classifyProcessorError(err)
	}
	if report == nil {
		return nil, doc.Size(), errUnexpected(errors.New("processor returned no report"))
	}

	return report, doc.Size(), nil
}

func (h *UploadHandler) classifyParseError(err error) *UploadError {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return errFileTooLarge(h.maxUploadBytes, err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errProcessing(fmt.Errorf("reading upload: %w", err))
	default:
		// Not multipart, missing boundary or a broken part: nothing usable was sent.
		return errNoFile(err)
	}
}

// analysisTypeFrom prefers the query string over the multipart form value.
func analysisTypeFrom(r *http.Request) string {
	if v := r.URL.Query().Get(analysisTypeFieldName); v != "" {
		return v
	}
	if r.MultipartForm != nil {
		if values := r.MultipartForm.Value[analysisTypeFieldName]; len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func readFile(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: reading uploaded file: %w", analysis.ErrIO, err)
	}
	return data, nil
}
