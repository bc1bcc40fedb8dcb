package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file as received by the API.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Size returns the document length in bytes.
func (d Document) Size() int64 {
	return int64(len(d.Data))
}

// Report is the result of analyzing a CV. The API returns it to the client
// exactly as produced. Recommendations is the model's plain-text summary, which
// the mobile client displays verbatim.
type Report struct {
	ID              uuid.UUID       `json:"id"`
	UserEmail       string          `json:"userEmail"`
	FileName        string          `json:"fileName"`
	AnalysisType    string          `json:"analysisType"`
	Model           string          `json:"model,omitempty"`
	Analysis        json.RawMessage `json:"analysis"`
	Recommendations string          `json:"recommendations,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Processor analyzes an uploaded CV on behalf of an authenticated caller.
// This interface serves as a boundary between the HTTP layer and the
// external AI/LLM service doing the actual work.
type Processor interface {
	// Process analyzes doc for the caller identified by identity.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - doc: The uploaded document, already validated as a non-empty PDF
	//   - identity: The caller's email as resolved from the bearer token
	//   - mode: Optional analysis type; its accepted values are defined by the implementation
	//
	// Returns:
	//   - The analysis report
	//   - An error if processing fails (see errors.go for specific types)
	Process(ctx context.Context, doc Document, identity string, mode string) (*Report, error)
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
type ProcessorFunc func(ctx context.Context, doc Document, identity string, mode string) (*Report, error)

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, doc Document, identity string, mode string) (*Report, error) {
	return f(ctx, doc, identity, mode)
}
