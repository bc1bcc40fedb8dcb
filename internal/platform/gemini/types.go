package gemini

import "encoding/json"

// Analysis types understood by the analyzer.
const (
	AnalysisGeneral           = "general_analysis"
	AnalysisSkills            = "skills"
	AnalysisATSCompatibility  = "ats_compatibility"
	AnalysisCareerSuggestions = "career_suggestions"

	// DefaultAnalysisType is used when the caller did not ask for one.
	DefaultAnalysisType = AnalysisGeneral
)

// promptData represents the data passed to the prompt templates
type promptData struct {
	FileName string
}

// responseEnvelope picks the fields of the model answer that are lifted onto
// the report. Everything else stays in the raw analysis JSON.
type responseEnvelope struct {
	// Recommendations is either a single string or a list of strings
	Recommendations json.RawMessage `json:"recommendations"`
}
