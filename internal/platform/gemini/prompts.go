package gemini

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/careerbooster/cv-api/internal/analysis"
)

const systemInstruction = `You are an experienced career advisor and technical recruiter.
You review CVs supplied as PDF documents and answer with a single JSON object only,
without markdown fences or commentary. Base every statement on the document content.
Write in the language the CV is written in.`

// promptTemplates holds one template per analysis type. Every answer carries a
// "recommendations" field that the mobile client shows as plain text.
var promptTemplates = map[string]string{
	AnalysisGeneral: `Review the attached CV "{{.FileName}}" as a whole.
Return JSON with this shape:
{
  "score": <integer 0-100, overall quality>,
  "sections": {
    "contact":    {"present": <bool>, "score": <integer 0-100>},
    "summary":    {"present": <bool>, "score": <integer 0-100>},
    "experience": {"present": <bool>, "score": <integer 0-100>},
    "education":  {"present": <bool>, "score": <integer 0-100>},
    "skills":     {"present": <bool>, "score": <integer 0-100>}
  },
  "strengths": [<string>],
  "weaknesses": [<string>],
  "recommendations": <string, a short paragraph of concrete improvements>
}`,

	AnalysisSkills: `Extract and assess the skills in the attached CV "{{.FileName}}".
Return JSON with this shape:
{
  "technicalSkills": [{"name": <string>, "level": "beginner" | "intermediate" | "advanced"}],
  "softSkills": [<string>],
  "missingSkills": [<string, skills commonly expected for the candidate's target roles>],
  "recommendations": <string>
}`,

	AnalysisATSCompatibility: `Evaluate how well the attached CV "{{.FileName}}" would be parsed by
applicant tracking systems.
Return JSON with this shape:
{
  "atsScore": <integer 0-100>,
  "issues": [{"problem": <string>, "fix": <string>}],
  "keywords": {"found": [<string>], "suggested": [<string>]},
  "recommendations": <string>
}`,

	AnalysisCareerSuggestions: `Suggest next career steps for the author of the attached CV "{{.FileName}}".
Return JSON with this shape:
{
  "suggestedRoles": [{"title": <string>, "reason": <string>}],
  "courses": [{"title": <string>, "topic": <string>}],
  "recommendations": <string>
}`,
}

// promptSet renders the prompt for an analysis type.
type promptSet struct {
	templates map[string]*template.Template
}

func newPromptSet() (*promptSet, error) {
	set := &promptSet{templates: make(map[string]*template.Template, len(promptTemplates))}
	for name, text := range promptTemplates {
		tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s prompt template: %v", analysis.ErrInvalidConfig, name, err)
		}
		set.templates[name] = tmpl
	}
	return set, nil
}

// render executes the template for mode. Unknown modes yield
// analysis.ErrUnsupportedMode.
func (p *promptSet) render(mode string, data promptData) (string, error) {
	tmpl, ok := p.templates[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", analysis.ErrUnsupportedMode, mode)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", mode, err)
	}

	prompt := strings.TrimSpace(buf.String())
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}
