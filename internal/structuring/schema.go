package structuring

import "github.com/google/generative-ai-go/genai"

// responseSchema declares the target structure for the structuring service.
// It mirrors types.Resume: the top-level sections are required (possibly
// empty-valued); contact scalars are optional and default to empty strings
// during normalization.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     {Type: genai.TypeString},
			"location": {Type: genai.TypeString},
			"email":    {Type: genai.TypeString},
			"phone":    {Type: genai.TypeString},
			"github":   {Type: genai.TypeString},
			"linkedin": {Type: genai.TypeString},
			"summary":  {Type: genai.TypeString},
			"skills": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {Type: genai.TypeString},
						"skills":   {Type: genai.TypeString, Description: "Comma-joined skill list"},
					},
					Required: []string{"category", "skills"},
				},
			},
			"experiences": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"role":     {Type: genai.TypeString},
						"company":  {Type: genai.TypeString},
						"type":     {Type: genai.TypeString, Description: "Employment type, e.g. Full-time"},
						"date":     {Type: genai.TypeString},
						"location": {Type: genai.TypeString},
						"bullets": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
					Required: []string{"role", "company", "date", "bullets"},
				},
			},
			"projects": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString},
						"date":  {Type: genai.TypeString},
						"description": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"tech": {Type: genai.TypeString, Description: "Comma-joined technology list"},
					},
					Required: []string{"title", "description", "tech"},
				},
			},
			"education": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"degree":      {Type: genai.TypeString},
					"institution": {Type: genai.TypeString},
					"date":        {Type: genai.TypeString},
					"grade":       {Type: genai.TypeString},
				},
				Required: []string{"degree", "institution", "date"},
			},
		},
		Required: []string{"name", "summary", "skills", "experiences", "projects", "education"},
	}
}
