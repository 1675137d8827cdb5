// Package types provides type definitions for structured data used throughout the resume-studio system.
package types

// SkillGroup represents a named skill category with a free-text, comma-joined
// skill list. The list is presentational text, not a structured set.
type SkillGroup struct {
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

// Experience represents a single work experience entry.
type Experience struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Type     string   `json:"type,omitempty"`
	Date     string   `json:"date"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets"`
}

// Project represents a single project entry.
type Project struct {
	Title       string   `json:"title"`
	Date        string   `json:"date,omitempty"`
	Description []string `json:"description"`
	Tech        string   `json:"tech"`
}

// Education is a singleton section; unlike the list sections it is always
// rendered, so its fields degrade individually rather than as a group.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
	Grade       string `json:"grade,omitempty"`
}

// Resume is the canonical in-memory representation of a resume. It is the
// single source of truth for a session and is only ever replaced wholesale:
// every producer (structuring response, JSON import) yields a complete new
// instance. No field is required to be non-empty; the rendering layer decides
// presence via its validity predicate.
type Resume struct {
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	GitHub      string       `json:"github"`
	LinkedIn    string       `json:"linkedin"`
	Summary     string       `json:"summary"`
	Skills      []SkillGroup `json:"skills"`
	Experiences []Experience `json:"experiences"`
	Projects    []Project    `json:"projects"`
	Education   Education    `json:"education"`
}

// Normalize defensively defaults every sequence field so the renderer never
// sees a nil slice. Missing strings already decode to "". Mutates in place
// and returns the receiver for chaining.
func (r *Resume) Normalize() *Resume {
	if r.Skills == nil {
		r.Skills = []SkillGroup{}
	}
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	for i := range r.Experiences {
		if r.Experiences[i].Bullets == nil {
			r.Experiences[i].Bullets = []string{}
		}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Description == nil {
			r.Projects[i].Description = []string{}
		}
	}
	return r
}

// Clone returns a deep copy. Renderers and export receive clones so no
// consumer can mutate session state in place.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r

	out.Skills = make([]SkillGroup, len(r.Skills))
	copy(out.Skills, r.Skills)

	out.Experiences = make([]Experience, len(r.Experiences))
	for i, exp := range r.Experiences {
		bullets := make([]string, len(exp.Bullets))
		copy(bullets, exp.Bullets)
		exp.Bullets = bullets
		out.Experiences[i] = exp
	}

	out.Projects = make([]Project, len(r.Projects))
	for i, proj := range r.Projects {
		desc := make([]string, len(proj.Description))
		copy(desc, proj.Description)
		proj.Description = desc
		out.Projects[i] = proj
	}

	return &out
}
