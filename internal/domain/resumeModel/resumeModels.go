package resumeModel

type Resume struct {
	Name           string              `json:"name" yaml:"name"`
	Title          string              `json:"title" yaml:"title"`
	Contact        Contact             `json:"contact" yaml:"contact"`
	Summary        string              `json:"summary" yaml:"summary"`
	Skills         map[string][]string `json:"skills" yaml:"skills"`
	Experience     []Experience        `json:"experience" yaml:"experience"`
	Projects       []Project           `json:"projects" yaml:"projects"`
	Education      []Education         `json:"education" yaml:"education"`
	Certifications []Certification     `json:"certifications" yaml:"certifications"`
	Languages      []string            `json:"languages" yaml:"languages"`
	// RawText is only set for resumes extracted from pdf or word documents.
	RawText string `json:"raw_text,omitempty" yaml:"-"`
}

type Contact struct {
	Location string `json:"location" yaml:"location"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email"`
	Website  string `json:"website" yaml:"website"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
}

type Experience struct {
	Company      string   `json:"company" yaml:"company"`
	Role         string   `json:"role" yaml:"role"`
	Duration     string   `json:"duration" yaml:"duration"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

type Project struct {
	Name        string `json:"name" yaml:"name"`
	Duration    string `json:"duration" yaml:"duration"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Score       string `json:"score" yaml:"score"`
	Duration    string `json:"duration" yaml:"duration"`
}

type Certification struct {
	Name     string `json:"name" yaml:"name"`
	Provider string `json:"provider" yaml:"provider"`
	Year     string `json:"year" yaml:"year"`
}
