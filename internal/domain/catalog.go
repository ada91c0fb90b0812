package domain

import "time"

// Subject is a course offered in a given semester.
type Subject struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Semester int    `json:"semester"`
}

// Note is an uploaded study resource.
type Note struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	SubjectID     int64     `json:"subject_id"`
	SubjectName   string    `json:"subject_name,omitempty"`
	Semester      int       `json:"semester,omitempty"`
	FileName      string    `json:"-"`
	OriginalName  string    `json:"file_name"`
	Description   string    `json:"description,omitempty"`
	UploadedBy    int64     `json:"uploaded_by"`
	UploadedAt    time.Time `json:"uploaded_at"`
	DownloadCount int       `json:"download_count"`
}

// NoteFilter narrows a note listing. Zero values match everything.
type NoteFilter struct {
	Semester  int
	SubjectID int64
}

// Notice is a college announcement.
type Notice struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	FileName     string    `json:"-"`
	OriginalName string    `json:"file_name,omitempty"`
	PostedBy     int64     `json:"posted_by"`
	PostedAt     time.Time `json:"posted_at"`
	IsImportant  bool      `json:"is_important"`
}

// HasFile returns true if the notice carries an attachment.
func (n *Notice) HasFile() bool {
	return n.FileName != ""
}

// PlacementRoadmap describes the skills and learning order for a career path.
type PlacementRoadmap struct {
	ID                int64    `json:"id"`
	CareerPath        string   `json:"career_path" yaml:"career_path"`
	Title             string   `json:"title" yaml:"title"`
	Description       string   `json:"description" yaml:"description"`
	Skills            []string `json:"skills" yaml:"skills"`
	Tools             []string `json:"tools" yaml:"tools"`
	LearningOrder     []string `json:"learning_order" yaml:"learning_order"`
	EstimatedDuration string   `json:"estimated_duration" yaml:"estimated_duration"`
}

// CareerPaths lists the supported roadmap identifiers.
var CareerPaths = []string{
	"data_analyst",
	"ai_ml_engineer",
	"web_developer",
	"software_engineer",
	"cybersecurity",
}
