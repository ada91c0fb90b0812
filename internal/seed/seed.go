// Package seed loads the built-in subject catalog, placement roadmaps and
// sample notes into the store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// SampleNote is a placeholder note created for a subject code.
type SampleNote struct {
	Title       string `yaml:"title"`
	SubjectCode string `yaml:"subject_code"`
	Description string `yaml:"description"`
}

// Catalog is the built-in data set.
type Catalog struct {
	Subjects []domain.Subject          `yaml:"subjects"`
	Roadmaps []domain.PlacementRoadmap `yaml:"roadmaps"`
	Notes    []SampleNote              `yaml:"notes"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// FileWriter stores placeholder files for sample notes.
type FileWriter interface {
	WriteFile(stored string, data []byte) error
}

// Result counts what Apply changed.
type Result struct {
	Subjects     int
	Roadmaps     int
	NotesCreated int
	NotesSkipped int
}

// Apply upserts subjects and roadmaps, then creates any missing sample notes
// owned by notesOwner. Notes are skipped when notesOwner is zero. Apply is
// safe to run repeatedly.
func Apply(ctx context.Context, c *Catalog, st store.CatalogStore, files FileWriter, notesOwner int64) (*Result, error) {
	res := &Result{}

	for i := range c.Subjects {
		subject := c.Subjects[i]
		if err := st.UpsertSubject(ctx, &subject); err != nil {
			return res, fmt.Errorf("seed subject %s: %w", subject.Code, err)
		}
		res.Subjects++
	}

	for i := range c.Roadmaps {
		roadmap := c.Roadmaps[i]
		if err := st.UpsertRoadmap(ctx, &roadmap); err != nil {
			return res, fmt.Errorf("seed roadmap %s: %w", roadmap.CareerPath, err)
		}
		res.Roadmaps++
	}

	if notesOwner == 0 {
		return res, nil
	}

	for _, sample := range c.Notes {
		subject, err := st.GetSubjectByCode(ctx, sample.SubjectCode)
		if err != nil {
			return res, fmt.Errorf("seed note %q: %w", sample.Title, err)
		}
		if subject == nil {
			slog.Warn("Subject not found for sample note", "code", sample.SubjectCode, "title", sample.Title)
			continue
		}

		exists, err := st.NoteExists(ctx, sample.Title, subject.ID)
		if err != nil {
			return res, fmt.Errorf("seed note %q: %w", sample.Title, err)
		}
		if exists {
			res.NotesSkipped++
			continue
		}

		name := placeholderName(sample)
		if err := files.WriteFile("notes/"+name, placeholderContent(sample)); err != nil {
			return res, fmt.Errorf("write placeholder for %q: %w", sample.Title, err)
		}

		note := &domain.Note{
			Title:        sample.Title,
			SubjectID:    subject.ID,
			FileName:     "notes/" + name,
			OriginalName: name,
			Description:  sample.Description,
			UploadedBy:   notesOwner,
		}
		if err := st.CreateNote(ctx, note); err != nil {
			return res, fmt.Errorf("seed note %q: %w", sample.Title, err)
		}
		res.NotesCreated++
	}

	return res, nil
}

func placeholderName(n SampleNote) string {
	title := n.Title
	if len(title) > 20 {
		title = title[:20]
	}
	title = strings.NewReplacer(" ", "_", "/", "_").Replace(title)
	return n.SubjectCode + "_" + title + ".txt"
}

func placeholderContent(n SampleNote) []byte {
	return []byte(fmt.Sprintf(
		"Sample Notes: %s\n\n%s\n\nThis is a placeholder file. Please upload actual notes through the admin panel.",
		n.Title, n.Description,
	))
}
