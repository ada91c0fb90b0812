package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// UpsertSubject inserts or updates a subject keyed by code.
func (s *SQLiteStore) UpsertSubject(ctx context.Context, subject *domain.Subject) error {
	_, err := s.exec(ctx, "upsert subject", `
		INSERT INTO subjects (name, code, semester) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, semester = excluded.semester`,
		subject.Name, subject.Code, subject.Semester,
	)
	if err != nil {
		return err
	}
	stored, err := s.GetSubjectByCode(ctx, subject.Code)
	if err != nil {
		return err
	}
	if stored != nil {
		subject.ID = stored.ID
	}
	return nil
}

// ListSubjects returns all subjects ordered by semester then name.
func (s *SQLiteStore) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, code, semester FROM subjects ORDER BY semester, name`)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer closeRows(rows, "subjects")

	var subjects []*domain.Subject
	for rows.Next() {
		var sub domain.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Code, &sub.Semester); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}
	return subjects, nil
}

func (s *SQLiteStore) getSubjectWhere(ctx context.Context, where string, arg any) (*domain.Subject, error) {
	var sub domain.Subject
	err := s.db.QueryRowContext(ctx, `SELECT id, name, code, semester FROM subjects WHERE `+where, arg).
		Scan(&sub.ID, &sub.Name, &sub.Code, &sub.Semester)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan subject: %w", err)
	}
	return &sub, nil
}

// GetSubject retrieves a subject by ID.
func (s *SQLiteStore) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	return s.getSubjectWhere(ctx, "id = ?", id)
}

// GetSubjectByCode retrieves a subject by its unique code.
func (s *SQLiteStore) GetSubjectByCode(ctx context.Context, code string) (*domain.Subject, error) {
	return s.getSubjectWhere(ctx, "code = ?", code)
}

const noteSelect = `
	SELECT n.id, n.title, n.subject_id, s.name, s.semester, n.file_name, n.original_name,
	       n.description, n.uploaded_by, n.uploaded_at, n.download_count
	FROM notes n JOIN subjects s ON s.id = n.subject_id`

func scanNote(row interface{ Scan(...any) error }) (*domain.Note, error) {
	var n domain.Note
	var description sql.NullString
	var uploadedAt int64
	if err := row.Scan(
		&n.ID, &n.Title, &n.SubjectID, &n.SubjectName, &n.Semester, &n.FileName, &n.OriginalName,
		&description, &n.UploadedBy, &uploadedAt, &n.DownloadCount,
	); err != nil {
		return nil, err
	}
	n.Description = description.String
	n.UploadedAt = time.Unix(uploadedAt, 0)
	return &n, nil
}

// CreateNote inserts a note.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *domain.Note) error {
	if note.UploadedAt.IsZero() {
		note.UploadedAt = time.Now()
	}
	id, err := s.insert(ctx, "create note", `
		INSERT INTO notes (title, subject_id, file_name, original_name, description, uploaded_by, uploaded_at, download_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.Title, note.SubjectID, note.FileName, note.OriginalName, nullString(note.Description),
		note.UploadedBy, note.UploadedAt.Unix(), note.DownloadCount,
	)
	if err != nil {
		return err
	}
	note.ID = id
	return nil
}

// ListNotes returns notes matching filter, newest first.
func (s *SQLiteStore) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	var conds []string
	var args []any
	if filter.Semester > 0 {
		conds = append(conds, "s.semester = ?")
		args = append(args, filter.Semester)
	}
	if filter.SubjectID > 0 {
		conds = append(conds, "n.subject_id = ?")
		args = append(args, filter.SubjectID)
	}

	query := noteSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY n.uploaded_at DESC, n.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer closeRows(rows, "notes")

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a note by ID.
func (s *SQLiteStore) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	n, err := scanNote(s.db.QueryRowContext(ctx, noteSelect+" WHERE n.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return n, nil
}

// NoteExists reports whether a note with title exists for subjectID.
func (s *SQLiteStore) NoteExists(ctx context.Context, title string, subjectID int64) (bool, error) {
	n, err := s.count(ctx, "note exists", `SELECT COUNT(*) FROM notes WHERE title = ? AND subject_id = ?`, title, subjectID)
	return n > 0, err
}

// IncrementNoteDownloads bumps the download counter of a note.
func (s *SQLiteStore) IncrementNoteDownloads(ctx context.Context, id int64) error {
	rows, err := s.exec(ctx, "increment downloads", `UPDATE notes SET download_count = download_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("increment downloads for note %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountNotes returns the number of notes.
func (s *SQLiteStore) CountNotes(ctx context.Context) (int, error) {
	return s.count(ctx, "count notes", `SELECT COUNT(*) FROM notes`)
}

const noticeColumns = `id, title, content, file_name, original_name, posted_by, posted_at, is_important`

func scanNotice(row interface{ Scan(...any) error }) (*domain.Notice, error) {
	var n domain.Notice
	var fileName, originalName sql.NullString
	var postedAt int64
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &fileName, &originalName, &n.PostedBy, &postedAt, &n.IsImportant); err != nil {
		return nil, err
	}
	n.FileName = fileName.String
	n.OriginalName = originalName.String
	n.PostedAt = time.Unix(postedAt, 0)
	return &n, nil
}

// CreateNotice inserts a notice.
func (s *SQLiteStore) CreateNotice(ctx context.Context, notice *domain.Notice) error {
	if notice.PostedAt.IsZero() {
		notice.PostedAt = time.Now()
	}
	id, err := s.insert(ctx, "create notice", `
		INSERT INTO notices (title, content, file_name, original_name, posted_by, posted_at, is_important)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		notice.Title, notice.Content, nullString(notice.FileName), nullString(notice.OriginalName),
		notice.PostedBy, notice.PostedAt.Unix(), boolInt(notice.IsImportant),
	)
	if err != nil {
		return err
	}
	notice.ID = id
	return nil
}

// ListNotices returns notices newest first.
func (s *SQLiteStore) ListNotices(ctx context.Context, limit int) ([]*domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY posted_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("query notices: %w", err)
	}
	defer closeRows(rows, "notices")

	var notices []*domain.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notices: %w", err)
	}
	return notices, nil
}

// GetNotice retrieves a notice by ID.
func (s *SQLiteStore) GetNotice(ctx context.Context, id int64) (*domain.Notice, error) {
	n, err := scanNotice(s.db.QueryRowContext(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan notice: %w", err)
	}
	return n, nil
}

// CountNotices returns the number of notices.
func (s *SQLiteStore) CountNotices(ctx context.Context) (int, error) {
	return s.count(ctx, "count notices", `SELECT COUNT(*) FROM notices`)
}

// UpsertRoadmap inserts or updates a roadmap keyed by career path.
func (s *SQLiteStore) UpsertRoadmap(ctx context.Context, r *domain.PlacementRoadmap) error {
	skills, err := json.Marshal(r.Skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	tools, err := json.Marshal(r.Tools)
	if err != nil {
		return fmt.Errorf("encode tools: %w", err)
	}
	order, err := json.Marshal(r.LearningOrder)
	if err != nil {
		return fmt.Errorf("encode learning order: %w", err)
	}
	duration := r.EstimatedDuration
	if duration == "" {
		duration = "6-12 months"
	}

	_, err = s.exec(ctx, "upsert roadmap", `
		INSERT INTO placement_roadmaps (career_path, title, description, skills, tools, learning_order, estimated_duration)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(career_path) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			skills = excluded.skills,
			tools = excluded.tools,
			learning_order = excluded.learning_order,
			estimated_duration = excluded.estimated_duration`,
		r.CareerPath, r.Title, r.Description, string(skills), string(tools), string(order), duration,
	)
	if err != nil {
		return err
	}
	stored, err := s.GetRoadmap(ctx, r.CareerPath)
	if err != nil {
		return err
	}
	if stored != nil {
		r.ID = stored.ID
		r.EstimatedDuration = stored.EstimatedDuration
	}
	return nil
}

const roadmapColumns = `id, career_path, title, description, skills, tools, learning_order, estimated_duration`

func scanRoadmap(row interface{ Scan(...any) error }) (*domain.PlacementRoadmap, error) {
	var r domain.PlacementRoadmap
	var skills, tools, order string
	if err := row.Scan(&r.ID, &r.CareerPath, &r.Title, &r.Description, &skills, &tools, &order, &r.EstimatedDuration); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw string
		dst *[]string
	}{{skills, &r.Skills}, {tools, &r.Tools}, {order, &r.LearningOrder}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode roadmap list: %w", err)
		}
	}
	return &r, nil
}

// ListRoadmaps returns all roadmaps ordered by ID.
func (s *SQLiteStore) ListRoadmaps(ctx context.Context) ([]*domain.PlacementRoadmap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+roadmapColumns+` FROM placement_roadmaps ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query roadmaps: %w", err)
	}
	defer closeRows(rows, "placement_roadmaps")

	var roadmaps []*domain.PlacementRoadmap
	for rows.Next() {
		r, err := scanRoadmap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roadmap: %w", err)
		}
		roadmaps = append(roadmaps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roadmaps: %w", err)
	}
	return roadmaps, nil
}

// GetRoadmap retrieves a roadmap by career path.
func (s *SQLiteStore) GetRoadmap(ctx context.Context, careerPath string) (*domain.PlacementRoadmap, error) {
	r, err := scanRoadmap(s.db.QueryRowContext(ctx, `SELECT `+roadmapColumns+` FROM placement_roadmaps WHERE career_path = ?`, careerPath))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan roadmap: %w", err)
	}
	return r, nil
}
