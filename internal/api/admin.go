package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/validation"
)

const (
	recentQueriesLimit = 10
	multipartOverhead  = 1 << 20
)

type noteUpload struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	SubjectID   int64  `json:"subject_id" validate:"required,min=1"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type noticeUpload struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Content     string `json:"content" validate:"required,notblank"`
	IsImportant bool   `json:"is_important"`
}

// AdminStats handles GET /api/admin/stats.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminStats(r)
	if err != nil {
		slog.Error("Failed to load admin stats", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	JSON(w, http.StatusOK, stats)
}

func (h *Handler) adminStats(r *http.Request) (map[string]any, error) {
	ctx := r.Context()
	students, err := h.repo.CountUsersByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	notes, err := h.repo.CountNotes(ctx)
	if err != nil {
		return nil, err
	}
	notices, err := h.repo.CountNotices(ctx)
	if err != nil {
		return nil, err
	}
	queries, err := h.repo.CountQueries(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := h.repo.ListRecentQueries(ctx, recentQueriesLimit)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_students": students,
		"total_notes":    notes,
		"total_notices":  notices,
		"total_queries":  queries,
		"recent_queries": nonNil(recent),
	}, nil
}

// UploadNote handles POST /api/admin/notes (multipart: title, subject_id,
// description, file).
func (h *Handler) UploadNote(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	subjectID, _ := strconv.ParseInt(r.FormValue("subject_id"), 10, 64)
	req := noteUpload{
		Title:       strings.TrimSpace(r.FormValue("title")),
		SubjectID:   subjectID,
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if !h.validForm(w, &req) {
		return
	}

	subject, err := h.repo.GetSubject(r.Context(), req.SubjectID)
	if err != nil {
		slog.Error("Failed to load subject", "subject_id", req.SubjectID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to upload note")
		return
	}
	if subject == nil {
		ValidationError(w, validation.NewError("subject_id", "subject does not exist"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ValidationError(w, validation.NewError("file", "this field is required"))
		return
	}
	defer file.Close()

	stored, ok := h.saveUpload(w, filestore.CategoryNotes, header, file)
	if !ok {
		return
	}

	note := &domain.Note{
		Title:        req.Title,
		SubjectID:    subject.ID,
		SubjectName:  subject.Name,
		Semester:     subject.Semester,
		FileName:     stored,
		OriginalName: header.Filename,
		Description:  req.Description,
		UploadedBy:   identity.UserIDFromContext(r.Context()),
	}
	if err := h.repo.CreateNote(r.Context(), note); err != nil {
		slog.Error("Failed to create note", "title", note.Title, "error", err)
		h.discardUpload(stored)
		Error(w, http.StatusInternalServerError, "failed to upload note")
		return
	}

	slog.Info("Note uploaded", "note_id", note.ID, "subject", subject.Code, "size", header.Size)
	JSON(w, http.StatusCreated, map[string]any{
		"message": "Note uploaded successfully!",
		"note":    note,
	})
}

// PostNotice handles POST /api/admin/notices (multipart: title, content,
// is_important, optional file).
func (h *Handler) PostNotice(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	important, _ := strconv.ParseBool(r.FormValue("is_important"))
	if r.FormValue("is_important") == "on" {
		important = true
	}
	req := noticeUpload{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Content:     strings.TrimSpace(r.FormValue("content")),
		IsImportant: important,
	}
	if !h.validForm(w, &req) {
		return
	}

	notice := &domain.Notice{
		Title:       req.Title,
		Content:     req.Content,
		PostedBy:    identity.UserIDFromContext(r.Context()),
		IsImportant: req.IsImportant,
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		stored, ok := h.saveUpload(w, filestore.CategoryNotices, header, file)
		if !ok {
			return
		}
		notice.FileName = stored
		notice.OriginalName = header.Filename
	case !errors.Is(err, http.ErrMissingFile):
		Error(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	if err := h.repo.CreateNotice(r.Context(), notice); err != nil {
		slog.Error("Failed to create notice", "title", notice.Title, "error", err)
		if notice.HasFile() {
			h.discardUpload(notice.FileName)
		}
		Error(w, http.StatusInternalServerError, "failed to post notice")
		return
	}

	slog.Info("Notice posted", "notice_id", notice.ID, "important", notice.IsImportant)
	JSON(w, http.StatusCreated, map[string]any{
		"message": "Notice posted successfully!",
		"notice":  notice,
	})
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	limit := h.maxUpload + multipartOverhead
	if r.ContentLength > limit {
		Error(w, http.StatusRequestEntityTooLarge, "file too large")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return false
		}
		Error(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	return true
}

func (h *Handler) validForm(w http.ResponseWriter, v any) bool {
	if err := h.validator.Struct(v); err != nil {
		if vErr, ok := validation.AsError(err); ok {
			ValidationError(w, vErr)
			return false
		}
		Error(w, http.StatusBadRequest, "invalid form")
		return false
	}
	return true
}

func (h *Handler) saveUpload(w http.ResponseWriter, category string, header *multipart.FileHeader, file multipart.File) (string, bool) {
	stored, err := h.files.Save(category, header.Filename, file)
	if errors.Is(err, filestore.ErrTooLarge) {
		Error(w, http.StatusRequestEntityTooLarge, "file too large")
		return "", false
	}
	if err != nil {
		slog.Error("Failed to store upload", "category", category, "error", err)
		Error(w, http.StatusInternalServerError, "failed to store file")
		return "", false
	}
	return stored, true
}

// discardUpload removes a stored file whose database row was never written.
func (h *Handler) discardUpload(stored string) {
	if err := h.files.Remove(stored); err != nil {
		slog.Warn("Failed to remove orphaned upload", "file", stored, "error", err)
	}
}
