package api

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/college-portal/internal/domain"
)

// ListSubjects handles GET /api/subjects.
func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.repo.ListSubjects(r.Context())
	if err != nil {
		slog.Error("Failed to list subjects", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list subjects")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"subjects": nonNil(subjects)})
}

// ListNotes handles GET /api/notes?semester=&subject=.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	var filter domain.NoteFilter
	q := r.URL.Query()
	if v := q.Get("semester"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "invalid semester")
			return
		}
		filter.Semester = n
	}
	if v := q.Get("subject"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "invalid subject")
			return
		}
		filter.SubjectID = n
	}

	notes, err := h.repo.ListNotes(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list notes", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"notes":             nonNil(notes),
		"selected_semester": filter.Semester,
		"selected_subject":  filter.SubjectID,
	})
}

// DownloadNote handles GET /api/notes/{id}/download.
func (h *Handler) DownloadNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	note, err := h.repo.GetNote(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load note", "note_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load note")
		return
	}
	if note == nil {
		Error(w, http.StatusNotFound, "note not found")
		return
	}

	if err := h.repo.IncrementNoteDownloads(r.Context(), id); err != nil {
		slog.Warn("Failed to count note download", "note_id", id, "error", err)
	}
	h.serveFile(w, r, note.FileName, note.OriginalName, note.UploadedAt)
}

// ListNotices handles GET /api/notices.
func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.repo.ListNotices(r.Context(), 0)
	if err != nil {
		slog.Error("Failed to list notices", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list notices")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"notices": nonNil(notices)})
}

// DownloadNotice handles GET /api/notices/{id}/download.
func (h *Handler) DownloadNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	notice, err := h.repo.GetNotice(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load notice", "notice_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load notice")
		return
	}
	if notice == nil || !notice.HasFile() {
		Error(w, http.StatusNotFound, "notice attachment not found")
		return
	}
	h.serveFile(w, r, notice.FileName, notice.OriginalName, notice.PostedAt)
}

// ListRoadmaps handles GET /api/placement/roadmaps.
func (h *Handler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	roadmaps, err := h.repo.ListRoadmaps(r.Context())
	if err != nil {
		slog.Error("Failed to list roadmaps", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list roadmaps")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"roadmaps": nonNil(roadmaps)})
}

// GetRoadmap handles GET /api/placement/roadmaps/{career_path}.
func (h *Handler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	careerPath := chi.URLParam(r, "career_path")
	roadmap, err := h.repo.GetRoadmap(r.Context(), careerPath)
	if err != nil {
		slog.Error("Failed to load roadmap", "career_path", careerPath, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load roadmap")
		return
	}
	if roadmap == nil {
		Error(w, http.StatusNotFound, "roadmap not found")
		return
	}
	JSON(w, http.StatusOK, roadmap)
}

// serveFile streams a stored upload as an attachment named downloadName.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, stored, downloadName string, modTime time.Time) {
	f, err := h.files.Open(stored)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			Error(w, http.StatusNotFound, "file not found")
			return
		}
		slog.Error("Failed to open stored file", "file", stored, "error", err)
		Error(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer f.Close()

	if downloadName == "" {
		downloadName = filepath.Base(stored)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": downloadName}))
	if ctype := mime.TypeByExtension(filepath.Ext(downloadName)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	http.ServeContent(w, r, downloadName, modTime, f)
}
