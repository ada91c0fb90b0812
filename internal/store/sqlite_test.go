package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/college-portal/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func createUser(t *testing.T, repo Repository, username string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@college.test",
		PasswordHash: "hash",
		Role:         role,
	}
	var profile *domain.StudentProfile
	if role == domain.RoleStudent {
		profile = &domain.StudentProfile{Branch: "CSE", AttendancePercentage: 80}
	}
	require.NoError(t, repo.CreateUser(context.Background(), user, profile))
	return user
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)

	alice := createUser(t, repo, "alice", domain.RoleStudent)
	assert.NotZero(t, alice.ID)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, domain.RoleStudent, got.Role)

	byEmail, err := repo.GetUserByEmail(ctx, "alice@college.test")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := repo.GetUser(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	profile, err := repo.GetStudentProfile(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.Semester)
	assert.Equal(t, "CSE", profile.Branch)

	dup := &domain.User{Username: "alice", Email: "other@college.test", PasswordHash: "x"}
	err = repo.CreateUser(ctx, dup, nil)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, repo.UpdatePassword(ctx, alice.ID, "new-hash"))
	require.NoError(t, repo.UpdateRole(ctx, alice.ID, domain.RoleAdmin))
	got, err = repo.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.True(t, got.IsAdmin())

	createUser(t, repo, "bob", domain.RoleStudent)
	n, err := repo.CountUsersByRole(ctx, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	alice := createUser(t, repo, "alice", domain.RoleStudent)
	bob := createUser(t, repo, "bob", domain.RoleStudent)

	base := time.Now().Add(-time.Hour)
	for i, q := range []string{"hi", "exam tips", "what is sql"} {
		id, err := repo.SaveQuery(ctx, &domain.QueryRecord{
			UserID:    alice.ID,
			Query:     q,
			Response:  "response " + q,
			Intent:    "default",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.NotZero(t, id)
	}
	_, err := repo.SaveQuery(ctx, &domain.QueryRecord{UserID: bob.ID, Query: "hello", Response: "r", Intent: "greeting"})
	require.NoError(t, err)

	records, err := repo.ListQueriesByUser(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "what is sql", records[0].Query)
	assert.Equal(t, "exam tips", records[1].Query)
	assert.Equal(t, "alice", records[0].Username)

	recent, err := repo.ListRecentQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, "hello", recent[0].Query)

	total, err := repo.CountQueries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestStudyPlans(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	alice := createUser(t, repo, "alice", domain.RoleStudent)

	exam := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	plan := &domain.StudyPlan{
		UserID:      alice.ID,
		CourseName:  "DBMS",
		ExamDate:    exam,
		HoursPerDay: 3,
		Days: []domain.PlanDay{
			{Day: 1, Date: "2026-04-30", Phase: domain.PhaseRevision, Tasks: []string{"Final preparation"}, Hours: 3},
		},
	}
	id, err := repo.SaveStudyPlan(ctx, plan)
	require.NoError(t, err)

	got, err := repo.GetStudyPlan(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "DBMS", got.CourseName)
	assert.Equal(t, "2026-05-01", got.ExamDateString())
	assert.Equal(t, plan.Days, got.Days)
	assert.False(t, got.IsCompleted)

	require.NoError(t, repo.SetStudyPlanCompleted(ctx, id, alice.ID, true))
	assert.ErrorIs(t, repo.SetStudyPlanCompleted(ctx, id, alice.ID+1, true), ErrNotFound)

	plans, err := repo.ListStudyPlansByUser(ctx, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.True(t, plans[0].IsCompleted)

	missing, err := repo.GetStudyPlan(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	admin := createUser(t, repo, "admin", domain.RoleAdmin)

	dbms := &domain.Subject{Name: "Database Management Systems", Code: "DBMS", Semester: 3}
	dsa := &domain.Subject{Name: "Data Structures and Algorithms", Code: "DSA", Semester: 2}
	require.NoError(t, repo.UpsertSubject(ctx, dbms))
	require.NoError(t, repo.UpsertSubject(ctx, dsa))
	firstID := dbms.ID

	dbms.Name = "DBMS renamed"
	require.NoError(t, repo.UpsertSubject(ctx, dbms))
	assert.Equal(t, firstID, dbms.ID)

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "DSA", subjects[0].Code)

	for _, n := range []*domain.Note{
		{Title: "ER Model", SubjectID: dbms.ID, FileName: "notes/a.pdf", OriginalName: "a.pdf", UploadedBy: admin.ID},
		{Title: "Trees", SubjectID: dsa.ID, FileName: "notes/b.pdf", OriginalName: "b.pdf", UploadedBy: admin.ID},
	} {
		require.NoError(t, repo.CreateNote(ctx, n))
	}

	all, err := repo.ListNotes(ctx, domain.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sem3, err := repo.ListNotes(ctx, domain.NoteFilter{Semester: 3})
	require.NoError(t, err)
	require.Len(t, sem3, 1)
	assert.Equal(t, "ER Model", sem3[0].Title)
	assert.Equal(t, "DBMS renamed", sem3[0].SubjectName)

	bySubject, err := repo.ListNotes(ctx, domain.NoteFilter{SubjectID: dsa.ID})
	require.NoError(t, err)
	require.Len(t, bySubject, 1)

	require.NoError(t, repo.IncrementNoteDownloads(ctx, bySubject[0].ID))
	require.NoError(t, repo.IncrementNoteDownloads(ctx, bySubject[0].ID))
	note, err := repo.GetNote(ctx, bySubject[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, note.DownloadCount)

	exists, err := repo.NoteExists(ctx, "Trees", dsa.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	notice := &domain.Notice{Title: "Exam schedule", Content: "Mid-terms start Monday", PostedBy: admin.ID, IsImportant: true}
	require.NoError(t, repo.CreateNotice(ctx, notice))
	notices, err := repo.ListNotices(ctx, 5)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.True(t, notices[0].IsImportant)
	assert.False(t, notices[0].HasFile())

	roadmap := &domain.PlacementRoadmap{
		CareerPath:    "web_developer",
		Title:         "Web Developer",
		Description:   "Build web applications",
		Skills:        []string{"HTML", "CSS"},
		Tools:         []string{"VS Code"},
		LearningOrder: []string{"HTML", "CSS", "JavaScript"},
	}
	require.NoError(t, repo.UpsertRoadmap(ctx, roadmap))
	assert.Equal(t, "6-12 months", roadmap.EstimatedDuration)

	got, err := repo.GetRoadmap(ctx, "web_developer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, roadmap.LearningOrder, got.LearningOrder)

	counts := []func(context.Context) (int, error){repo.CountNotes, repo.CountNotices}
	for _, count := range counts {
		n, err := count(ctx)
		require.NoError(t, err)
		assert.Positive(t, n)
	}
}

func TestRevokedTokens(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	now := time.Now()

	require.NoError(t, repo.RevokeToken(ctx, "expired", now.Add(-time.Minute)))
	require.NoError(t, repo.RevokeToken(ctx, "active", now.Add(time.Hour)))

	revoked, err := repo.IsTokenRevoked(ctx, "active")
	require.NoError(t, err)
	assert.True(t, revoked)

	purged, err := repo.PurgeExpiredRevocations(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	revoked, err = repo.IsTokenRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}
