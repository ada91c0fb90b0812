package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/validation"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	dir := t.TempDir()

	repo, err := store.NewSQLite(filepath.Join(dir, "admin.db"))
	if err != nil {
		t.Fatalf("NewSQLite() failed, %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	files, err := filestore.NewLocal(filepath.Join(dir, "uploads"), 1<<20)
	if err != nil {
		t.Fatalf("NewLocal() failed, %v", err)
	}

	return &commandLine{
		repo:      repo,
		files:     files,
		validator: validation.New(),
		out:       io.Discard,
	}
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	prev := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = prev })
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(t, tt.pwd)
			args := append([]string{"portal-admin"}, tt.args...)

			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no email", args: []string{"adduser", "-username", "dean"}, pwd: "secret123", wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "dean", "-email", "dean@college.test"}, wantErr: errHelp},
		{name: "invalid username", args: []string{"adduser", "-username", "de an", "-email", "dean@college.test"}, pwd: "secret123", wantErrStr: "invalid fields: username"},
		{name: "short password", args: []string{"adduser", "-username", "dean", "-email", "dean@college.test"}, pwd: "abc", wantErrStr: "invalid fields: password"},
		{name: "create admin", args: []string{"adduser", "-username", "dean", "-email", "Dean@College.test", "-admin"}, pwd: "secret123"},
		{name: "create student", args: []string{"adduser", "-username", "asha", "-email", "asha@college.test"}, pwd: "secret123"},
		{name: "update existing", args: []string{"adduser", "-username", "asha", "-email", "asha@college.test", "-admin"}, pwd: "newsecret"},
	})

	ctx := context.Background()
	dean, err := cli.repo.GetUserByUsername(ctx, "dean")
	if err != nil || dean == nil {
		t.Fatalf("GetUserByUsername(dean) = %v, %v", dean, err)
	}
	if !dean.IsAdmin() {
		t.Errorf("dean role = %s, want admin", dean.Role)
	}
	if dean.Email != "dean@college.test" {
		t.Errorf("dean email = %s, want lower-cased", dean.Email)
	}
	if profile, _ := cli.repo.GetStudentProfile(ctx, dean.ID); profile != nil {
		t.Error("admin account should not get a student profile")
	}

	asha, err := cli.repo.GetUserByUsername(ctx, "asha")
	if err != nil || asha == nil {
		t.Fatalf("GetUserByUsername(asha) = %v, %v", asha, err)
	}
	if !asha.IsAdmin() {
		t.Errorf("asha role = %s, want admin after update", asha.Role)
	}
	if !identity.CheckPassword(asha.PasswordHash, "newsecret") {
		t.Error("failed to update password of existing account")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	hash, err := identity.HashPassword("original")
	if err != nil {
		t.Fatal(err)
	}
	usr := &domain.User{Username: "ravi", Email: "ravi@college.test", PasswordHash: hash, Role: domain.RoleStudent}
	if err := cli.repo.CreateUser(context.Background(), usr, &domain.StudentProfile{Semester: 2}); err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}

	runCLITests(t, cli, []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "lol", wantErr: errUserNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", "ravi"}, pwd: "first-reset"},
		{name: "reset with email", args: []string{"resetpassword", "-username", "RAVI@college.test"}, pwd: "second-reset"},
	})

	refreshed, err := cli.repo.GetUser(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("GetUser() failed, %v", err)
	}
	if !identity.CheckPassword(refreshed.PasswordHash, "second-reset") {
		t.Error("failed to update password")
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	usr := &domain.User{Username: "dean", Email: "dean@college.test", PasswordHash: "x", Role: domain.RoleAdmin}
	if err := cli.repo.CreateUser(ctx, usr, nil); err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}

	runCLITests(t, cli, []cliTest{
		{name: "unknown owner", args: []string{"seed", "-notes-owner", "nobody"}, wantErr: errUserNotFound},
		{name: "catalog only", args: []string{"seed"}},
		{name: "with notes", args: []string{"seed", "-notes-owner", "dean"}},
		{name: "again", args: []string{"seed", "-notes-owner", "dean"}},
	})

	subjects, err := cli.repo.ListSubjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 8 {
		t.Errorf("subjects = %d, want 8", len(subjects))
	}
	notes, err := cli.repo.CountNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if notes != 10 {
		t.Errorf("notes = %d, want 10", notes)
	}
}
