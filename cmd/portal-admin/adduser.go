package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/identity"
)

type newAccount struct {
	Username string `json:"username" validate:"required,username,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// addUser updates or creates an account. Existing accounts are matched by
// username and get the new password and role.
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	acct := newAccount{
		Username: strings.TrimSpace(uname),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: pwd,
	}
	if err := cli.validator.Struct(acct); err != nil {
		return err
	}

	role := domain.RoleStudent
	if isAdmin {
		role = domain.RoleAdmin
	}
	hash, err := identity.HashPassword(acct.Password)
	if err != nil {
		return err
	}

	ctx := context.Background()
	usr, err := cli.repo.GetUserByUsername(ctx, acct.Username)
	if err != nil {
		return err
	}
	if usr != nil {
		if err := cli.repo.UpdatePassword(ctx, usr.ID, hash); err != nil {
			return err
		}
		if err := cli.repo.UpdateRole(ctx, usr.ID, role); err != nil {
			return err
		}
		fmt.Fprintf(cli.stdout(), "Updated %s (%s)\n", usr.Username, role)
		return nil
	}

	usr = &domain.User{
		Username:     acct.Username,
		Email:        acct.Email,
		PasswordHash: hash,
		Role:         role,
	}
	var profile *domain.StudentProfile
	if role == domain.RoleStudent {
		profile = &domain.StudentProfile{Semester: 1}
	}
	if err := cli.repo.CreateUser(ctx, usr, profile); err != nil {
		return fmt.Errorf("create %s: %w", acct.Username, err)
	}
	fmt.Fprintf(cli.stdout(), "Created %s (%s)\n", usr.Username, role)
	return nil
}
