package main

import (
	"context"
	"errors"
	"strings"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/identity"
)

var errUserNotFound = errors.New("user not found")

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	usr, err := cli.lookupUser(ctx, uname)
	if err != nil {
		return err
	}
	hash, err := identity.HashPassword(pwd)
	if err != nil {
		return err
	}
	return cli.repo.UpdatePassword(ctx, usr.ID, hash)
}

// lookupUser finds an account by username, or by email when uname contains @.
func (cli *commandLine) lookupUser(ctx context.Context, uname string) (*domain.User, error) {
	uname = strings.TrimSpace(uname)
	var (
		usr *domain.User
		err error
	)
	if strings.Contains(uname, "@") {
		usr, err = cli.repo.GetUserByEmail(ctx, strings.ToLower(uname))
	} else {
		usr, err = cli.repo.GetUserByUsername(ctx, uname)
	}
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, errUserNotFound
	}
	return usr, nil
}
