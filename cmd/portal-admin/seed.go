package main

import (
	"context"
	"fmt"

	"github.com/ashureev/college-portal/internal/seed"
)

func (cli *commandLine) seed(notesOwner string) error {
	ctx := context.Background()

	var ownerID int64
	if notesOwner != "" {
		usr, err := cli.lookupUser(ctx, notesOwner)
		if err != nil {
			return err
		}
		ownerID = usr.ID
	}

	catalog, err := seed.Load()
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, catalog, cli.repo, cli.files, ownerID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout(), "Seeded %d subjects, %d roadmaps, %d notes (%d already present)\n",
		res.Subjects, res.Roadmaps, res.NotesCreated, res.NotesSkipped)
	return nil
}
