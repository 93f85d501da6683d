package main

import (
	"anonforum/internal/models"
	"context"
	"fmt"
	"io"
)

type userLister interface {
	ListUserIDsWithoutPrimaryAlias(ctx context.Context) ([]string, error)
}

type primaryEnsurer interface {
	EnsurePrimary(ctx context.Context, userID string) (*models.Alias, error)
}

// backfillPrimaryAliases keeps going past individual failures and reports
// them at the end.
func backfillPrimaryAliases(ctx context.Context, users userLister, aliases primaryEnsurer, out io.Writer) (created, failed int, err error) {
	ids, err := users.ListUserIDsWithoutPrimaryAlias(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		a, err := aliases.EnsurePrimary(ctx, id)
		if err != nil {
			failed++
			fmt.Fprintf(out, "échec pour %s : %v\n", id, err)
			continue
		}
		created++
		fmt.Fprintf(out, "%s -> %s\n", id, a.Name)
	}

	return created, failed, nil
}
