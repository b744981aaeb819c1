package cli

import (
	"context"
	"fmt"
)

func (a *App) ListUsers(ctx context.Context) error {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	users, err := a.api.ListUsers(ctx, token)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintln(a.out, u.Username)
	}
	return nil
}

func (a *App) CreateUser(ctx context.Context, username string) error {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	password, err := GetPassword("New user password", a.out)
	if err != nil {
		return err
	}

	user, err := a.api.CreateUser(ctx, token, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created user %s\n", user.Username)
	return nil
}
