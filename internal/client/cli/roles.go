package cli

import (
	"context"
	"fmt"
)

func (a *App) ListRoles(ctx context.Context, username string) error {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	roles, err := a.api.ListUserRoles(ctx, token, username)
	if err != nil {
		return err
	}
	for _, role := range roles {
		fmt.Fprintln(a.out, role)
	}
	return nil
}

func (a *App) GrantRole(ctx context.Context, username, rolename string) error {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	if err := a.api.GrantRole(ctx, token, username, rolename); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "granted %s to %s\n", rolename, username)
	return nil
}

func (a *App) RevokeRole(ctx context.Context, username, rolename string) error {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	if err := a.api.RevokeRole(ctx, token, username, rolename); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "revoked %s from %s\n", rolename, username)
	return nil
}

// HasRole does not need a token, only the service API key.
func (a *App) HasRole(ctx context.Context, username, rolename string) error {
	held, err := a.api.HasRole(ctx, username, rolename)
	if err != nil {
		return err
	}
	if held {
		fmt.Fprintf(a.out, "%s has role %s\n", username, rolename)
	} else {
		fmt.Fprintf(a.out, "%s does not have role %s\n", username, rolename)
	}
	return nil
}
