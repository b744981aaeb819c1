package cli

import "context"

// ensureToken logs in on first use and caches the token for the rest of the
// invocation.
func (a *App) ensureToken(ctx context.Context) (string, error) {
	if a.token != "" {
		return a.token, nil
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return "", err
	}

	token, err := a.api.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	a.token = token
	return token, nil
}
