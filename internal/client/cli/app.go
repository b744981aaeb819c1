// Package cli implements the authctl administration tool: a thin command
// line wrapper around the auth service REST API.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/edusys/eduauth/internal/client/authapi"
	"github.com/edusys/eduauth/internal/client/config"
)

const usage = `Usage: authctl [-s server] [-k api-key] <command> [args]

Commands:
  users                        list registered users
  user-create <username>       register a new user
  roles <username>             list the roles granted to a user
  grant <username> <role>      grant a role to a user
  revoke <username> <role>     revoke a role from a user
  has-role <username> <role>   check whether a user holds a role
  health                       check that the service is up
`

type App struct {
	config *config.Config
	api    *authapi.Client
	token  string
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		api:    authapi.NewClient(cfg.ServerEndpointAddr, cfg.APIKey, nil),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes a single subcommand. args is the command name followed by
// its operands.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "users":
		return a.ListUsers(ctx)
	case "user-create":
		if len(rest) != 1 {
			return fmt.Errorf("usage: authctl user-create <username>")
		}
		return a.CreateUser(ctx, rest[0])
	case "roles":
		if len(rest) != 1 {
			return fmt.Errorf("usage: authctl roles <username>")
		}
		return a.ListRoles(ctx, rest[0])
	case "grant":
		if len(rest) != 2 {
			return fmt.Errorf("usage: authctl grant <username> <role>")
		}
		return a.GrantRole(ctx, rest[0], rest[1])
	case "revoke":
		if len(rest) != 2 {
			return fmt.Errorf("usage: authctl revoke <username> <role>")
		}
		return a.RevokeRole(ctx, rest[0], rest[1])
	case "has-role":
		if len(rest) != 2 {
			return fmt.Errorf("usage: authctl has-role <username> <role>")
		}
		return a.HasRole(ctx, rest[0], rest[1])
	case "health":
		return a.Health(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *App) Health(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}
