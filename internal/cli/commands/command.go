package commands

import (
	"TokenGate/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

var (
	// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
	ErrUsage = errors.New("usage")
	// ErrPending means the server answered but the token is not validated yet.
	ErrPending = errors.New("token is not validated yet")
	// ErrTimeout is returned by wait when the token stayed pending for the whole poll timeout.
	ErrTimeout = errors.New("timed out waiting for validation")
)

// Command is one tgcli verb. All verbs take a token and talk to ServerURL.
type Command interface {
	Name() string
	// Description is the one-liner in the help table.
	Description() string
	// Usage is the argument synopsis printed on ErrUsage.
	Usage() string
	// Run gets the arguments after the verb.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out receives everything the commands print.
var Out io.Writer = os.Stdout

// RegisterCmd makes cmd reachable from Dispatch; command files call it from init.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get looks a verb up in the registry.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List orders verbs alphabetically for the help table.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage renders the help screen.
func FormatGlobalUsage() string {
	lines := []string{
		"TokenGate CLI",
		"",
		"Usage:",
		"  tgcli [--server-url URL] [--poll-interval d] [--poll-timeout d] [--telegram-credentials file] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-20s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}

// singleToken extracts exactly one non-empty positional argument.
func singleToken(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", ErrUsage
	}
	return args[0], nil
}
