package commands

import (
	"TokenGate/internal/cli/api"
	"TokenGate/internal/config"
	"context"
	"fmt"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check once whether a token is validated" }
func (statusCmd) Usage() string       { return "status <token>" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	token, err := singleToken(args)
	if err != nil {
		return err
	}
	res, validated, err := api.Status(ctx, cfg.ServerURL, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Status: %s (%s)\n", res.Status, res.Message)
	if !validated {
		return ErrPending
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
