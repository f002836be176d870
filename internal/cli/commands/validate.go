package commands

import (
	"TokenGate/internal/cli/api"
	"TokenGate/internal/config"
	"context"
	"fmt"
)

type validateCmd struct{}

func (validateCmd) Name() string        { return "validate" }
func (validateCmd) Description() string { return "Mark a token validated (same as opening its link)" }
func (validateCmd) Usage() string       { return "validate <token>" }

func (validateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	token, err := singleToken(args)
	if err != nil {
		return err
	}
	res, err := api.Validate(ctx, cfg.ServerURL, token)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, res.Message)
	return nil
}

func init() { RegisterCmd(validateCmd{}) }
