package commands

import (
	"TokenGate/internal/cli/api"
	"TokenGate/internal/config"
	"context"
	"errors"
	"fmt"
	"time"
)

type waitCmd struct{}

func (waitCmd) Name() string { return "wait" }
func (waitCmd) Description() string {
	return "Send or print the validation link, then poll until the token is validated"
}
func (waitCmd) Usage() string { return "wait <token>" }

// Run delivers the link over Telegram when configured, then polls every
// cfg.PollInterval until validated or cfg.PollTimeout passes. A failed delivery
// aborts before polling. Transport errors while polling count as "not yet".
func (waitCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	token, err := singleToken(args)
	if err != nil {
		return err
	}
	link := api.ValidateURL(cfg.ServerURL, token)
	tg, viaTelegram, err := telegramFromConfig(cfg)
	if err != nil {
		return err
	}
	if viaTelegram {
		if err := tg.SendLink(ctx, link); err != nil {
			return fmt.Errorf("send link: %w", err)
		}
		fmt.Fprintln(Out, "Validation link sent to Telegram")
	} else {
		fmt.Fprintf(Out, "Open %s to validate\n", link)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.PollTimeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		_, validated, err := api.Status(ctx, cfg.ServerURL, token)
		if err == nil && validated {
			fmt.Fprintln(Out, "Token validated")
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				if lastErr != nil && !errors.Is(lastErr, context.DeadlineExceeded) {
					return fmt.Errorf("%w (last error: %v)", ErrTimeout, lastErr)
				}
				return ErrTimeout
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func init() { RegisterCmd(waitCmd{}) }
