package commands

import (
	"TokenGate/internal/cli/api"
	"TokenGate/internal/cli/notify"
	"TokenGate/internal/config"
	"context"
	"fmt"
)

type notifyCmd struct{}

func (notifyCmd) Name() string        { return "notify" }
func (notifyCmd) Description() string { return "Send the validation link to the configured Telegram chat" }
func (notifyCmd) Usage() string       { return "notify <token>" }

func (notifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	token, err := singleToken(args)
	if err != nil {
		return err
	}
	tg, ok, err := telegramFromConfig(cfg)
	if err != nil {
		return err
	}
	if !ok {
		return notify.ErrNoCredentials
	}
	if err := tg.SendLink(ctx, api.ValidateURL(cfg.ServerURL, token)); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Validation link sent to Telegram")
	return nil
}

// telegramFromConfig builds a notifier when any Telegram setting is present.
// Explicit chat id / bot key take precedence over the credentials file.
// ok is false when Telegram delivery is not configured at all.
func telegramFromConfig(cfg *config.Config) (tg *notify.Telegram, ok bool, err error) {
	chatID, botKey := cfg.TelegramChatID, cfg.TelegramBotKey
	if chatID == "" && botKey == "" && cfg.TelegramCredentials == "" {
		return nil, false, nil
	}
	if (chatID == "" || botKey == "") && cfg.TelegramCredentials != "" {
		fileChat, fileKey, err := notify.ReadCredentials(cfg.TelegramCredentials)
		if err != nil {
			return nil, false, err
		}
		if chatID == "" {
			chatID = fileChat
		}
		if botKey == "" {
			botKey = fileKey
		}
	}
	apiURL := cfg.TelegramAPIURL
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	tg, err = notify.NewTelegram(apiURL, botKey, chatID)
	if err != nil {
		return nil, false, err
	}
	return tg, true, nil
}

func init() { RegisterCmd(notifyCmd{}) }
