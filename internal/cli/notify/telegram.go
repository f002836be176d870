package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrNoCredentials means neither config nor the credentials file provided both chat id and bot key.
var ErrNoCredentials = errors.New("telegram chat id and bot key are required")

// Telegram sends validation links to one chat through the Bot API sendMessage method.
type Telegram struct {
	APIURL string
	BotKey string
	ChatID string
	Client *http.Client
}

// NewTelegram returns a notifier using http.DefaultClient.
func NewTelegram(apiURL, botKey, chatID string) (*Telegram, error) {
	if botKey == "" || chatID == "" {
		return nil, ErrNoCredentials
	}
	return &Telegram{
		APIURL: strings.TrimRight(apiURL, "/"),
		BotKey: botKey,
		ChatID: chatID,
		Client: http.DefaultClient,
	}, nil
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendLink posts an HTML message with a clickable link to the chat.
func (t *Telegram) SendLink(ctx context.Context, link string) error {
	form := url.Values{}
	form.Set("chat_id", t.ChatID)
	form.Set("text", fmt.Sprintf(`<a href="%s">Click here to authenticate</a>`, html.EscapeString(link)))
	form.Set("parse_mode", "HTML")

	endpoint := t.APIURL + "/bot" + t.BotKey + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.New("telegram: invalid api url")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		// url.Error carries the endpoint, and the endpoint carries the bot key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var sr sendMessageResponse
	_ = json.Unmarshal(body, &sr)
	if resp.StatusCode != http.StatusOK || !sr.OK {
		if sr.Description != "" {
			return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode, sr.Description)
		}
		return fmt.Errorf("telegram sendMessage: status %d", resp.StatusCode)
	}
	return nil
}

// ReadCredentials parses a file of id=<chat id> and botkey=<bot key> lines.
// Other lines are ignored; the last occurrence of a key wins.
func ReadCredentials(path string) (chatID, botKey string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "id="):
			chatID = strings.TrimPrefix(line, "id=")
		case strings.HasPrefix(line, "botkey="):
			botKey = strings.TrimPrefix(line, "botkey=")
		}
	}
	if err := sc.Err(); err != nil {
		return "", "", fmt.Errorf("read credentials: %w", err)
	}
	if chatID == "" || botKey == "" {
		return "", "", fmt.Errorf("%s: %w", path, ErrNoCredentials)
	}
	return chatID, botKey, nil
}
