package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender implements Sender using the Gmail API with the same OAuth
// credential files as the calendar integration.
type GmailSender struct {
	service *gmail.Service
	from    string
	logger  *zap.Logger
}

// NewGmailSender builds a Gmail client. from is the sender address shown
// to candidates.
func NewGmailSender(ctx context.Context, credentialsFile, tokenFile, from string, logger *zap.Logger) (*GmailSender, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth credentials: %w", err)
	}

	client, err := tokenClient(ctx, config, tokenFile)
	if err != nil {
		return nil, err
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &GmailSender{service: service, from: from, logger: logger}, nil
}

func tokenClient(ctx context.Context, config *oauth2.Config, tokenFile string) (*http.Client, error) {
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	return config.Client(ctx, token), nil
}

// Send delivers a plain-text email via the Gmail API.
func (s *GmailSender) Send(ctx context.Context, to, subject, body string) error {
	var msg strings.Builder
	if s.from != "" {
		msg.WriteString("From: " + s.from + "\r\n")
	}
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(msg.String())),
	}

	if _, err := s.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Debug("invitation email sent", zap.String("to", to))

	return nil
}
