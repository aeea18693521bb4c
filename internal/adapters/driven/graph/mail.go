package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure Mailer implements the interface.
var _ driven.Notifier = (*Mailer)(nil)

// MailSubject is the subject of result mails.
const MailSubject = "Your requested files"

// Mailer sends file links from the caller's mailbox.
type Mailer struct {
	caller  Caller
	baseURL string
}

// NewMailer creates a mailer. An empty baseURL uses DefaultBaseURL.
func NewMailer(caller Caller, baseURL string) *Mailer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Mailer{caller: caller, baseURL: strings.TrimRight(baseURL, "/")}
}

// SendFiles mails an HTML list of links to the files. Graph accepts the
// message with 202; anything else is an error.
func (m *Mailer) SendFiles(ctx context.Context, session *domain.Session, to string, files []domain.File) error {
	if to == "" {
		return fmt.Errorf("%w: no recipient", domain.ErrInvalidInput)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files to send", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(sendMailRequest{
		Message: mailMessage{
			Subject:      MailSubject,
			Body:         mailBody{ContentType: "HTML", Content: renderLinks(files)},
			ToRecipients: []recipient{{EmailAddress: emailAddress{Address: to}}},
		},
		SaveToSentItems: true,
	})
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	resp, err := m.caller.Invoke(ctx, &Call{
		Method:  http.MethodPost,
		URL:     m.baseURL + "/me/sendMail",
		Body:    payload,
		Session: session,
	})
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("send mail: %w", resp.Err())
	}

	logger.Info("Mailed %d files to %s", len(files), to)
	return nil
}

func renderLinks(files []domain.File) string {
	var b strings.Builder
	b.WriteString("<p>Here are the files you requested:</p>")
	for _, f := range files {
		fmt.Fprintf(&b, "<p><a href='%s'>%s</a></p>", html.EscapeString(f.WebURL), html.EscapeString(f.Name))
	}
	return b.String()
}
