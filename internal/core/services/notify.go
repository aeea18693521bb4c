package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure NotifyService implements the interface.
var _ driving.NotifyService = (*NotifyService)(nil)

// NotifyService mails file links through a notifier.
type NotifyService struct {
	notifier driven.Notifier
	profile  driven.ProfileReader
}

// NewNotifyService creates a notify service. profile may be nil, in which
// case a recipient is always required.
func NewNotifyService(notifier driven.Notifier, profile driven.ProfileReader) *NotifyService {
	return &NotifyService{notifier: notifier, profile: profile}
}

// SendFiles mails the files, defaulting the recipient to the caller's own address.
func (s *NotifyService) SendFiles(
	ctx context.Context, session *domain.Session, to string, files []domain.File,
) (string, error) {
	if session == nil || session.Token() == "" {
		return "", domain.ErrAuthRequired
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no files to send", domain.ErrInvalidInput)
	}

	to = strings.TrimSpace(to)
	if to == "" {
		if s.profile == nil {
			return "", fmt.Errorf("%w: no recipient", domain.ErrInvalidInput)
		}
		email, err := s.profile.UserEmail(ctx, session)
		if err != nil {
			return "", fmt.Errorf("resolve recipient: %w", err)
		}
		to = email
	}
	if !strings.Contains(to, "@") {
		return "", fmt.Errorf("%w: %q is not a mail address", domain.ErrInvalidInput, to)
	}

	if err := s.notifier.SendFiles(ctx, session, to, files); err != nil {
		return "", fmt.Errorf("send to %s: %w", to, err)
	}
	logger.Info("Mailed %d files to %s", len(files), to)
	return to, nil
}
