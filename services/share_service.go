package services

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"goblog/models"
)

// MailDialer is what the share service needs from gomail; tests swap in a
// recorder.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type ShareService interface {
	SendShareEmail(post *models.Post, req models.SharePostRequest) error
}

type shareService struct {
	dialer  MailDialer
	from    string
	baseURL string
	logger  *zap.Logger
}

func NewShareService(dialer MailDialer, from, baseURL string, logger *zap.Logger) ShareService {
	return &shareService{
		dialer:  dialer,
		from:    from,
		baseURL: baseURL,
		logger:  logger,
	}
}

// SendShareEmail composes the recommendation message and hands it to the
// SMTP transport. The caller has already validated the form fields; any
// error out of here is a delivery failure, not a validation one.
func (s *shareService) SendShareEmail(post *models.Post, req models.SharePostRequest) error {
	postURL := s.baseURL + post.URL()

	subject := fmt.Sprintf("%s (%s) recommends you read %s", req.Name, req.Email, post.Title)
	body := fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, req.Name, req.Comments)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", req.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("share email dispatch failed",
			zap.Uint("post_id", post.ID),
			zap.String("to", req.To),
			zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrDelivery, err)
	}

	s.logger.Info("share email sent",
		zap.Uint("post_id", post.ID),
		zap.String("to", req.To))
	return nil
}
