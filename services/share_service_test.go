package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"goblog/models"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func sharePost() *models.Post {
	return &models.Post{
		ID:              7,
		Title:           "Writing Go services",
		Slug:            "writing-go-services",
		PublicationDate: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestSendShareEmailComposesMessage(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewShareService(dialer, "noreply@example.com", "https://example.com", zap.NewNop())

	err := svc.SendShareEmail(sharePost(), models.SharePostRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		To:       "friend@example.com",
		Comments: "worth your time",
	})

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	m := dialer.sent[0]
	assert.Equal(t, []string{"noreply@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"friend@example.com"}, m.GetHeader("To"))
	assert.Equal(t,
		[]string{"Ana (ana@example.com) recommends you read Writing Go services"},
		m.GetHeader("Subject"))
}

func TestSendShareEmailLinksToPost(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewShareService(dialer, "noreply@example.com", "https://example.com", zap.NewNop())

	post := sharePost()
	require.NoError(t, svc.SendShareEmail(post, models.SharePostRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		To:    "friend@example.com",
	}))

	assert.Equal(t, "https://example.com/blog/posts/2025/3/14/writing-go-services",
		"https://example.com"+post.URL())
}

func TestSendShareEmailDeliveryFailure(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	svc := NewShareService(dialer, "noreply@example.com", "https://example.com", zap.NewNop())

	err := svc.SendShareEmail(sharePost(), models.SharePostRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		To:    "friend@example.com",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDelivery)
}
