package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of Transport interface.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, email *Email, envelope *Envelope) (*SentMessage, error) {
	args := m.Called(ctx, email, envelope)
	sent, _ := args.Get(0).(*SentMessage)
	return sent, args.Error(1)
}

func (m *MockTransport) String() string {
	return "mock://"
}

func delivered(id string) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*Email).MessageID = id
	}
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	tr := &MockTransport{}
	m := New(tr, Config{DefaultFrom: "Team <team@example.com>", FallbackSubject: "Notification"},
		WithRenderer(NewRenderer(templates, WithLayout("layouts/base.html"))))

	tr.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		html, _ := email.HTML.Read()
		return email.To[0].Email == "alice@example.com" &&
			email.Subject == "Welcome Alice" &&
			email.From[0].Name == "Team" &&
			strings.Contains(html, "<strong>Alice</strong>") &&
			email.Text == "Hello **Alice**!\n"
	}), mock.MatchedBy(func(env *Envelope) bool {
		return env.Sender.Email == "team@example.com" && len(env.Recipients) == 2
	})).Run(delivered("id-1")).Return(&SentMessage{MessageID: "id-1"}, nil)

	sent, err := m.Send(context.Background(), SendParams{
		To:       "alice@example.com",
		CC:       []string{"boss@example.com"},
		Template: "welcome.md",
		Data:     map[string]string{"Name": "Alice"},
	})

	require.NoError(t, err)
	require.Equal(t, "id-1", sent.MessageID)
	tr.AssertExpectations(t)
}

func TestMailer_Send_SubjectPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		subject  string
		want     string
	}{
		{name: "explicit wins", template: "welcome.md", subject: "Override", want: "Override"},
		{name: "frontmatter", template: "welcome.md", want: "Welcome Bob"},
		{name: "fallback", template: "plain.md", want: "Notification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := &MockTransport{}
			tr.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool { return e.Subject == tt.want }), mock.Anything).
				Return(&SentMessage{}, nil)

			m := New(tr, Config{DefaultFrom: "team@example.com", FallbackSubject: "Notification"}, WithRenderer(NewRenderer(templates)))
			_, err := m.Send(context.Background(), SendParams{
				To:       "bob@example.com",
				Template: tt.template,
				Subject:  tt.subject,
				Data:     map[string]string{"Name": "Bob"},
			})

			require.NoError(t, err)
			tr.AssertExpectations(t)
		})
	}
}

func TestMailer_Send_Errors(t *testing.T) {
	t.Parallel()

	tr := &MockTransport{}
	m := New(tr, Config{}, WithRenderer(NewRenderer(templates)))

	_, err := m.Send(context.Background(), SendParams{Template: "welcome.md"})
	require.ErrorIs(t, err, ErrNoRecipient)

	_, err = m.Send(context.Background(), SendParams{To: "a@example.com", Template: "missing.md"})
	require.ErrorIs(t, err, ErrRenderFailed)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = m.Send(context.Background(), SendParams{To: "not an address", Template: "welcome.md"})
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = New(tr, Config{}).Send(context.Background(), SendParams{To: "a@example.com", Template: "welcome.md"})
	require.ErrorIs(t, err, ErrRenderFailed)

	tr.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestMailer_SendRaw_Validation(t *testing.T) {
	t.Parallel()

	from := []Address{NewAddress("team@example.com", "")}
	to := []Address{NewAddress("user@example.com", "")}

	tests := []struct {
		name  string
		email *Email
		want  error
	}{
		{name: "no recipient", email: &Email{From: from, Subject: "s", Text: "t"}, want: ErrNoRecipient},
		{name: "no subject", email: &Email{From: from, To: to, Text: "t"}, want: ErrNoSubject},
		{name: "no content", email: &Email{From: from, To: to, Subject: "s"}, want: ErrNoContent},
		{name: "no sender", email: &Email{To: to, Subject: "s", Text: "t"}, want: ErrNoSender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := &MockTransport{}
			_, err := New(tr, Config{}).SendRaw(context.Background(), tt.email)

			require.ErrorIs(t, err, tt.want)
			tr.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMailer_SendRaw_DerivesText(t *testing.T) {
	t.Parallel()

	tr := &MockTransport{}
	tr.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool { return e.Text == "Hi there" }), mock.Anything).
		Return(&SentMessage{}, nil).Once()
	tr.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool { return e.Text == "" }), mock.Anything).
		Return(&SentMessage{}, nil).Once()

	m := New(tr, Config{DefaultFrom: "team@example.com"})
	to := []Address{NewAddress("user@example.com", "")}

	_, err := m.SendRaw(context.Background(), &Email{To: to, Subject: "s", HTML: BodyString("<p>Hi there</p>")})
	require.NoError(t, err)

	_, err = m.SendRaw(context.Background(), &Email{To: to, Subject: "s", HTML: BodyStream(strings.NewReader("<p>stream</p>"))})
	require.NoError(t, err)

	tr.AssertExpectations(t)
}

func TestMailer_SendRaw_TransportFailure(t *testing.T) {
	t.Parallel()

	apiErr := &Error{Provider: "mock", Kind: KindAPI, Message: "rejected", StatusCode: 400}
	tr := &MockTransport{}
	tr.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil, apiErr)

	email := &Email{
		From:    []Address{NewAddress("team@example.com", "")},
		To:      []Address{NewAddress("user@example.com", "")},
		Subject: "s",
		Text:    "t",
	}
	sent, err := New(tr, Config{}).SendRaw(context.Background(), email)

	require.Nil(t, sent)
	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, ErrAPI)
	require.Equal(t, KindAPI, KindOf(err))
	require.Empty(t, email.MessageID)

	var mErr *Error
	require.True(t, errors.As(err, &mErr))
	require.Equal(t, 400, mErr.StatusCode)
}
