package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeFrom(t *testing.T) {
	t.Parallel()

	email := &Email{
		From: []Address{NewAddress("from@example.com", "From"), NewAddress("second@example.com", "")},
		To:   []Address{NewAddress("to@example.com", "")},
		CC:   []Address{NewAddress("cc@example.com", "")},
		BCC:  []Address{NewAddress("bcc@example.com", "")},
	}

	env, err := EnvelopeFrom(email)
	require.NoError(t, err)
	require.Equal(t, NewAddress("from@example.com", "From"), env.Sender)
	require.Equal(t, []Address{
		NewAddress("to@example.com", ""),
		NewAddress("cc@example.com", ""),
		NewAddress("bcc@example.com", ""),
	}, env.Recipients)

	email.Sender = NewAddress("bounce@example.com", "")
	env, err = EnvelopeFrom(email)
	require.NoError(t, err)
	require.Equal(t, "bounce@example.com", env.Sender.Email)
}

func TestEnvelopeFrom_Errors(t *testing.T) {
	t.Parallel()

	_, err := EnvelopeFrom(&Email{To: []Address{NewAddress("to@example.com", "")}})
	require.ErrorIs(t, err, ErrNoSender)

	_, err = EnvelopeFrom(&Email{From: []Address{NewAddress("from@example.com", "")}})
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestDirectRecipients(t *testing.T) {
	t.Parallel()

	email := &Email{
		CC:  []Address{NewAddress("Copy@Example.com", "")},
		BCC: []Address{NewAddress("hidden@example.com", "")},
	}
	env, err := NewEnvelope(NewAddress("s@example.com", ""), []Address{
		NewAddress("z@example.com", "Z"),
		NewAddress("copy@example.com", ""),
		NewAddress("a@example.com", ""),
		NewAddress("hidden@example.com", ""),
	})
	require.NoError(t, err)

	got := DirectRecipients(email, env)

	require.Equal(t, []Address{NewAddress("z@example.com", "Z"), NewAddress("a@example.com", "")}, got)
}

func TestDirectRecipients_AllCopied(t *testing.T) {
	t.Parallel()

	email := &Email{CC: []Address{NewAddress("cc@example.com", "")}}
	env := &Envelope{Sender: NewAddress("s@example.com", ""), Recipients: email.CC}

	require.Empty(t, DirectRecipients(email, env))
}
