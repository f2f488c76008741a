// Package mailer provides a provider-agnostic email model and the Transport
// interface that email providers implement.
//
// The package separates message construction from delivery. Providers live
// in subpackages (acumba, resend) and are selected at runtime from a
// connection descriptor through package transport.
//
// # Architecture
//
//   - Email, Address, Attachment, Body: the generic message model
//   - Envelope: the effective sender and recipients used for delivery
//   - Transport: one send operation against one provider
//   - AttachmentPreparer: splits attachments into regular and inline parts
//   - Renderer: markdown templates with YAML frontmatter
//   - Mailer: high-level client combining a Transport and a Renderer
//
// # Usage
//
//	tr, err := transport.FromString("acumba+api://" + token + "@default")
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(tr, mailer.Config{DefaultFrom: "Team <team@example.com>"})
//
//	sent, err := m.SendRaw(ctx, &mailer.Email{
//		To:      []mailer.Address{mailer.NewAddress("user@example.com", "User")},
//		Subject: "Welcome",
//		HTML:    mailer.BodyString("<p>Hello!</p>"),
//	})
//	if err != nil {
//		return err
//	}
//	log.Println(sent.MessageID)
//
// # HTML bodies
//
// The HTML part is a Body. Use BodyString for in-memory content, BodySeekable
// for files and other io.ReadSeeker values (rewound before every read) and
// BodyStream for one-shot readers. A stream is consumed by the send.
//
// # Envelope
//
// Transports always deliver to the envelope, never to the raw headers. When
// no envelope is given it is derived with EnvelopeFrom: the sender is
// Email.Sender or the first From address, and the recipients are To, CC and
// BCC.
//
// # Errors
//
// Transports return *Error with a Kind:
//
//	var mErr *mailer.Error
//	if errors.As(err, &mErr) {
//		switch mErr.Kind {
//		case mailer.KindConfiguration:
//			// fix the message
//		case mailer.KindNetwork, mailer.KindAPI, mailer.KindDecode, mailer.KindMalformedResponse:
//			// provider or network problem; mErr.StatusCode and mErr.Response carry details
//		case mailer.KindUnsupportedScheme:
//			// the DSN names no known transport
//		}
//	}
//
// Each kind also matches a sentinel with errors.Is (ErrConfigurationViolation,
// ErrNetwork, ErrAPI, ErrDecode, ErrMalformedResponse, ErrUnsupportedScheme).
// Validation failures in Mailer use ErrNoRecipient, ErrNoSubject, ErrNoContent
// and ErrNoSender.
package mailer
