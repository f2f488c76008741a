// Package acumba implements mailer.Transport for the AcumbaMail
// transactional HTTP API.
//
// A send is a single POST to https://{host}/api/1/sendOne carrying the
// message payload, the auth token, recipients, sender and subject. The
// payload is sent both as bracket-notated query parameters and as the JSON
// request body.
//
// Importing the package registers its factory with the default transport
// registry:
//
//	import (
//		"github.com/mailbridge/mailbridge/pkg/mailer/transport"
//		_ "github.com/mailbridge/mailbridge/pkg/mailer/acumba"
//	)
//
//	tr, err := transport.FromString("acumba+api://" + token + "@default")
//
// The transport can also be built directly:
//
//	tr := acumba.New(token, acumba.WithHost("mail.example.org"), acumba.WithLogger(log))
//
// # Provider constraints
//
// The API accepts a single Reply-To address. Messages with more fail with a
// mailer.KindConfiguration error before any network call.
//
// # Responses
//
// A 200 response must echo at least one record under "Messages"; the
// x-mj-request-guid response header becomes the message id. Any other status
// is a mailer.KindAPI error whose message comes from
// Messages[0].Errors[0].ErrorMessage, or the raw body when that path is
// missing.
package acumba
