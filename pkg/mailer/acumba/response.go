package acumba

import (
	"net/http"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// interpret classifies the provider response and returns the message id.
func interpret(resp *httpclient.Response) (string, error) {
	data, err := resp.JSON()
	if err != nil {
		return "", &mailer.Error{
			Kind:       mailer.KindDecode,
			Provider:   providerName,
			Message:    resp.Content(),
			StatusCode: resp.StatusCode,
			Response:   resp,
			Err:        err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		detail, ok := errorMessage(data)
		if !ok {
			detail = resp.Content()
		}
		return "", &mailer.Error{
			Kind:       mailer.KindAPI,
			Provider:   providerName,
			Message:    detail,
			StatusCode: resp.StatusCode,
			Response:   resp,
		}
	}

	if messages, ok := data["Messages"].([]any); !ok || len(messages) == 0 {
		return "", &mailer.Error{
			Kind:       mailer.KindMalformedResponse,
			Provider:   providerName,
			Message:    resp.Content(),
			StatusCode: resp.StatusCode,
			Response:   resp,
		}
	}

	return resp.HeaderValue(RequestIDHeader), nil
}

// errorMessage reads Messages[0].Errors[0].ErrorMessage.
func errorMessage(data map[string]any) (string, bool) {
	messages, ok := data["Messages"].([]any)
	if !ok || len(messages) == 0 {
		return "", false
	}
	first, ok := messages[0].(map[string]any)
	if !ok {
		return "", false
	}
	errs, ok := first["Errors"].([]any)
	if !ok || len(errs) == 0 {
		return "", false
	}
	firstErr, ok := errs[0].(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := firstErr["ErrorMessage"].(string)
	return msg, ok
}
