// Package httpclient provides the small request/response contract that API
// transports use to talk to email providers.
//
// A Client issues a single request and hands back a buffered Response that
// exposes the status code, headers, raw content and a best-effort JSON
// decoding of the body. There is no retry logic: one call is one request.
//
// The default client wraps net/http with an OpenTelemetry instrumented
// round tripper, so outgoing provider calls show up as client spans when a
// tracer provider is configured:
//
//	client := httpclient.New(httpclient.WithTimeout(10 * time.Second))
//
//	resp, err := client.Do(ctx, &httpclient.Request{
//		Method: http.MethodPost,
//		URL:    "https://api.example.com/send",
//		Header: http.Header{"Accept": []string{"application/json"}},
//		Query:  url.Values{"token": []string{"secret"}},
//		JSON:   payload,
//	})
//	if err != nil {
//		// errors.Is(err, httpclient.ErrRequestFailed): no response was received
//	}
//
//	data, err := resp.JSON()
//	if err != nil {
//		// errors.Is(err, httpclient.ErrDecode): body is not a JSON object
//	}
//
// Tests can build canned responses with NewResponse or swap the underlying
// *http.Client with WithDoer.
package httpclient
