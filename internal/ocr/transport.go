package ocr

import "net/http"

// HeaderTransport adds fixed headers to every request before handing it to
// the wrapped RoundTripper.
type HeaderTransport struct {
	Header http.Header

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip clones the request, sets the headers and forwards it.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	for k, vs := range t.Header {
		for _, v := range vs {
			if v != "" {
				req2.Header.Set(k, v)
			}
		}
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(req2)
}
