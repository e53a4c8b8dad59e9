package stars

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// initHTTPClient returns a client with the given timeout. A zero timeout
// leaves the transport defaults in charge.
func initHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// decodeResponse unmarshals a JSON payload into dest, which must be a
// pointer. The decoder error is returned as is since it ends up verbatim in
// the report.
func decodeResponse(payload io.Reader, dest interface{}) error {
	return json.NewDecoder(payload).Decode(dest)
}

// validHeaderValue rejects control characters other than horizontal tab,
// which net/http would refuse to send.
func validHeaderValue(v string) bool {
	for i := 0; i < len(v); i++ {
		if c := v[i]; (c < ' ' && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}
