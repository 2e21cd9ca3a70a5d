package zermelo

import (
	"errors"
	"net/url"
)

const redacted = "REDACTED"

// redactURL masks the access_token query parameter so request URLs can be
// logged and shown in error messages.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable url)"
	}
	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", redacted)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// redactError rewrites the URL inside a transport error, which net/http
// includes verbatim in its message.
func redactError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = redactURL(uerr.URL)
	}
	return err
}
