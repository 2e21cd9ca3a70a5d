package zermelo

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	appLog "zermelo-cli/internal/log"
)

// Exchange trades a one-time authorization code for an access token and
// returns a Session using it. Every failure, including a 2xx response
// without an access_token, is returned as *AuthError. There is no retry.
func Exchange(ctx context.Context, code, school string, opts ...Option) (*Session, error) {
	if code == "" {
		return nil, &AuthError{Err: errors.New("authorization code is empty")}
	}
	if school == "" {
		return nil, &AuthError{Err: errors.New("school is empty")}
	}

	o := buildOptions(school, opts)

	// The portal takes a bare authorization_code grant: no client id,
	// secret or redirect URI, all parameters in the form body.
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  o.baseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.client)

	appLog.Debug("token exchange start", "school", school, "token_url", conf.Endpoint.TokenURL, "code", code)

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		authErr := &AuthError{Err: err}
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil && !isSuccess(rerr.Response.StatusCode) {
			authErr.StatusCode = rerr.Response.StatusCode
		}
		appLog.Debug("token exchange failed", "err", err, "school", school, "status", authErr.StatusCode)
		return nil, authErr
	}
	if tok.AccessToken == "" {
		return nil, &AuthError{Err: ErrEmptyAccessToken}
	}

	appLog.Info("token exchange success", "school", school)
	return newSession(school, tok.AccessToken, o), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
