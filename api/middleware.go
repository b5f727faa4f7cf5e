package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const HeaderRequestID = "X-Request-ID"

// TokenSource yields the bearer token in effect right now. An empty token means
// no credential is available.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// BearerToken attaches the current token as an Authorization header. The
// source is consulted on every request so a token change is picked up by the
// next request. No header is sent when the source has no token.
func BearerToken(source TokenSource) RequestMiddleware {
	return func(req *http.Request) error {
		token, err := source.Token(req.Context())
		if err != nil {
			return fmt.Errorf("resolve credential: %w", err)
		}
		req.Header.Del("Authorization")
		if token == "" {
			return nil
		}
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		return nil
	}
}

// RequestID stamps a request ID header unless the caller already set one.
func RequestID() RequestMiddleware {
	return func(req *http.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.New().String())
		}
		return nil
	}
}

// LogResponses debug-logs every round trip and passes the result through unchanged.
func LogResponses() ResponseMiddleware {
	return func(resp *http.Response, err error) (*http.Response, error) {
		if err != nil {
			log.Debug().Err(err).Msg("api request failed")
			return resp, err
		}
		log.Debug().
			Str("method", resp.Request.Method).
			Str("path", resp.Request.URL.Path).
			Str("request_id", resp.Request.Header.Get(HeaderRequestID)).
			Int("status", resp.StatusCode).
			Msg("api response")
		return resp, err
	}
}
