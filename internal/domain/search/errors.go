package search

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/khoahotran/notion-blog/pkg/apperror"
)

const AuthenticationErrorMessage = "Authentication failed. Please check your NOTION_TOKEN_V2 or NOTION_TOKEN environment variable."

// UpstreamError is returned by strategies when Notion answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("notion responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("notion responded with status %d: %s", e.StatusCode, e.Body)
}

type AuthenticationError struct {
	Message string
	Err     error
}

func NewAuthenticationError(cause error) *AuthenticationError {
	return &AuthenticationError{Message: AuthenticationErrorMessage, Err: cause}
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() []error {
	if e.Err == nil {
		return []error{apperror.ErrUnauthorized}
	}
	return []error{apperror.ErrUnauthorized, e.Err}
}

func (e *AuthenticationError) Name() string {
	return "AuthenticationError"
}

type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindUpstream
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindUpstream:
		return "upstream"
	default:
		return "transport"
	}
}

// Classify tags a strategy error. Upstream 401 and 403 are authentication
// failures; any other status is an upstream failure; everything else is a
// transport or decode failure.
func Classify(err error) ErrorKind {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return KindAuth
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if upstream.StatusCode == http.StatusUnauthorized || upstream.StatusCode == http.StatusForbidden {
			return KindAuth
		}
		return KindUpstream
	}
	return KindTransport
}
