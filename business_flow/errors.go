// Package businessflow contains the core business logic for short links, landing pages and contact messages.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants.
var (
	// Short link errors.
	ErrKeyGenerationExhausted = errors.New("short key generation exhausted")
	ErrShortLinkNotFound      = errors.New("short link not found")
	ErrInvalidStatsToken      = errors.New("invalid stats token")

	// Landing page errors.
	ErrLandingPageNotFound = errors.New("landing page not found")
	ErrLandingPageNotUTF8  = errors.New("landing page is not valid UTF-8")

	// Contact errors.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrStore marks any persistence failure, including connectivity.
	ErrStore = errors.New("store error")
)

// BusinessError represents a business logic error with additional context.
type BusinessError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error.
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewStoreError creates a business error that also matches ErrStore.
func NewStoreError(code, message string, err error) *BusinessError {
	return NewBusinessError(code, message, errors.Join(ErrStore, err))
}

// ErrorKind is the closed set of failures surfaced by the flows.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindGenerationExhausted
	KindStore
	KindNotFound
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindGenerationExhausted:
		return "GenerationExhausted"
	case KindStore:
		return "StoreError"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. Not-found and unauthorized take precedence over store
// failures so a wrapped lookup miss is never reported as an outage.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case IsShortLinkNotFound(err), IsLandingPageNotFound(err), IsTopicNotFound(err):
		return KindNotFound
	case IsInvalidStatsToken(err):
		return KindUnauthorized
	case IsKeyGenerationExhausted(err):
		return KindGenerationExhausted
	case IsStoreError(err):
		return KindStore
	default:
		return KindUnknown
	}
}

// Helper functions to check error types.
func IsKeyGenerationExhausted(err error) bool {
	return errors.Is(err, ErrKeyGenerationExhausted)
}

func IsShortLinkNotFound(err error) bool {
	return errors.Is(err, ErrShortLinkNotFound)
}

func IsInvalidStatsToken(err error) bool {
	return errors.Is(err, ErrInvalidStatsToken)
}

func IsLandingPageNotFound(err error) bool {
	return errors.Is(err, ErrLandingPageNotFound)
}

func IsLandingPageNotUTF8(err error) bool {
	return errors.Is(err, ErrLandingPageNotUTF8)
}

func IsTopicNotFound(err error) bool {
	return errors.Is(err, ErrTopicNotFound)
}

func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}
