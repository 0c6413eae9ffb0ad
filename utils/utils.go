// Package utils provides utility functions for the application.
package utils

import "unicode/utf8"

func ToPtr[T any](v T) *T {
	return &v
}

// IsValidUTF8HTML reports whether b can be served as a text/html body
func IsValidUTF8HTML(b []byte) bool {
	return utf8.Valid(b)
}
