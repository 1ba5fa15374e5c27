package viewmodel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages stored in containers for client-side validation failures.
const (
	MsgRequiredFields   = "all fields required"
	MsgInvalidEmail     = "invalid email format"
	MsgEmailTaken       = "email already registered"
	MsgUsernameTaken    = "username already exists"
	MsgMissingID        = "nurse id required"
	MsgMissingSearchKey = "search term required"
	MsgNotFound         = "nurse not found"
)

// ValidationError is a field-level failure detected before any request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	validate = validator.New()
	// domainRe requires at least one dot in the part after "@".
	domainRe = regexp.MustCompile(`^[^@\s]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)+$`)
)

// validEmail reports whether s is local-part@domain with a dotted domain.
func validEmail(s string) bool {
	if validate.Var(s, "required,email") != nil {
		return false
	}
	return domainRe.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireFields returns the first blank field name, or "".
func requireFields(fields ...[2]string) string {
	for _, f := range fields {
		if blank(f[1]) {
			return f[0]
		}
	}
	return ""
}
