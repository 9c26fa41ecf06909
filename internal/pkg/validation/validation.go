// Package validation collects field-level input errors into a result value
// instead of failing on the first one.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/storyshare/core/internal/pkg/apperr"
)

var std = validator.New()

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&_\-]+$`)
	digitPattern    = regexp.MustCompile(`\d`)
	specialPattern  = regexp.MustCompile(`[@$!%*?&_\-]`)
)

const (
	UsernameMin    = 5
	UsernameMax    = 15
	PasswordMin    = 8
	TitleMax       = 255
	MsgUsernameLen = "Username must be between 5 and 15 characters"
	MsgPasswordLen = "Password must be at least 8 characters"
	MsgPasswordMix = "Password must contain at least one number and one special character"
)

// Result accumulates field errors in the order they were found.
type Result struct {
	fields []apperr.FieldError
}

func New() *Result { return &Result{} }

// Add records a message for field.
func (r *Result) Add(field, message string) *Result {
	r.fields = append(r.fields, apperr.FieldError{Field: field, Message: message})
	return r
}

// Check records message when ok is false.
func (r *Result) Check(ok bool, field, message string) *Result {
	if !ok {
		r.Add(field, message)
	}
	return r
}

// Has reports whether field already failed a rule.
func (r *Result) Has(field string) bool {
	for _, f := range r.fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (r *Result) Valid() bool { return len(r.fields) == 0 }

func (r *Result) Fields() []apperr.FieldError { return r.fields }

// Err returns nil when valid, otherwise an apperr validation error.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return apperr.Validation(r.fields...)
}

// Required records "<Label> is required" for blank values.
func (r *Result) Required(field, label, value string) *Result {
	return r.Check(strings.TrimSpace(value) != "", field, label+" is required")
}

// MaxLen records a message when value exceeds max runes.
func (r *Result) MaxLen(field, label, value string, max int) *Result {
	return r.Check(utf8.RuneCountInString(value) <= max, field,
		fmt.Sprintf("%s may not be greater than %d characters", label, max))
}

// Username applies the account username rules.
func (r *Result) Username(field, value string) *Result {
	if r.Has(field) {
		return r
	}
	n := utf8.RuneCountInString(value)
	if n < UsernameMin || n > UsernameMax {
		return r.Add(field, MsgUsernameLen)
	}
	return r.Check(usernamePattern.MatchString(value), field,
		"Username may only contain letters, numbers, dots and underscores")
}

// Email applies a syntactic e-mail check.
func (r *Result) Email(field, value string) *Result {
	if r.Has(field) {
		return r
	}
	return r.Check(IsEmail(value), field, "Email must be a valid email address")
}

// Password applies the password strength rules.
func (r *Result) Password(field, value string) *Result {
	if r.Has(field) {
		return r
	}
	if len(value) < PasswordMin {
		return r.Add(field, MsgPasswordLen)
	}
	ok := passwordCharset.MatchString(value) &&
		digitPattern.MatchString(value) &&
		specialPattern.MatchString(value)
	return r.Check(ok, field, MsgPasswordMix)
}

// IsEmail reports whether s is a syntactically valid e-mail address.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && std.Var(s, "required,email") == nil
}
