package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+/-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// studentEmailRegex matches campus matriculation addresses such as
// 2021/ENG/042@gmail.com.
var studentEmailRegex = regexp.MustCompile(`^20\d{2}/(ENG|AGR|TEC)/\d{3}@gmail\.com$`)

// Email represents an email address value object
type Email struct {
	value string
}

// NewEmail creates a new Email value object with validation
func NewEmail(value string) (*Email, error) {
	normalized := strings.TrimSpace(value)

	if normalized == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	if len(normalized) > 255 {
		return nil, fmt.Errorf("email cannot exceed 255 characters")
	}

	if !emailRegex.MatchString(normalized) {
		return nil, fmt.Errorf("invalid email format: %s", value)
	}

	// The faculty code is upper case in matriculation addresses, so only the
	// domain part is folded.
	at := strings.LastIndex(normalized, "@")
	normalized = normalized[:at] + strings.ToLower(normalized[at:])

	return &Email{value: normalized}, nil
}

// NewStudentEmail accepts only campus matriculation addresses.
func NewStudentEmail(value string) (*Email, error) {
	email, err := NewEmail(value)
	if err != nil {
		return nil, err
	}
	if !email.IsStudentEmail() {
		return nil, fmt.Errorf("student email must look like 2021/ENG/001@gmail.com")
	}
	return email, nil
}

func (e *Email) String() string {
	return e.value
}

func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.value == other.value
}

func (e *Email) IsStudentEmail() bool {
	return studentEmailRegex.MatchString(e.value)
}
