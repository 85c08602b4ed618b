package valueobjects

import "fmt"

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

type Password struct {
	value string
}

// NewPassword checks length only. The upper bound is the bcrypt input limit.
func NewPassword(plain string) (*Password, error) {
	if len(plain) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(plain) > MaxPasswordLength {
		return nil, fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}
	return &Password{value: plain}, nil
}

func (p *Password) String() string {
	return p.value
}
