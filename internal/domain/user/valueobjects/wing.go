package valueobjects

import "fmt"

// Wing is the male/female hostel-gender partition that scopes wardens,
// staff and public complaint visibility.
type Wing string

const (
	WingMale      Wing = "male"
	WingFemale    Wing = "female"
	WingUndefined Wing = "undefined"
)

var validWings = map[Wing]bool{
	WingMale:      true,
	WingFemale:    true,
	WingUndefined: true,
}

func (w Wing) String() string {
	return string(w)
}

func (w Wing) IsValid() bool {
	return validWings[w]
}

// IsDefined reports whether w names an actual wing.
func (w Wing) IsDefined() bool {
	return w == WingMale || w == WingFemale
}

// Matches is true only when both wings are defined and equal. An undefined
// wing matches nothing, not even another undefined wing.
func (w Wing) Matches(other Wing) bool {
	return w.IsDefined() && w == other
}

// NewWing parses a stored wing. An empty string is read as undefined.
func NewWing(s string) (Wing, error) {
	if s == "" {
		return WingUndefined, nil
	}
	w := Wing(s)
	if !w.IsValid() {
		return "", fmt.Errorf("invalid wing: %s", s)
	}
	return w, nil
}
