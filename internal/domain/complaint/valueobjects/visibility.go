package valueobjects

import "fmt"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

const DefaultVisibility = VisibilityPublic

func (v Visibility) String() string {
	return string(v)
}

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

func (v Visibility) IsPublic() bool {
	return v == VisibilityPublic
}

func (v Visibility) IsPrivate() bool {
	return v == VisibilityPrivate
}

func NewVisibility(s string) (Visibility, error) {
	if s == "" {
		return DefaultVisibility, nil
	}
	v := Visibility(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return v, nil
}
