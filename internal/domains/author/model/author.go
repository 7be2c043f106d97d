package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Author is the catalog record owned by the author service. It is not
// linked to Book.Author in any way.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type AuthorInput struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (in *AuthorInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
}

// Validate requires a non-blank name
func (in AuthorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.By(notBlank)),
	)
}

// Matches is a case-insensitive substring test on name and bio
func (a *Author) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.Bio), q)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
