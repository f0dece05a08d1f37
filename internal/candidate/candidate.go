// Package candidate defines the recruiting candidate record searched by scout
// and loads those records from a candidates directory.
package candidate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Find when no record matches the reference.
	ErrNotFound = errors.New("candidate not found")
	// ErrInvalid wraps validation failures for a loaded record.
	ErrInvalid = errors.New("invalid candidate")
)

// Candidate is one applicant profile. Records are treated as immutable once
// loaded; search functions never modify them.
type Candidate struct {
	ID              string   `yaml:"id,omitempty" json:"id"`
	Name            string   `yaml:"name" json:"name" validate:"required"`
	Title           string   `yaml:"title" json:"title"`
	Skills          []string `yaml:"skills" json:"skills" validate:"max=100"`
	Location        string   `yaml:"location" json:"location"`
	Summary         string   `yaml:"summary" json:"summary"`
	ExperienceYears float64  `yaml:"experience_years" json:"experienceYears" validate:"gte=0,lte=80"`

	// Source is the file the record was loaded from, relative to the
	// candidates directory. It is not part of the searchable text.
	Source string `yaml:"-" json:"source,omitempty"`
}

var validate = validator.New()

// Validate checks the record's declared constraints.
func Validate(c Candidate) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// idNamespace scopes generated candidate IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kamusis/scout-cli/candidate"))

// DeriveID returns a stable ID for a record that does not declare one. The
// same name, title and location always produce the same ID.
func DeriveID(c Candidate) string {
	key := strings.Join([]string{
		strings.TrimSpace(c.Name),
		strings.TrimSpace(c.Title),
		strings.TrimSpace(c.Location),
	}, "\x00")
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}
