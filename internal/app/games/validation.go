package games

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

// CreateInput is the candidate record accepted by Create. Unknown JSON fields are ignored.
type CreateInput struct {
	Title       string `json:"title" validate:"required"`
	ReleaseDate string `json:"releaseDate" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
}

// UpdateInput identifies the target game and carries the fields to change.
type UpdateInput struct {
	ID          string  `json:"id" validate:"required"`
	Title       *string `json:"title" validate:"omitnil,min=1"`
	ReleaseDate *string `json:"releaseDate" validate:"omitnil,min=1"`
	Genre       *string `json:"genre" validate:"omitnil,min=1"`
}

// Patch extracts the mutable fields.
func (in UpdateInput) Patch() domaingames.GamePatch {
	return domaingames.GamePatch{
		Title:       in.Title,
		ReleaseDate: in.ReleaseDate,
		Genre:       in.Genre,
	}
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

// AsValidationError unwraps err into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreate checks that title, releaseDate and genre are present and not blank.
func ValidateCreate(in CreateInput) error {
	trimmed := CreateInput{
		Title:       strings.TrimSpace(in.Title),
		ReleaseDate: strings.TrimSpace(in.ReleaseDate),
		Genre:       strings.TrimSpace(in.Genre),
	}
	return toValidationError(validate.Struct(trimmed), "missing required fields")
}

// ValidateUpdate checks that the id is present, at least one field is supplied,
// and no supplied field is blank.
func ValidateUpdate(in UpdateInput) error {
	trimmed := UpdateInput{
		ID:          strings.TrimSpace(in.ID),
		Title:       trimPtr(in.Title),
		ReleaseDate: trimPtr(in.ReleaseDate),
		Genre:       trimPtr(in.Genre),
	}
	if trimmed.ID == "" {
		return &ValidationError{Message: "id is required"}
	}
	if trimmed.Patch().IsEmpty() {
		return &ValidationError{Message: "at least one of title, releaseDate, genre is required"}
	}
	return toValidationError(validate.Struct(trimmed), "fields must not be empty")
}

func toValidationError(err error, message string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: message, Fields: fields}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
