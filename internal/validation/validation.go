// Package validation checks create/update payloads before they reach the
// service layer.
//
// The rules here are deliberately hand-written per entity rather than derived
// from the storage schema. Wire contracts and table definitions change for
// different reasons; coupling them means a column rename silently becomes an
// API break.
//
// PRESENCE VS NULL VS ABSENT:
// Partial updates need three states per field — absent (leave it alone),
// null (clear it), and a value (set it). A plain struct with *string fields
// can't tell absent from null after json.Unmarshal, so payloads are decoded
// into map[string]json.RawMessage first and each field is examined
// individually. Nullable fields (description, deadline) accept null; the
// rest reject it.
//
// Validation returns the FULL list of field errors, not just the first one —
// the client renders them all against the form at once.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/taskflow/internal/model"
)

// Field length limits, mirroring the column widths in the store.
const (
	MaxNameLength  = 255
	MaxTitleLength = 255
)

// DateLayout is the only accepted deadline format: a calendar date with no
// time component and no timezone.
const DateLayout = "2006-01-02"

// FieldError identifies one invalid field in a payload. The slice of these is
// what the client receives in the 400 response's "errors" array.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProjectInput is a validated create-project payload.
type ProjectInput struct {
	Name        string
	Description *string
}

// TaskInput is a validated create-task payload.
//
// Optional fields are pointers and stay nil when the client omitted them —
// defaults (status "todo", priority "medium") are the store's job, not ours.
type TaskInput struct {
	Title       string
	Description *string
	Status      *string
	Priority    *string
	Deadline    *string
	ProjectID   string
}

// TaskPatch is a validated partial-update payload. Every field is optional.
//
// For the nullable fields the pointer alone is ambiguous (nil = absent OR
// null), so an explicit Set flag records that the key was present: Set &&
// value == nil means "clear it".
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *string
	Priority       *string
	Deadline       *string
	DeadlineSet    bool
	ProjectID      *string
}

// Empty reports whether the patch touches no fields. An empty patch is still
// valid — the update becomes a pure updated_at bump.
func (p *TaskPatch) Empty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Status == nil &&
		p.Priority == nil && !p.DeadlineSet && p.ProjectID == nil
}

// ParseProject validates a create-project payload.
// Returns the typed input, or a non-empty error list.
func ParseProject(data []byte) (*ProjectInput, []FieldError) {
	fields, errs := decodeObject(data)
	if errs != nil {
		return nil, errs
	}

	in := &ProjectInput{}

	if name, present, err := stringField(fields, "name", false); err != nil {
		errs = append(errs, *err)
	} else if !present || strings.TrimSpace(*name) == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	} else if len(*name) > MaxNameLength {
		errs = append(errs, tooLong("name", MaxNameLength))
	} else {
		in.Name = strings.TrimSpace(*name)
	}

	if desc, present, err := stringField(fields, "description", true); err != nil {
		errs = append(errs, *err)
	} else if present {
		in.Description = desc
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return in, nil
}

// ParseTask validates a create-task payload.
func ParseTask(data []byte) (*TaskInput, []FieldError) {
	fields, errs := decodeObject(data)
	if errs != nil {
		return nil, errs
	}

	in := &TaskInput{}

	if title, present, err := stringField(fields, "title", false); err != nil {
		errs = append(errs, *err)
	} else if !present || strings.TrimSpace(*title) == "" {
		errs = append(errs, FieldError{"title", "title is required"})
	} else if len(*title) > MaxTitleLength {
		errs = append(errs, tooLong("title", MaxTitleLength))
	} else {
		in.Title = strings.TrimSpace(*title)
	}

	if projectID, present, err := stringField(fields, "projectId", false); err != nil {
		errs = append(errs, *err)
	} else if !present || *projectID == "" {
		errs = append(errs, FieldError{"projectId", "projectId is required"})
	} else {
		in.ProjectID = *projectID
	}

	if desc, present, err := stringField(fields, "description", true); err != nil {
		errs = append(errs, *err)
	} else if present {
		in.Description = desc
	}

	// Status is free-form text on purpose: the board only offers todo /
	// in-progress / done, but the store accepts any string and must keep
	// doing so — custom statuses round-trip unchanged.
	if status, present, err := stringField(fields, "status", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		in.Status = status
	}

	if priority, present, err := stringField(fields, "priority", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		if fe := checkPriority(*priority); fe != nil {
			errs = append(errs, *fe)
		} else {
			in.Priority = priority
		}
	}

	if deadline, present, err := stringField(fields, "deadline", true); err != nil {
		errs = append(errs, *err)
	} else if present && deadline != nil {
		if fe := checkDeadline(*deadline); fe != nil {
			errs = append(errs, *fe)
		} else {
			in.Deadline = deadline
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return in, nil
}

// ParseTaskPatch validates a partial task update. Any subset of the
// recognized fields may appear; unknown keys are ignored, matching the
// create endpoints.
func ParseTaskPatch(data []byte) (*TaskPatch, []FieldError) {
	fields, errs := decodeObject(data)
	if errs != nil {
		return nil, errs
	}

	patch := &TaskPatch{}

	if title, present, err := stringField(fields, "title", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		if strings.TrimSpace(*title) == "" {
			errs = append(errs, FieldError{"title", "title must not be empty"})
		} else if len(*title) > MaxTitleLength {
			errs = append(errs, tooLong("title", MaxTitleLength))
		} else {
			trimmed := strings.TrimSpace(*title)
			patch.Title = &trimmed
		}
	}

	if desc, present, err := stringField(fields, "description", true); err != nil {
		errs = append(errs, *err)
	} else if present {
		patch.Description = desc
		patch.DescriptionSet = true
	}

	if status, present, err := stringField(fields, "status", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		patch.Status = status
	}

	if priority, present, err := stringField(fields, "priority", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		if fe := checkPriority(*priority); fe != nil {
			errs = append(errs, *fe)
		} else {
			patch.Priority = priority
		}
	}

	if deadline, present, err := stringField(fields, "deadline", true); err != nil {
		errs = append(errs, *err)
	} else if present {
		if deadline != nil {
			if fe := checkDeadline(*deadline); fe != nil {
				errs = append(errs, *fe)
			} else {
				patch.Deadline = deadline
				patch.DeadlineSet = true
			}
		} else {
			// Explicit null clears the deadline.
			patch.DeadlineSet = true
		}
	}

	if projectID, present, err := stringField(fields, "projectId", false); err != nil {
		errs = append(errs, *err)
	} else if present {
		if *projectID == "" {
			errs = append(errs, FieldError{"projectId", "projectId must not be empty"})
		} else {
			patch.ProjectID = projectID
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return patch, nil
}

// decodeObject decodes the raw body into a field map. Anything that isn't a
// JSON object is a single "body" error — there's no field to point at.
func decodeObject(data []byte) (map[string]json.RawMessage, []FieldError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, []FieldError{{"body", "request body must be a JSON object"}}
	}
	return fields, nil
}

// stringField extracts one string-typed field from the decoded object.
//
// Returns (value, present, error):
//   - key absent           → (nil, false, nil)
//   - key null, nullable   → (nil, true, nil)
//   - key null, !nullable  → error
//   - key a string         → (&s, true, nil)
//   - key anything else    → error
func stringField(fields map[string]json.RawMessage, key string, nullable bool) (*string, bool, *FieldError) {
	raw, ok := fields[key]
	if !ok {
		return nil, false, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if nullable {
			return nil, true, nil
		}
		return nil, true, &FieldError{key, key + " must be a string"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, true, &FieldError{key, key + " must be a string"}
	}
	return &s, true, nil
}

func checkPriority(p string) *FieldError {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	}
	return &FieldError{"priority", fmt.Sprintf("priority must be one of %q, %q, %q",
		model.PriorityLow, model.PriorityMedium, model.PriorityHigh)}
}

func checkDeadline(d string) *FieldError {
	if _, err := time.Parse(DateLayout, d); err != nil {
		return &FieldError{"deadline", "deadline must be a date in YYYY-MM-DD format"}
	}
	return nil
}

func tooLong(field string, max int) FieldError {
	return FieldError{field, fmt.Sprintf("%s must be %d characters or less", field, max)}
}
