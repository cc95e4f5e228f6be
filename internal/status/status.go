package status

import (
	"fmt"
	"strings"
)

// Status is the workflow state of a chapter or scene.
//
// The set is closed: every value below statusCount has a descriptor, and values outside the
// range are integrity violations (they can only appear through bad upstream data).
type Status uint8

const (
	Draft Status = iota
	InProgress
	Review
	Done

	statusCount
)

// ids are the canonical wire/CLI identifiers, indexed by Status.
var ids = [...]string{
	"draft",
	"in-progress",
	"review",
	"done",
}

// Descriptor is how a status is presented in badges and lists.
type Descriptor struct {
	Icon       string `json:"icon"`
	Label      string `json:"label"`
	StyleClass string `json:"styleClass"`
}

// defaults is indexed by Status (unkeyed, in declaration order).
var defaults = [...]Descriptor{
	{Icon: "○", Label: "Draft", StyleClass: "status-draft"},
	{Icon: "◐", Label: "In progress", StyleClass: "status-in-progress"},
	{Icon: "◑", Label: "Review", StyleClass: "status-review"},
	{Icon: "●", Label: "Done", StyleClass: "status-done"},
}

// Adding a Status without an id and a descriptor fails to compile: both tables must have
// exactly statusCount entries (a negative array length is a compile error).
var (
	_ [len(ids) - int(statusCount)]struct{}
	_ [int(statusCount) - len(ids)]struct{}
	_ [len(defaults) - int(statusCount)]struct{}
	_ [int(statusCount) - len(defaults)]struct{}
)

// IntegrityError reports a status value outside the enumeration.
type IntegrityError struct {
	Value string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: unknown status %s", e.Value)
}

// All returns every status in workflow order.
func All() []Status {
	out := make([]Status, 0, statusCount)
	for s := Status(0); s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Status) Valid() bool { return s < statusCount }

func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return ids[s]
}

// IsEndState reports whether s is the final workflow state.
func (s Status) IsEndState() bool { return s == Done }

// Next advances one step through the workflow. Done stays Done.
func (s Status) Next() Status {
	if !s.Valid() || s+1 >= statusCount {
		return s
	}
	return s + 1
}

// Prev steps back through the workflow. Draft stays Draft.
func (s Status) Prev() Status {
	if !s.Valid() || s == 0 {
		return s
	}
	return s - 1
}

// Parse accepts canonical ids case-insensitively; "in progress" and "in_progress" are
// accepted as "in-progress".
func Parse(v string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(v))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for i, id := range ids {
		if id == norm {
			return Status(i), nil
		}
	}
	return 0, &IntegrityError{Value: fmt.Sprintf("%q", v)}
}

// Unknown stands for a stored id outside the enumeration. It is never Valid, so the fault
// surfaces at Describe and in integrity checks rather than when the data is read.
const Unknown Status = 0xff

// ParseLenient is Parse for data read back from storage: an unknown id becomes Unknown.
func ParseLenient(v string) Status {
	s, err := Parse(v)
	if err != nil {
		return Unknown
	}
	return s
}

// Describe returns the default presentation for s.
func Describe(s Status) (Descriptor, error) {
	if !s.Valid() {
		return Descriptor{}, &IntegrityError{Value: s.String()}
	}
	return defaults[s], nil
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &IntegrityError{Value: s.String()}
	}
	return []byte(ids[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
