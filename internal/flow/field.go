package flow

// DefaultValueMissingMessage is shown when a required field is left empty
// and no field-specific message is configured.
const DefaultValueMissingMessage = "Complete this field."

// Field is one input owned by a step. It carries the live value between the
// user's edits and the commit into the draft, and implements the validator
// contract: report validity on demand, expose an error message while
// invalid, clear the message on the next edit.
type Field struct {
	name         string
	label        string
	required     bool
	maxLength    int
	missingMsg   string
	value        string
	errorMessage string
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// Required marks the field as mandatory with the given value-missing
// message. An empty message falls back to DefaultValueMissingMessage.
func Required(message string) FieldOption {
	return func(f *Field) {
		f.required = true
		if message == "" {
			message = DefaultValueMissingMessage
		}
		f.missingMsg = message
	}
}

// MaxLength caps the field's value; longer input is truncated on assignment.
func MaxLength(n int) FieldOption {
	return func(f *Field) { f.maxLength = n }
}

// NewField creates a field bound to the given draft field name.
func NewField(name, label string, opts ...FieldOption) *Field {
	f := &Field{name: name, label: label}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the draft field name the field commits to.
func (f *Field) Name() string { return f.name }

// Label returns the human-readable field label.
func (f *Field) Label() string { return f.label }

// Value returns the current live value.
func (f *Field) Value() string { return f.value }

// SetValue records a new live value and clears any pending error message.
// Values beyond the configured maximum length are truncated. The limit
// counts runes, matching the rune-based input limits in the forms, so
// truncation never splits a multi-byte character.
func (f *Field) SetValue(v string) {
	if f.maxLength > 0 {
		if r := []rune(v); len(r) > f.maxLength {
			v = string(r[:f.maxLength])
		}
	}
	f.value = v
	f.errorMessage = ""
}

// ReportValidity checks the field and records an error message when it is
// invalid. It returns whether the field is valid.
func (f *Field) ReportValidity() bool {
	if f.required && f.value == "" {
		f.errorMessage = f.missingMsg
		return false
	}
	f.errorMessage = ""
	return true
}

// ErrorMessage returns the message recorded by the last failed validity
// check, or "" when the field is valid or has been edited since.
func (f *Field) ErrorMessage() string { return f.errorMessage }

// Valid reports whether a value satisfies the field's constraints without
// touching the error message. Suitable for live form validation.
func (f *Field) Valid(v string) bool {
	return !f.required || v != ""
}
