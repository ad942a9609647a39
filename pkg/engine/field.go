package engine

import (
	"fmt"
	"strings"
)

// FieldType classifies the editor field the keyboard types into.
type FieldType int

const (
	FieldText FieldType = iota
	FieldShortMessage
	FieldNumber
	FieldPhone
	FieldDatetime
	FieldPassword
	FieldVisiblePassword
	FieldWebPassword
	FieldEmail
	FieldWebEmail
	FieldURI
)

var fieldNames = map[FieldType]string{
	FieldText:            "text",
	FieldShortMessage:    "short_message",
	FieldNumber:          "number",
	FieldPhone:           "phone",
	FieldDatetime:        "datetime",
	FieldPassword:        "password",
	FieldVisiblePassword: "visible_password",
	FieldWebPassword:     "web_password",
	FieldEmail:           "email",
	FieldWebEmail:        "web_email",
	FieldURI:             "uri",
}

func (f FieldType) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(f))
}

// ParseFieldType maps a field name to its type. Unknown names are an error.
func ParseFieldType(name string) (FieldType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FieldText, nil
	}
	for t, n := range fieldNames {
		if n == name {
			return t, nil
		}
	}
	return FieldText, fmt.Errorf("unknown field type %q", name)
}

// Field is what the host reports when an editor gains focus.
type Field struct {
	Type FieldType
	// NoSuggestions is the editor's request to disable suggestions.
	NoSuggestions bool
}

// fieldPrediction is the prediction snapshot a field starts with.
type fieldPrediction struct {
	predictionOn     bool
	supportsAutoPick bool
	autoSpace        bool
}

func configureField(f Field, autoSpacePref bool) fieldPrediction {
	out := fieldPrediction{predictionOn: true, autoSpace: autoSpacePref}
	switch f.Type {
	case FieldNumber, FieldPhone, FieldDatetime:
		out.predictionOn = false
	case FieldPassword, FieldVisiblePassword, FieldWebPassword:
		out.predictionOn = false
	case FieldEmail, FieldWebEmail:
		out.autoSpace = false
	case FieldURI:
	default:
		out.supportsAutoPick = true
	}
	if f.NoSuggestions {
		out.predictionOn = false
	}
	return out
}
