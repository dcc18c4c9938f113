package snapshot

import "fmt"

// FieldNote describes one field of a summarized object payload.
type FieldNote struct {
	Key string
	// Desc is either a length note ("123 chars") for strings or the
	// field's type name.
	Desc string
}

// Payload is the display form of a value under the truncation policy:
// either the verbatim rendering, or a size note plus a per-field summary
// for large objects. The raw payload of a truncated value is never carried.
type Payload struct {
	// Inline is the verbatim rendering; empty when Truncated.
	Inline string
	// Truncated marks payloads whose rendering exceeded the limit.
	Truncated bool
	// Chars is the rendered length of a truncated payload.
	Chars int
	// Keys lists a truncated object's keys.
	Keys []string
	// Fields summarizes a truncated object's fields.
	Fields []FieldNote
}

// Summarize applies the truncation policy: renderings shorter than maxChars
// are embedded verbatim, anything larger is reduced to its length and, for
// objects, a key list with per-field type/length notes.
func Summarize(value Value, maxChars int) Payload {
	rendered := value.Render()
	if len(rendered) < maxChars {
		return Payload{Inline: rendered}
	}

	payload := Payload{Truncated: true, Chars: len(rendered)}

	if value.Kind != KindObject {
		return payload
	}

	payload.Keys = value.SortedKeys()

	for _, key := range payload.Keys {
		field := value.Obj[key]

		desc := field.Kind.TypeName()
		if field.Kind == KindString {
			desc = fmt.Sprintf("%d chars", len(field.Str))
		}

		payload.Fields = append(payload.Fields, FieldNote{Key: key, Desc: desc})
	}

	return payload
}
