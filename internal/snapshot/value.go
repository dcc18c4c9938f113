// Package snapshot implements the account-state snapshot differ: a closed
// JSON value model, the status exclusion filter, and the depth-one
// structural comparator.
package snapshot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/execlens/execlens/internal/jsonio"
)

// Kind enumerates the closed set of value shapes. Keeping the set closed
// makes every type dispatch in the comparator an exhaustive switch.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// TypeName returns the JSON name of the kind.
func (k Kind) TypeName() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of a loaded snapshot record. Exactly the fields implied
// by Kind are meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Arr    []Value
	Obj    map[string]Value
}

// Document maps record ids to their state values. Both compared snapshots
// are read-only for the duration of a run.
type Document map[string]Value

// DecodeDocument parses data as a mapping from record id to arbitrary value.
// Valid JSON whose top level is not an object fails with jsonio.ErrSchema.
func DecodeDocument(data []byte) (Document, error) {
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: top level is not an object", jsonio.ErrSchema)
	}

	doc := make(Document)

	iter.ReadObjectCB(func(valueIter *jsoniter.Iterator, id string) bool {
		doc[id] = decodeValue(valueIter)

		return valueIter.Error == nil
	})

	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %v", jsonio.ErrSchema, iter.Error)
	}

	return doc, nil
}

func decodeValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()

		return Value{Kind: KindNull}
	case jsoniter.BoolValue:
		return Value{Kind: KindBool, Bool: iter.ReadBool()}
	case jsoniter.NumberValue:
		return Value{Kind: KindNumber, Number: iter.ReadFloat64()}
	case jsoniter.StringValue:
		return Value{Kind: KindString, Str: iter.ReadString()}
	case jsoniter.ArrayValue:
		value := Value{Kind: KindArray}

		iter.ReadArrayCB(func(elemIter *jsoniter.Iterator) bool {
			value.Arr = append(value.Arr, decodeValue(elemIter))

			return elemIter.Error == nil
		})

		return value
	case jsoniter.ObjectValue:
		value := Value{Kind: KindObject, Obj: make(map[string]Value)}

		iter.ReadObjectCB(func(fieldIter *jsoniter.Iterator, key string) bool {
			value.Obj[key] = decodeValue(fieldIter)

			return fieldIter.Error == nil
		})

		return value
	default:
		iter.ReportError("decodeValue", "invalid value")

		return Value{Kind: KindNull}
	}
}

// Equal reports deep structural equality of two values. Identity plays no
// role; two independently decoded trees with the same content are equal.
func Equal(left, right Value) bool {
	if left.Kind != right.Kind {
		return false
	}

	switch left.Kind {
	case KindNull:
		return true
	case KindBool:
		return left.Bool == right.Bool
	case KindNumber:
		return left.Number == right.Number
	case KindString:
		return left.Str == right.Str
	case KindArray:
		if len(left.Arr) != len(right.Arr) {
			return false
		}

		for i := range left.Arr {
			if !Equal(left.Arr[i], right.Arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(left.Obj) != len(right.Obj) {
			return false
		}

		for key, leftField := range left.Obj {
			rightField, present := right.Obj[key]
			if !present || !Equal(leftField, rightField) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Render returns a deterministic compact textual form of the value. Object
// keys are emitted sorted so the same tree always renders identically; the
// length of this form drives the diff truncation policy.
func (v Value) Render() string {
	var sb strings.Builder

	v.render(&sb)

	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.Number, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.Str))
	case KindArray:
		sb.WriteByte('[')

		for i, elem := range v.Arr {
			if i > 0 {
				sb.WriteString(", ")
			}

			elem.render(sb)
		}

		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')

		for i, key := range v.SortedKeys() {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.Quote(key))
			sb.WriteString(": ")
			v.Obj[key].render(sb)
		}

		sb.WriteByte('}')
	}
}

// SortedKeys returns the object's keys in lexicographic order.
// Returns nil for non-object values.
func (v Value) SortedKeys() []string {
	if v.Kind != KindObject {
		return nil
	}

	keys := make([]string, 0, len(v.Obj))
	for key := range v.Obj {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
