package templates

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrBadField  = errors.New("field must look like name:type")
	ErrNoFields  = errors.New("store needs at least one field")
	ErrBadIdent  = errors.New("not a valid Go identifier")
	ErrDupeField = errors.New("duplicate field")
	ErrReserved  = errors.New("name is used by the generated code")
)

// reserved are the names the generated store declares on its own.
var reserved = []string{"state", "Snapshot", "Assign"}

// Field is one observable field of a generated store.
type Field struct {
	Name string
	Type string
}

// ParseField reads a "name:type" flag value.
func ParseField(raw string) (Field, error) {
	name, typ, ok := strings.Cut(raw, ":")
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if !ok || name == "" || typ == "" {
		return Field{}, fmt.Errorf("%w: %q", ErrBadField, raw)
	}
	if !token.IsIdentifier(name) {
		return Field{}, fmt.Errorf("%w: %q", ErrBadIdent, name)
	}
	return Field{Name: name, Type: typ}, nil
}

// Exported is the accessor name, e.g. Title for title.
func (f Field) Exported() string {
	r, size := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToUpper(r)) + f.Name[size:]
}

// Private is the struct field holding the box.
func (f Field) Private() string {
	r, size := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToLower(r)) + f.Name[size:]
}

type Store struct {
	Package string
	Type    string
	Fields  []Field
}

func (s Store) Validate() error {
	for _, ident := range []string{s.Package, s.Type} {
		if !token.IsIdentifier(ident) {
			return fmt.Errorf("%w: %q", ErrBadIdent, ident)
		}
	}
	if s.Type == "reactive" {
		return fmt.Errorf("%w: type %s", ErrReserved, s.Type)
	}
	if len(s.Fields) == 0 {
		return ErrNoFields
	}

	// struct fields and methods share one namespace on the generated type
	owners := make(map[string]string, len(reserved)+4*len(s.Fields))
	for _, name := range reserved {
		owners[name] = ""
	}
	for _, f := range s.Fields {
		if f.Exported() == f.Private() {
			return fmt.Errorf("%w: %q has no upper-case form", ErrBadIdent, f.Name)
		}
		for _, name := range f.declares() {
			owner, taken := owners[name]
			switch {
			case !taken:
				owners[name] = f.Name
			case owner == "":
				return fmt.Errorf("%w: field %s declares %s", ErrReserved, f.Name, name)
			default:
				return fmt.Errorf("%w: %s and %s both declare %s", ErrDupeField, owner, f.Name, name)
			}
		}
	}
	return nil
}

// declares lists the struct field and methods generated for f.
func (f Field) declares() []string {
	exported := f.Exported()
	return []string{f.Private(), exported, "Set" + exported, exported + "Box"}
}

// fieldNames lists the private field names, used in the generated doc comment.
func fieldNames(fields []Field) string {
	var sb strings.Builder
	for i, f := range fields {
		sb.WriteString(f.Private())
		if i < len(fields)-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
