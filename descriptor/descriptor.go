// Package descriptor loads signature declarations from YAML files.
//
// A descriptor file lists functions with their parameters and return type,
// spelled as type expressions:
//
//	functions:
//	  - name: add
//	    doc: Adds two integers.
//	    params:
//	      - {name: a, type: int}
//	      - {name: b, type: "int | float64"}
//	      - {name: note, optional: true}
//	    return: int
//
// Each decoded function becomes a hints.Hints usable with checktype.WithHints.
package descriptor

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ygrebnov/errorc"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/checktype/constants"
	"github.com/ygrebnov/checktype/errors"
	"github.com/ygrebnov/checktype/hints"
)

// File is the document layout of a descriptor file.
type File struct {
	Functions []Function `yaml:"functions"`
}

// Function declares one callable.
type Function struct {
	Name     string    `yaml:"name"`
	Doc      string    `yaml:"doc,omitempty"`
	Params   []Param   `yaml:"params,omitempty"`
	Variadic bool      `yaml:"variadic,omitempty"`
	Return   *TypeExpr `yaml:"return,omitempty"`
}

// Param declares one parameter. A missing type declares nothing.
type Param struct {
	Name     string    `yaml:"name"`
	Type     *TypeExpr `yaml:"type,omitempty"`
	Optional bool      `yaml:"optional,omitempty"`
}

// TypeExpr is a type expression as written in YAML: either a scalar such
// as "int | string" or a sequence of such scalars.
type TypeExpr struct {
	Terms []string
}

func (e *TypeExpr) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.Terms = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		var terms []string
		if err := value.Decode(&terms); err != nil {
			return err
		}
		e.Terms = terms
		return nil
	default:
		return errorc.With(
			errors.ErrDescriptor,
			errorc.String(errors.ErrorFieldReason, "type must be a string or a list of strings"),
		)
	}
}

func (e TypeExpr) MarshalYAML() (any, error) {
	if len(e.Terms) == 1 {
		return e.Terms[0], nil
	}
	return e.Terms, nil
}

// String joins the terms into a single expression.
func (e TypeExpr) String() string {
	return strings.Join(e.Terms, " "+constants.TypeSeparator+" ")
}

// Error reports a descriptor that cannot be turned into declarations.
// It unwraps to errors.ErrDescriptor and to its cause.
type Error struct {
	Source   string
	Function string
	Param    string
	Err      error
}

func (e *Error) Error() string {
	return errorc.With(
		errors.ErrDescriptor,
		errorc.String(errors.ErrorFieldSource, e.Source),
		errorc.String(errors.ErrorFieldCallableName, e.Function),
		errorc.String(errors.ErrorFieldParamName, e.Param),
		errorc.Error(errors.ErrorFieldCause, e.Err),
	).Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{errors.ErrDescriptor}
	}
	return []error{errors.ErrDescriptor, e.Err}
}

// Set is an ordered collection of declarations loaded from one source.
type Set struct {
	source string
	decls  []hints.Hints
	index  map[string]int
}

// Source returns the file path the set was loaded from, if any.
func (s *Set) Source() string { return s.source }

// Len returns the number of declarations.
func (s *Set) Len() int { return len(s.decls) }

// All returns copies of the declarations in file order.
func (s *Set) All() []hints.Hints {
	out := make([]hints.Hints, len(s.decls))
	for i, h := range s.decls {
		out[i] = h.Clone()
	}
	return out
}

// Names returns the declared function names in file order.
func (s *Set) Names() []string {
	names := make([]string, len(s.decls))
	for i, h := range s.decls {
		names[i] = h.Name
	}
	return names
}

// Lookup returns a copy of the declaration named name.
func (s *Set) Lookup(name string) (hints.Hints, bool) {
	i, ok := s.index[name]
	if !ok {
		return hints.Hints{}, false
	}
	return s.decls[i].Clone(), true
}

// Parse decodes a descriptor document. A nil registry means DefaultTypes.
func Parse(data []byte, types *Types) (*Set, error) {
	return Decode(bytes.NewReader(data), types)
}

// Decode reads a descriptor document from r. The stream must hold a single
// YAML document. A nil registry means DefaultTypes.
func Decode(r io.Reader, types *Types) (*Set, error) {
	return decode(r, "", types)
}

// LoadFile reads the descriptor file at path. A nil registry means DefaultTypes.
func LoadFile(path string, types *Types) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Source: path, Err: err}
	}
	defer f.Close()

	return decode(f, path, types)
}

func decode(r io.Reader, source string, types *Types) (*Set, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, &Error{Source: source, Err: err}
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, &Error{Source: source, Err: reason("more than one YAML document")}
	case err != io.EOF:
		return nil, &Error{Source: source, Err: err}
	}
	return file.Resolve(source, types)
}

// Resolve turns the decoded functions into declarations.
func (f File) Resolve(source string, types *Types) (*Set, error) {
	s := &Set{
		source: source,
		decls:  make([]hints.Hints, 0, len(f.Functions)),
		index:  make(map[string]int, len(f.Functions)),
	}
	for _, fn := range f.Functions {
		if fn.Name == "" {
			return nil, &Error{Source: source, Err: reason("function without name")}
		}
		if _, exists := s.index[fn.Name]; exists {
			return nil, &Error{Source: source, Function: fn.Name, Err: reason("duplicate function name")}
		}

		h, err := fn.hints(source, types)
		if err != nil {
			return nil, err
		}
		s.index[fn.Name] = len(s.decls)
		s.decls = append(s.decls, h)
	}
	return s, nil
}

func (fn Function) hints(source string, types *Types) (hints.Hints, error) {
	h := hints.Hints{
		Name:     fn.Name,
		Doc:      strings.TrimSpace(fn.Doc),
		Params:   make([]hints.Param, len(fn.Params)),
		Variadic: fn.Variadic,
	}
	for i, p := range fn.Params {
		h.Params[i] = hints.Param{Name: p.Name, Optional: p.Optional}
		if p.Type == nil {
			continue
		}
		c, err := ParseType(p.Type.String(), types)
		if err != nil {
			return hints.Hints{}, &Error{Source: source, Function: fn.Name, Param: p.Name, Err: err}
		}
		h.Params[i].Type = hints.Declared(c)
	}
	if fn.Return != nil {
		c, err := ParseType(fn.Return.String(), types)
		if err != nil {
			return hints.Hints{}, &Error{Source: source, Function: fn.Name, Err: err}
		}
		h.Return = hints.Declared(c)
	}
	return h, nil
}

func reason(msg string) error {
	return errorc.With(errors.ErrDescriptor, errorc.String(errors.ErrorFieldReason, msg))
}
