// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package descriptor

import (
	"errors"
	"strings"
)

// ErrNotDescriptor is returned by Parse when the input does not begin with '('.
var ErrNotDescriptor = errors.New("not a method descriptor")

const (
	paramsOpen   = '('
	paramsClose  = ')'
	terminator   = ";"
	arrayMarker  = '['
	objectMarker = 'L'
	pathSep      = '/'
	nestedSep    = '$'

	stringPath = "java/lang/String"
)

// Kind classifies a parameter by the form it takes in the descriptor.
type Kind int

const (
	Primitive Kind = iota
	PrimitiveArray
	String
	StringArray
	Custom
	CustomArray
)

var kindNames = [...]string{
	Primitive:      "primitive",
	PrimitiveArray: "primitive-array",
	String:         "string",
	StringArray:    "string-array",
	Custom:         "custom",
	CustomArray:    "custom-array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsArray reports whether the kind is one of the array forms.
func (k Kind) IsArray() bool {
	return k == PrimitiveArray || k == StringArray || k == CustomArray
}

// Param is one parameter recovered from a descriptor.
type Param struct {
	// Pos is the byte offset in the descriptor where the parameter starts,
	// including any leading array markers.
	Pos int

	// Kind is the parameter form.
	Kind Kind

	// Name is the simple type name without array suffix.
	Name string

	// Dims is the number of array dimensions (0 for scalars).
	Dims int
}

// String renders the parameter in benchmark notation, e.g. "int[]".
func (p Param) String() string {
	if p.Dims == 0 {
		return p.Name
	}
	return p.Name + strings.Repeat("[]", p.Dims)
}

// Convert renders the parameter list of a method descriptor.
//
// It returns ok == false when desc does not start with '('. A method without
// parameters yields ("", true).
func Convert(desc string) (string, bool) {
	params, err := Parse(desc)
	if err != nil {
		return "", false
	}
	return Join(params), true
}

// Join renders params in order, separated by ", ".
func Join(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// Parse extracts the parameters of a method descriptor in declaration order.
//
// Only the section between the leading '(' and the first ')' is read; the
// return type is ignored. When no ')' is present the remainder of the input
// is treated as the parameter section.
func Parse(desc string) ([]Param, error) {
	if desc == "" || desc[0] != paramsOpen {
		return nil, ErrNotDescriptor
	}

	end := strings.IndexByte(desc, paramsClose)
	if end < 0 {
		end = len(desc)
	}
	section := desc[1:end]
	if section == "" {
		return nil, nil
	}

	var params []Param
	offset := 1
	for _, chunk := range strings.Split(section, terminator) {
		params = scanChunk(chunk, offset, params)
		offset += len(chunk) + len(terminator)
	}
	return params, nil
}

// scanChunk appends the parameters found in one ';'-delimited chunk.
//
// A chunk holds any number of primitive (or primitive array) codes followed
// by at most one reference, whose terminator was removed by the split. base
// is the chunk's offset in the full descriptor.
func scanChunk(chunk string, base int, out []Param) []Param {
	// Set once a path separator shows up outside a reference; any primitive
	// code after it belongs to a qualified name, not to the parameter list.
	pathSeen := false

	for i := 0; i < len(chunk); {
		start := i
		dims := 0
		for i < len(chunk) && chunk[i] == arrayMarker {
			dims++
			i++
		}
		if i >= len(chunk) {
			break
		}

		c := chunk[i]
		switch {
		case c == objectMarker:
			if p, ok := referenceParam(chunk[i+1:], dims); ok {
				p.Pos = base + start
				out = append(out, p)
			}
			// The reference runs to the terminator, which ends the chunk.
			return out

		case isPrimitiveCode(c):
			i++
			// A lowercase letter right after the code means we are inside
			// an identifier that happens to start with a reserved letter.
			if i < len(chunk) && isLower(chunk[i]) {
				continue
			}
			if pathSeen {
				continue
			}
			name, _ := PrimitiveName(c)
			kind := Primitive
			if dims > 0 {
				kind = PrimitiveArray
			}
			out = append(out, Param{Pos: base + start, Kind: kind, Name: name, Dims: dims})

		default:
			if c == pathSep {
				pathSeen = true
			}
			i++
		}
	}
	return out
}

// referenceParam builds a parameter from the text after an 'L' marker.
func referenceParam(path string, dims int) (Param, bool) {
	name := SimpleName(path)
	if name == "" {
		return Param{}, false
	}

	var kind Kind
	switch {
	case path == stringPath && dims > 0:
		kind = StringArray
	case path == stringPath:
		kind = String
	case dims > 0:
		kind = CustomArray
	default:
		kind = Custom
	}
	return Param{Kind: kind, Name: name, Dims: dims}, true
}

// SimpleName strips the package path and outer classes from a slash-separated
// binary class name: "com/acme/Outer$Inner" becomes "Inner".
//
// Names without '/' or '$' are returned unchanged. A trailing '$' is kept,
// so "com/acme/Outer$" becomes "Outer$" rather than an empty name.
func SimpleName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, pathSep); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, nestedSep); i >= 0 && i+1 < len(name) {
		name = name[i+1:]
	}
	return name
}
