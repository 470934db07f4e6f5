// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package descriptor

// primitiveNames maps the eight primitive type codes to their Java keyword.
var primitiveNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// PrimitiveName returns the Java keyword for a primitive type code.
func PrimitiveName(code byte) (string, bool) {
	name, ok := primitiveNames[code]
	return name, ok
}

// isPrimitiveCode reports whether c is one of the eight primitive codes.
func isPrimitiveCode(c byte) bool {
	_, ok := primitiveNames[c]
	return ok
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
