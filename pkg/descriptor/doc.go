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

// Package descriptor converts JVM method descriptors into the parameter
// notation used by benchmark method signatures.
//
// A method descriptor is the compact encoding found in class files:
//
//	(ILjava/lang/String;[I)V
//
// The converter reads only the parenthesized parameter section and renders
// each parameter by its simple name:
//
//	s, ok := descriptor.Convert("(ILjava/lang/String;[I)V")
//	// s == "int, String, int[]", ok == true
//
// # Result Forms
//
// Convert distinguishes three outcomes:
//   - ok == false: the input does not start with '(' and is not a descriptor.
//     Callers fall back to the raw signature.
//   - s == "" and ok == true: the method takes no parameters.
//   - otherwise: a ", "-separated list with one entry per parameter.
//
// # Type Names
//
// Primitive codes map to their keyword (B byte, C char, D double, F float,
// I int, J long, S short, Z boolean). Reference types keep only the text
// after the last '/' and, for nested classes, after the last '$', so
// Lcom/acme/Outer$Inner; becomes Inner. Each array dimension adds "[]".
//
// # Scanning
//
// The parameter section is split on ';' and every chunk is scanned left to
// right. Primitive codes are only recognized outside of reference names, so
// the S in [SLorg/test/govind/SType; is never read as a short. Text that
// matches no parameter form is skipped without error.
//
// All functions are pure and safe for concurrent use.
package descriptor
