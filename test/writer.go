// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package test

import "strings"

// Writer is an io.Writer that accumulates everything written to it, for
// comparison in tests (eg. against logger output).
type Writer struct {
	buf strings.Builder
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Compare returns true if the accumulated contents equal s.
func (w *Writer) Compare(s string) bool {
	return w.buf.String() == s
}

// Clear empties the accumulated contents.
func (w *Writer) Clear() {
	w.buf.Reset()
}
