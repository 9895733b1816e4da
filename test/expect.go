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

// Package test is a helper package for use in the test files of other
// packages in the module. It exists so that test code can be written in a
// terse, consistent style without every package reinventing its own
// assertion helpers.
package test

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

// outcome resolves the many shapes a "did this succeed" value can take: a
// bool, a nil/non-nil error, or a nil interface.
func outcome(v interface{}) bool {
	if v == nil {
		return true
	}
	switch o := v.(type) {
	case bool:
		return o
	case error:
		return o == nil
	}
	return true
}

// ExpectSuccess fails the test if v indicates failure (false, or a non-nil
// error).
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !outcome(v) {
		t.Fatalf("expected success but got %v", v)
	}
}

// ExpectFailure fails the test if v indicates success (true, or a nil
// error).
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if outcome(v) {
		t.Fatalf("expected failure but got %v", v)
	}
}

// ExpectEquality fails the test if a and b are not deeply equal.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
}

// ExpectInequality fails the test if a and b are deeply equal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("expected %v to not equal %v", a, b)
	}
}

// ExpectApproximate fails the test if a and b differ by more than tolerance.
func ExpectApproximate(t *testing.T, a, b float64, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Fatalf("expected %v to be within %v of %v", a, tolerance, b)
	}
}

// Equate is a general purpose replacement for reflect.DeepEqual style
// comparisons, reported with a consistent message.
func Equate(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("%s: %v does not equal %v", fmt.Sprintf("%T", a), a, b)
	}
}
