// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

import "testing"

func TestRoundStringCap(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, minStringCap},
		{1, minStringCap},
		{minStringCap, minStringCap},
		{minStringCap + 1, minStringCap * 2},
		{17, 32},
		{32, 32},
		{33, 64},
		{1000, 1024},
	}
	for _, c := range cases {
		if got := roundStringCap(c.n); got != c.want {
			t.Errorf("roundStringCap(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

// After a sequence of string assignments, capacity equals the
// growth-rounded maximum length seen so far, and it never shrinks.
func TestStringBufferGrowthMonotonic(t *testing.T) {
	var v value
	lengths := []int{3, 40, 10, 100, 5}
	maxRounded := 0
	for _, n := range lengths {
		v.setString(stringOfLen(n))
		if r := roundStringCap(n); r > maxRounded {
			maxRounded = r
		}
		if v.stringCap() != maxRounded {
			t.Errorf("after writing length %d: cap = %d, want %d", n, v.stringCap(), maxRounded)
		}
		if len(v.str) != n {
			t.Errorf("after writing length %d: len = %d, want %d", n, len(v.str), n)
		}
	}
}

func TestEmptyStringIsValid(t *testing.T) {
	var v value
	v.setString("")
	if len(v.str) != 0 {
		t.Errorf("len = %d, want 0", len(v.str))
	}
	if v.stringCap() < 0 {
		t.Errorf("capacity should never be negative")
	}
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return string(b)
}
