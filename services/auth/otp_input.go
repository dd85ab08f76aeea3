package auth

import "strings"

// OTPLength is the number of single-digit cells in a verification code.
const OTPLength = 6

// OTPInput models the six-cell code entry: one digit per cell, auto-advance
// on fill, backspace to the previous cell, and clipboard paste.
type OTPInput struct {
	cells [OTPLength]string
	focus int
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= OTPLength {
		return OTPLength - 1
	}
	return i
}

// Focus is the index of the cell that currently has focus.
func (o *OTPInput) Focus() int { return o.focus }

// Enter sets cell index to the last digit typed into it and returns the new
// focus. Non-digits are dropped; an empty result clears the cell.
func (o *OTPInput) Enter(index int, value string) int {
	index = clampIndex(index)
	digits := digitsOnly(value)
	digit := ""
	if digits != "" {
		digit = digits[len(digits)-1:]
	}
	o.cells[index] = digit
	o.focus = index
	if digit != "" && index < OTPLength-1 {
		o.focus = index + 1
	}
	return o.focus
}

// Backspace clears a filled cell, or moves focus back from an empty one.
func (o *OTPInput) Backspace(index int) int {
	index = clampIndex(index)
	o.focus = index
	if o.cells[index] != "" {
		o.cells[index] = ""
		return o.focus
	}
	if index > 0 {
		o.focus = index - 1
	}
	return o.focus
}

// Paste replaces every cell with the first six digits of text, left to right,
// and focuses the next empty cell or the last one.
func (o *OTPInput) Paste(text string) int {
	digits := digitsOnly(text)
	if len(digits) > OTPLength {
		digits = digits[:OTPLength]
	}
	o.cells = [OTPLength]string{}
	for i := 0; i < len(digits); i++ {
		o.cells[i] = digits[i : i+1]
	}
	o.focus = len(digits)
	if o.focus > OTPLength-1 {
		o.focus = OTPLength - 1
	}
	return o.focus
}

// Complete reports whether all six cells hold a digit.
func (o *OTPInput) Complete() bool {
	for _, c := range o.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Code joins the cells into the submitted value.
func (o *OTPInput) Code() string {
	return strings.Join(o.cells[:], "")
}

// Cells returns a copy of the cell contents.
func (o *OTPInput) Cells() []string {
	out := make([]string, OTPLength)
	copy(out, o.cells[:])
	return out
}

// InputFromCells replays cell-by-cell entry, as a browser form would submit it.
func InputFromCells(cells []string) *OTPInput {
	in := &OTPInput{}
	for i, c := range cells {
		if i >= OTPLength {
			break
		}
		in.Enter(i, c)
	}
	return in
}
