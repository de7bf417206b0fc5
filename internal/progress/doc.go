// Package progress models a loan application's lifecycle as an ordered list of
// stages and derives everything the views need from it: the status glyph, the
// per-action visibility rule and the coarser action-row rule, and expansion
// gating. The derivation functions are pure so they can be tested without a
// terminal.
package progress
