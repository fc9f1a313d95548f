// Package composite renders obfuscation regions onto individual frames.
//
// A Compositor takes a decoded frame plus the regions active on it,
// clips each region to the frame, and applies the matching transforms in
// list order. Later regions operate on the output of earlier ones, so
// overlapping regions accumulate rather than race. The input frame is
// never modified.
package composite
