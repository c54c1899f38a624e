// Package conv provides bounds checked integer conversions for length
// fields read from or written to persisted blocks.
package conv
