// Package control maps single-letter mnemonics to terminal control bytes.
package control

import (
	"sort"
	"strings"
)

// table is never mutated after init.
var table = map[string]string{
	"a": "\x01", // beginning of line
	"b": "\x02", // back one character
	"c": "\x03", // interrupt
	"d": "\x04", // end of file
	"e": "\x05", // end of line
	"f": "\x06", // forward one character
	"g": "\x07", // cancel
	"k": "\x0b", // kill to end of line
	"l": "\x0c", // clear screen
	"n": "\x0e", // next history entry
	"p": "\x10", // previous history entry
	"q": "\x11", // resume output
	"r": "\x12", // reverse search
	"s": "\x13", // suspend output
	"t": "\x14", // transpose
	"u": "\x15", // kill to beginning of line
	"v": "\x16", // literal insert
	"w": "\x17", // kill word
	"x": "\x18",
	"y": "\x19", // yank
	"z": "\x1a", // suspend process
}

var supported = func() []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}()

// Lookup returns the control sequence for a mnemonic, matched case-insensitively.
func Lookup(mnemonic string) (string, bool) {
	seq, ok := table[strings.ToLower(mnemonic)]
	return seq, ok
}

// Supported returns the sorted list of supported mnemonics.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}
