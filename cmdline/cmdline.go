// Package cmdline holds the wire-level pieces of the textual command
// protocol: the fixed-capacity line buffer, the delimiter tokenizer and the
// permissive numeric conversions used when reading arguments.
//
// Inbound lines have the form
//
//	<command><delim><arg1><delim><arg2>...<terminator>
//
// There is no escaping. Argument values must not contain a delimiter or the
// terminator.
package cmdline

const (
	// DefaultDelimiters separates the command token and its arguments.
	DefaultDelimiters = ","
	// DefaultTerminator marks the end of a command.
	DefaultTerminator byte = ';'
	// DefaultBufferSize is the line buffer capacity in bytes.
	DefaultBufferSize = 64
	// DefaultMaxCommandLength caps how many characters of a command name
	// take part in matching.
	DefaultMaxCommandLength = 8
	// DefaultDecimals is the number of decimal places used when formatting
	// floating point fields.
	DefaultDecimals = 2
)

// IsPrint reports whether c is a printable ASCII character (space through
// tilde). Only printable characters are stored in a line.
func IsPrint(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

// CapName returns at most max leading bytes of name. Command names are
// compared on their capped form only.
func CapName(name string, max int) string {
	if max > 0 && len(name) > max {
		return name[:max]
	}
	return name
}
