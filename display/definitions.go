// Package display renders a decoded frame tree the way a packet-capture
// tool does: one compact line per protocol layer, or a tabular view
// across many packets, reusing the rendering conventions (hex for
// checksums/flags, decimal for sizes/ports, quoted text) that recur
// across every view's String method.
package display

import "fmt"

// FieldClass tags a [Field] with the rendering rule [Formatter] applies
// to its value.
type FieldClass uint8

const (
	FieldClassGeneric   FieldClass = iota // generic
	FieldClassAddress                     // address
	FieldClassPort                        // port
	FieldClassFlags                       // flags
	FieldClassChecksum                    // checksum
	FieldClassID                          // identification
	FieldClassSize                        // size
	FieldClassText                        // text
	FieldClassTimestamp                   // timestamp
	FieldClassOperation                   // operation
)

var fieldClassNames = map[FieldClass]string{
	FieldClassGeneric:   "generic",
	FieldClassAddress:   "address",
	FieldClassPort:      "port",
	FieldClassFlags:     "flags",
	FieldClassChecksum:  "checksum",
	FieldClassID:        "identification",
	FieldClassSize:      "size",
	FieldClassText:      "text",
	FieldClassTimestamp: "timestamp",
	FieldClassOperation: "operation",
}

func (c FieldClass) String() string {
	if name, ok := fieldClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("FieldClass(%d)", uint8(c))
}

// Field is a single named value surfaced by a decoded frame view. Class
// decides how [Formatter] renders Value: a Stringer address prints as
// is, a checksum or flags value prints as hex, text is quoted, and a
// timestamp is formatted with the configured layout.
type Field struct {
	Name  string
	Class FieldClass
	Value any
}

// Row is one protocol layer of a decoded frame, ready for [Table].
type Row struct {
	Protocol string
	ByteLen  int
	Fields   []Field
	Errors   []error
}
