package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/olekukonko/tablewriter"
)

// Formatter renders decoded frame layers into human-readable lines. The
// zero value is ready to use; FrameSep/FieldSep/TimestampLayout fall
// back to sensible defaults when empty.
type Formatter struct {
	FrameSep        string
	FieldSep        string
	TimestampLayout string
}

func (f *Formatter) frameSep() string {
	if f.FrameSep == "" {
		return " | "
	}
	return f.FrameSep
}

func (f *Formatter) fieldSep() string {
	if f.FieldSep == "" {
		return "; "
	}
	return f.FieldSep
}

func (f *Formatter) timestampLayout() string {
	if f.TimestampLayout == "" {
		return "%Y-%m-%dT%H:%M:%S"
	}
	return f.TimestampLayout
}

// AppendSummaries appends the formatted summary of every row in rows to
// dst, separated by FrameSep.
func (f *Formatter) AppendSummaries(dst []byte, rows []Row) []byte {
	for i := range rows {
		if i != 0 {
			dst = append(dst, f.frameSep()...)
		}
		dst = f.AppendSummary(dst, rows[i])
	}
	return dst
}

// AppendSummary appends a single compact summary line for one decoded
// layer: protocol name, byte length, each field rendered according to
// its class, and any validation errors tacked on at the end.
func (f *Formatter) AppendSummary(dst []byte, row Row) []byte {
	dst = append(dst, row.Protocol...)
	dst = append(dst, " len="...)
	dst = strconv.AppendInt(dst, int64(row.ByteLen), 10)
	sep := f.fieldSep()
	for _, field := range row.Fields {
		dst = append(dst, sep...)
		dst = f.appendField(dst, field)
	}
	if len(row.Errors) > 0 {
		dst = append(dst, " errs=("...)
		for i, err := range row.Errors {
			if i != 0 {
				dst = append(dst, ';')
			}
			dst = append(dst, err.Error()...)
		}
		dst = append(dst, ')')
	}
	return dst
}

func (f *Formatter) appendField(dst []byte, field Field) []byte {
	dst = append(dst, field.Name...)
	dst = append(dst, '=')
	switch field.Class {
	case FieldClassChecksum, FieldClassFlags:
		dst = append(dst, "0x"...)
		dst = fmt.Appendf(dst, "%x", field.Value)
	case FieldClassText:
		dst = strconv.AppendQuote(dst, fmt.Sprint(field.Value))
	case FieldClassTimestamp:
		t, _ := field.Value.(time.Time)
		s, err := strftime.Format(f.timestampLayout(), t)
		if err != nil {
			s = t.Format(time.RFC3339)
		}
		dst = append(dst, s...)
	default:
		dst = fmt.Append(dst, field.Value)
	}
	return dst
}

// Table renders rows as a bordered table with one row per protocol
// layer: Protocol, Length, Fields (flattened "name=value" pairs), and
// Errors columns.
func Table(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Protocol", "Length", "Fields", "Errors"})
	for _, row := range rows {
		fieldParts := make([]string, 0, len(row.Fields))
		for _, field := range row.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", field.Name, field.Value))
		}
		errParts := make([]string, 0, len(row.Errors))
		for _, err := range row.Errors {
			errParts = append(errParts, err.Error())
		}
		table.Append([]string{
			row.Protocol,
			strconv.Itoa(row.ByteLen),
			strings.Join(fieldParts, ", "),
			strings.Join(errParts, "; "),
		})
	}
	table.Render()
}
