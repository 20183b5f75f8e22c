package dataset

import "fmt"

// SchemaError reports a required column missing from the export header.
// The dataset does not match the expected schema, so the load aborts.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset: required column %q missing", e.Column)
}

// MalformedDateError reports a date cell that failed to parse. Any
// unparseable date fails the whole load; there is no partial dataset.
type MalformedDateError struct {
	Column string
	Row    int // 1-based row number in the export, header included
	Value  string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("dataset: row %d: cannot parse %s value %q", e.Row, e.Column, e.Value)
}
