package dataset

import "fmt"

// DataIntegrityError names the row and column of a dataset cell that could not be used
type DataIntegrityError struct {
	Dataset string
	Row     int // 1-based data row, header excluded; 0 for header problems
	Player  string
	Column  string
	Value   string
	Reason  string
}

func (e *DataIntegrityError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s dataset: column %q: %s", e.Dataset, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s dataset row %d (%s): column %q value %q: %s",
		e.Dataset, e.Row, e.Player, e.Column, e.Value, e.Reason)
}
