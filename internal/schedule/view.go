package schedule

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrTooManyRows = fmt.Errorf("a day can hold at most %d points", MaxPointsPerDay)
	ErrRowNotFound = errors.New("row not found")
)

// Row is one editable line of the day that is currently shown.
// Values are kept as entered, they are only parsed when the day is flushed.
type Row struct {
	Hour   string `json:"h"`
	Minute string `json:"m"`
	Temp   string `json:"t"`
}

// RowView is the editable representation of the selected day, owned by the presentation layer.
type RowView interface {
	// Render replaces all rows with the given points.
	Render(points []Point)
	// Rows returns the rows as currently entered.
	Rows() []Row
}

// RowFromPoint formats a point the way it is shown for editing.
func RowFromPoint(p Point) Row {
	return Row{
		Hour:   strconv.Itoa(p.Hour),
		Minute: strconv.Itoa(p.Minute),
		Temp:   strconv.FormatFloat(p.Temp, 'f', -1, 64),
	}
}

// MemoryRowView is a RowView kept in memory, used by the command line editor.
type MemoryRowView struct {
	rows []Row
}

func NewMemoryRowView() *MemoryRowView {
	return &MemoryRowView{}
}

func (v *MemoryRowView) Render(points []Point) {
	v.rows = make([]Row, 0, len(points))
	for _, p := range points {
		v.rows = append(v.rows, RowFromPoint(p))
	}
}

func (v *MemoryRowView) Rows() []Row {
	result := make([]Row, len(v.rows))
	copy(result, v.rows)
	return result
}

func (v *MemoryRowView) Append(row Row) error {
	if len(v.rows) >= MaxPointsPerDay {
		return ErrTooManyRows
	}
	v.rows = append(v.rows, row)
	return nil
}

func (v *MemoryRowView) Edit(index int, row Row) error {
	if index < 0 || index >= len(v.rows) {
		return fmt.Errorf("%w: %d", ErrRowNotFound, index+1)
	}
	v.rows[index] = row
	return nil
}

func (v *MemoryRowView) Remove(index int) error {
	if index < 0 || index >= len(v.rows) {
		return fmt.Errorf("%w: %d", ErrRowNotFound, index+1)
	}
	v.rows = append(v.rows[:index], v.rows[index+1:]...)
	return nil
}

func (v *MemoryRowView) Row(index int) (Row, error) {
	if index < 0 || index >= len(v.rows) {
		return Row{}, fmt.Errorf("%w: %d", ErrRowNotFound, index+1)
	}
	return v.rows[index], nil
}
