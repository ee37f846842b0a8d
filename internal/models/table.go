package models

import "fmt"

// PadValue fills the cells of columns shorter than the longest one.
const PadValue = ""

// ColumnHeader returns the CSV header for a region's column.
func ColumnHeader(code string) string {
	return fmt.Sprintf("Trending in %s", code)
}

// TrendColumn holds one region's terms in provider order.
type TrendColumn struct {
	Code  string
	Terms []string
}

// TrendTable aligns region columns by row index. There is no join key:
// row N of every column is simply the Nth term the provider returned.
type TrendTable struct {
	columns []TrendColumn
}

func NewTrendTable() *TrendTable {
	return &TrendTable{}
}

// AddColumn appends a column; later columns appear to the right.
func (t *TrendTable) AddColumn(code string, terms []string) {
	cp := make([]string, len(terms))
	copy(cp, terms)
	t.columns = append(t.columns, TrendColumn{Code: code, Terms: cp})
}

func (t *TrendTable) ColumnCount() int {
	return len(t.columns)
}

func (t *TrendTable) Empty() bool {
	return len(t.columns) == 0
}

// RowCount is the length of the longest column.
func (t *TrendTable) RowCount() int {
	n := 0
	for _, c := range t.columns {
		if len(c.Terms) > n {
			n = len(c.Terms)
		}
	}
	return n
}

func (t *TrendTable) Header() []string {
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = ColumnHeader(c.Code)
	}
	return header
}

// Rows returns the body rows, padding short columns with PadValue.
func (t *TrendTable) Rows() [][]string {
	rows := make([][]string, t.RowCount())
	for i := range rows {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			if i < len(c.Terms) {
				row[j] = c.Terms[i]
			} else {
				row[j] = PadValue
			}
		}
		rows[i] = row
	}
	return rows
}
