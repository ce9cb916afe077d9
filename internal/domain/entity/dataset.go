package entity

// Dataset é um conjunto tabular retangular: um cabeçalho e linhas de células texto.
// It is what every ingestion adapter (CSV, XLSX, S3, Cost Explorer) hands to the engine.
type Dataset struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnSelection names the three columns a concentration analysis needs.
type ColumnSelection struct {
	Time     string `json:"time_column"`
	Category string `json:"category_column"`
	Value    string `json:"value_column"`
}

// NewDataset builds a Dataset, padding short rows to the header width.
func NewDataset(name string, columns []string, rows [][]string) Dataset {
	normalized := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}
		normalized = append(normalized, row)
	}
	return Dataset{Name: name, Columns: columns, Rows: normalized}
}

// ColumnIndex returns the position of the named column.
func (d Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Cell returns the value at (row, col), or "" when the row is shorter than col.
func (d Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return ""
	}
	return d.Rows[row][col]
}

// ColumnValues returns every cell of the column at index col.
func (d Dataset) ColumnValues(col int) []string {
	values := make([]string, len(d.Rows))
	for i := range d.Rows {
		values[i] = d.Cell(i, col)
	}
	return values
}

// Head returns at most n rows.
func (d Dataset) Head(n int) [][]string {
	if n < 0 || n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
