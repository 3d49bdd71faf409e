package repair

import (
	"github.com/rs/zerolog/log"
)

// ToRow returns the record's cells in column order.
func (r Record) ToRow() []string {
	return []string{
		r.Timestamp,
		r.ReporterName,
		r.DeviceLocation,
		r.ProblemDescription,
		r.HelperTeacher,
		r.Status,
	}
}

// ParseTasks maps raw sheet rows, header included, to tasks. Rows with
// fewer than RecordWidth cells are skipped.
func ParseTasks(rows [][]string) []Task {
	tasks := []Task{}
	if len(rows) <= HeaderRow {
		return tasks
	}

	for i, row := range rows[HeaderRow:] {
		rowIndex := i + FirstRecordRow
		if !isValidSheetRow(row, rowIndex) {
			continue
		}
		tasks = append(tasks, Task{
			RowIndex: rowIndex,
			Record:   recordFromRow(row),
		})
	}

	log.Debug().
		Int("total_rows", len(rows)).
		Int("parsed_tasks", len(tasks)).
		Msg("Finished parsing tasks")
	return tasks
}

// isValidSheetRow checks if a row has sufficient columns
func isValidSheetRow(row []string, rowNum int) bool {
	if len(row) < RecordWidth {
		log.Debug().
			Int("row", rowNum).
			Int("columns", len(row)).
			Msg("Skipping row with insufficient columns")
		return false
	}
	return true
}

func recordFromRow(row []string) Record {
	return Record{
		Timestamp:          row[0],
		ReporterName:       row[1],
		DeviceLocation:     row[2],
		ProblemDescription: row[3],
		HelperTeacher:      row[4],
		Status:             row[5],
	}
}
