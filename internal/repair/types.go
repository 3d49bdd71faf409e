package repair

import "time"

// Status values as stored in the status column.
const (
	StatusPending    = "待處理"
	StatusInProgress = "處理中"
	StatusCompleted  = "已完成"
)

// Sentinels.
const (
	// HelperUnspecified is stored when no helper teacher was chosen.
	HelperUnspecified = "無指定"
	// MissingValue is what older form clients send for an empty field.
	MissingValue = "N/A"
)

// Sheet layout. Row 1 is the header; records start at row 2.
const (
	HeaderRow      = 1
	FirstRecordRow = 2
	// StatusColumn is the 1-based position of the status cell.
	StatusColumn = 6
	// RecordWidth is the number of cells in a well-formed record row.
	RecordWidth = 6
)

// TimestampLayout is the format of the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Taipei is the fixed UTC+8 zone timestamps are recorded in.
var Taipei = time.FixedZone("UTC+8", 8*60*60)

// Header is the expected content of row 1.
var Header = []string{"時間戳記", "報修人姓名", "設備位置", "問題描述", "協辦老師", "狀態"}

// Record is one repair request, one sheet row.
type Record struct {
	Timestamp          string `json:"timestamp"`
	ReporterName       string `json:"reporterName"`
	DeviceLocation     string `json:"deviceLocation"`
	ProblemDescription string `json:"problemDescription"`
	HelperTeacher      string `json:"helperTeacher"`
	Status             string `json:"status"`
}

// Task is a record together with the sheet row it was read from.
type Task struct {
	RowIndex int `json:"rowIndex"`
	Record
}

// SubmitRequest carries a new report. Nil fields were absent from the request.
type SubmitRequest struct {
	ReporterName       *string `json:"reporterName"`
	DeviceLocation     *string `json:"deviceLocation"`
	ProblemDescription *string `json:"problemDescription"`
	HelperTeacher      *string `json:"helperTeacher"`
}

// UpdateStatusRequest changes the status of the record at RowIndex.
// RowIndex may be a JSON number or a numeric string.
type UpdateStatusRequest struct {
	RowIndex  interface{} `json:"rowIndex"`
	NewStatus string      `json:"newStatus"`
}
