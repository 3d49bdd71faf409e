// Package repair implements the repair desk operations on top of a
// datastore table: submitting reports, listing tasks and updating status.
package repair

import (
	"context"
	"fmt"
	"strings"
	"time"

	"repair_desk/internal/datastore"

	"github.com/rs/zerolog/log"
)

// Notifier is told about successful writes. Implementations must not block.
type Notifier interface {
	ReportSubmitted(ctx context.Context, task Task)
	StatusUpdated(ctx context.Context, rowIndex int, status string)
}

type nopNotifier struct{}

func (nopNotifier) ReportSubmitted(context.Context, Task)      {}
func (nopNotifier) StatusUpdated(context.Context, int, string) {}

// Service runs repair operations against the adapter's table.
type Service struct {
	store    *datastore.Adapter
	notifier Notifier
	now      func() time.Time
}

// NewService wires a service. notifier may be nil.
func NewService(store *datastore.Adapter, notifier Notifier) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Available reports whether the backing table was reached at startup.
func (s *Service) Available() bool {
	return s.store.Available()
}

// Submit validates req and appends it as a new pending record.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Record, error) {
	if isMissing(req.ReporterName) || isMissing(req.DeviceLocation) || isMissing(req.ProblemDescription) {
		log.Warn().
			Bool("reporter_name", !isMissing(req.ReporterName)).
			Bool("device_location", !isMissing(req.DeviceLocation)).
			Bool("problem_description", !isMissing(req.ProblemDescription)).
			Msg("Rejecting report with missing fields")
		return Record{}, &ValidationError{Field: "report", Message: msgMissingReportFields}
	}

	table, err := s.store.Table()
	if err != nil {
		return Record{}, err
	}

	helper := HelperUnspecified
	if req.HelperTeacher != nil && strings.TrimSpace(*req.HelperTeacher) != "" {
		helper = *req.HelperTeacher
	}

	rec := Record{
		Timestamp:          s.now().In(Taipei).Format(TimestampLayout),
		ReporterName:       *req.ReporterName,
		DeviceLocation:     *req.DeviceLocation,
		ProblemDescription: *req.ProblemDescription,
		HelperTeacher:      helper,
		Status:             StatusPending,
	}

	if err := table.AppendRow(ctx, rec.ToRow()); err != nil {
		return Record{}, fmt.Errorf("append report: %w", err)
	}

	log.Info().
		Str("timestamp", rec.Timestamp).
		Str("reporter", rec.ReporterName).
		Str("location", rec.DeviceLocation).
		Str("helper", rec.HelperTeacher).
		Msg("Report appended")

	s.notifier.ReportSubmitted(ctx, Task{Record: rec})
	return rec, nil
}

// ListTasks returns every well-formed record in sheet order.
func (s *Service) ListTasks(ctx context.Context) ([]Task, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	rows, err := table.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return ParseTasks(rows), nil
}

// UpdateStatus overwrites the status cell of one record. Any status may
// replace any other.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (int, error) {
	rowIndex, ok := ParseRowIndex(req.RowIndex)
	status := strings.TrimSpace(req.NewStatus)
	if !ok || rowIndex < FirstRecordRow || status == "" {
		log.Warn().
			Interface("row_index", req.RowIndex).
			Str("new_status", req.NewStatus).
			Msg("Rejecting invalid status update")
		return 0, &ValidationError{Field: "rowIndex", Message: msgInvalidStatusUpdate}
	}

	table, err := s.store.Table()
	if err != nil {
		return 0, err
	}

	if err := table.UpdateCell(ctx, rowIndex, StatusColumn, req.NewStatus); err != nil {
		return 0, fmt.Errorf("update status of row %d: %w", rowIndex, err)
	}

	log.Info().
		Int("row", rowIndex).
		Str("status", req.NewStatus).
		Msg("Updated task status")

	s.notifier.StatusUpdated(ctx, rowIndex, req.NewStatus)
	return rowIndex, nil
}
