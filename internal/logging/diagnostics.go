package logging

import (
	"context"
	"log/slog"

	"github.com/CalKK/campaignmessaging/internal/core"
)

// Diagnostics writes normalizer and validator events to a logger.
// Per-row events log at debug; rejections log at info so a default
// deployment still shows why rows were dropped.
type Diagnostics struct {
	logger *slog.Logger
}

var _ core.Diagnostics = (*Diagnostics)(nil)

// NewDiagnostics returns a sink writing to logger, or to slog.Default when
// logger is nil.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{logger: logger}
}

// UploadDiagnostics is a core.DiagnosticsFactory that tags every event with
// the request ID and upload ID.
func UploadDiagnostics(ctx context.Context, uploadID string) core.Diagnostics {
	return NewDiagnostics(WithFields(ctx, "upload_id", uploadID))
}

func (d *Diagnostics) RowSkipped(rawIndex int) {
	d.logger.Debug("skipping empty row", "raw_row", rawIndex)
}

func (d *Diagnostics) RowTruncated(rawIndex, width int) {
	d.logger.Debug("truncating row to two columns", "raw_row", rawIndex, "width", width)
}

func (d *Diagnostics) HeaderDetected(row core.NormalizedRow) {
	d.logger.Debug("header row detected", "name", row.Name(), "phone", row.Phone())
}

func (d *Diagnostics) CountryCodeAdded(rowIndex int, before, after string) {
	d.logger.Debug("country code added", "row", rowIndex, "before", before, "after", after)
}

func (d *Diagnostics) RowRejected(err core.ValidationError) {
	d.logger.Info("row rejected",
		"row", err.RowIndex,
		"kind", err.Kind.String(),
		"error", err.Message,
	)
}

func (d *Diagnostics) RowAccepted(rowIndex int, c core.Contact) {
	d.logger.Debug("row accepted", "row", rowIndex, "phone", c.Phone)
}
