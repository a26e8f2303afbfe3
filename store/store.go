package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/TahPapeJe/PotSoft/schema"
)

var ErrReportNotFound = fmt.Errorf("report not found")

// PotholeStore - report persistence operations consumed by the API layer.
// The in-memory implementation is the prototype backend; a durable store
// plugs in behind the same interface.
type PotholeStore interface {
	ListReports() []schema.Report
	GetReport(id string) (schema.Report, error)
	AddReport(r schema.Report)
	UpdateStatus(id string, status schema.ReportStatus, at string) (schema.Report, error)
	Ping() error
}

// NextID returns a short opaque report identifier.
func NextID() string {
	return uuid.New().String()[:8]
}
