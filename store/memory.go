package store

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/TahPapeJe/PotSoft/schema"
)

const memoryLogPrefix = "store"

// memoryStore keeps all reports in process memory. Appends and status
// updates are atomic from the caller's point of view; there is no
// multi-record transaction guarantee and no deletion path.
type memoryStore struct {
	mu      sync.RWMutex
	reports []schema.Report
}

// NewMemoryStore - return an empty in-memory report store.
func NewMemoryStore() PotholeStore {
	return &memoryStore{}
}

// NewSeededMemoryStore returns a store preloaded with demo reports spread
// across Malaysia so the map is not empty on first load.
func NewSeededMemoryStore() PotholeStore {
	s := &memoryStore{reports: seedReports()}
	log.WithField("prefix", memoryLogPrefix).Infof("seeded memory store with %d reports", len(s.reports))
	return s
}

func (s *memoryStore) ListReports() []schema.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schema.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *memoryStore) GetReport(id string) (schema.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return schema.Report{}, ErrReportNotFound
}

func (s *memoryStore) AddReport(r schema.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, r)
}

// UpdateStatus sets the status of a single report and appends a history
// entry. Status values are validated at the API boundary; unknown ids
// return ErrReportNotFound.
func (s *memoryStore) UpdateStatus(id string, status schema.ReportStatus, at string) (schema.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports[i].Status = status
			s.reports[i].StatusHistory = append(s.reports[i].StatusHistory, schema.StatusHistoryEntry{
				Status: status,
				At:     at,
			})
			return s.reports[i], nil
		}
	}
	return schema.Report{}, ErrReportNotFound
}

func (s *memoryStore) Ping() error {
	return nil
}
