package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TahPapeJe/PotSoft/schema"
)

func newReport(id string) schema.Report {
	return schema.Report{
		ID:            id,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		SizeCategory:  schema.SizeSmall,
		PriorityColor: schema.ColorGreen,
		Jurisdiction:  "DBKL Kuala Lumpur",
		Status:        schema.StatusAnalyzed,
	}
}

func TestMemoryStoreAddAndList(t *testing.T) {
	s := NewMemoryStore()
	assert.Empty(t, s.ListReports())

	s.AddReport(newReport("a"))
	s.AddReport(newReport("b"))

	reports := s.ListReports()
	assert.Len(t, reports, 2)
	assert.Equal(t, "a", reports[0].ID)
	assert.Equal(t, "b", reports[1].ID)
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.AddReport(newReport("a"))

	reports := s.ListReports()
	reports[0].Status = schema.StatusFinished

	stored, err := s.GetReport("a")
	assert.NoError(t, err)
	assert.Equal(t, schema.StatusAnalyzed, stored.Status)
}

func TestMemoryStoreGetReport(t *testing.T) {
	s := NewMemoryStore()
	s.AddReport(newReport("a"))

	r, err := s.GetReport("a")
	assert.NoError(t, err)
	assert.Equal(t, "a", r.ID)

	_, err = s.GetReport("missing")
	assert.Equal(t, ErrReportNotFound, err)
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore()
	s.AddReport(newReport("a"))

	at := time.Now().UTC().Format(time.RFC3339)
	updated, err := s.UpdateStatus("a", schema.StatusFinished, at)
	assert.NoError(t, err)
	assert.Equal(t, schema.StatusFinished, updated.Status)
	assert.Equal(t, []schema.StatusHistoryEntry{{Status: schema.StatusFinished, At: at}}, updated.StatusHistory)

	// Finished is not terminal; transitioning away again is allowed.
	updated, err = s.UpdateStatus("a", schema.StatusReported, at)
	assert.NoError(t, err)
	assert.Equal(t, schema.StatusReported, updated.Status)
	assert.Len(t, updated.StatusHistory, 2)
}

func TestMemoryStoreUpdateStatusNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.UpdateStatus("missing", schema.StatusFinished, "")
	assert.Equal(t, ErrReportNotFound, err)
}

func TestSeededMemoryStore(t *testing.T) {
	s := NewSeededMemoryStore()
	reports := s.ListReports()
	assert.Len(t, reports, 10)

	for _, r := range reports {
		assert.True(t, r.Status.Valid())
		assert.True(t, r.SizeCategory.Valid())
		assert.Equal(t, schema.ColorForSize(r.SizeCategory), r.PriorityColor)
		assert.NotEmpty(t, r.Jurisdiction)
		_, err := r.CreatedAt()
		assert.NoError(t, err)
	}
}

func TestNextID(t *testing.T) {
	a, b := NextID(), NextID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
