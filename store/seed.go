package store

import (
	"time"

	"github.com/TahPapeJe/PotSoft/schema"
)

// seedReports builds the demo data set, timestamped relative to process
// start so ages and overdue flags stay meaningful.
func seedReports() []schema.Report {
	now := time.Now().UTC()
	ts := func(age time.Duration) string {
		return now.Add(-age).Format(time.RFC3339)
	}

	type seed struct {
		id           string
		lat, long    float64
		image        string
		age          time.Duration
		size         schema.SizeCategory
		jurisdiction string
		status       schema.ReportStatus
	}

	seeds := []seed{
		// Penang
		{"pg01", 5.4141, 100.3288, "https://dummyimage.com/600x400/8b0000/fff&text=PG01", 4 * time.Hour, schema.SizeLarge, "MBPP George Town", schema.StatusReported},
		{"pg02", 5.3553, 100.3088, "https://dummyimage.com/600x400/b8860b/fff&text=PG02", 24 * time.Hour, schema.SizeMedium, "MBPP George Town", schema.StatusAnalyzed},
		{"pg03", 5.2835, 100.4587, "https://dummyimage.com/600x400/228b22/fff&text=PG03", 72 * time.Hour, schema.SizeSmall, "MPSP Seberang Perai", schema.StatusInProgress},
		// Kuala Lumpur
		{"kl01", 3.1390, 101.6869, "https://dummyimage.com/600x400/8b0000/fff&text=KL01", 6 * time.Hour, schema.SizeLarge, "DBKL Kuala Lumpur", schema.StatusReported},
		{"kl02", 3.1570, 101.7116, "https://dummyimage.com/600x400/b8860b/fff&text=KL02", 48 * time.Hour, schema.SizeMedium, "DBKL Kuala Lumpur", schema.StatusAnalyzed},
		{"kl03", 3.1200, 101.6530, "https://dummyimage.com/600x400/228b22/fff&text=KL03", 120 * time.Hour, schema.SizeSmall, "DBKL Kuala Lumpur", schema.StatusFinished},
		// Johor Bahru
		{"jh01", 1.4927, 103.7414, "https://dummyimage.com/600x400/8b0000/fff&text=JH01", 2 * time.Hour, schema.SizeLarge, "MBJB Johor Bahru", schema.StatusReported},
		{"jh02", 1.4800, 103.7600, "https://dummyimage.com/600x400/b8860b/fff&text=JH02", 36 * time.Hour, schema.SizeMedium, "MBJB Johor Bahru", schema.StatusInProgress},
		// Perlis
		{"n01", 6.4414, 100.1986, "https://dummyimage.com/600x400/8b0000/fff&text=N01", 8 * time.Hour, schema.SizeLarge, "JKR Perlis", schema.StatusReported},
		{"n02", 6.4550, 100.2120, "https://dummyimage.com/600x400/228b22/fff&text=N02", 96 * time.Hour, schema.SizeSmall, "JKR Perlis", schema.StatusFinished},
	}

	reports := make([]schema.Report, 0, len(seeds))
	for _, s := range seeds {
		reports = append(reports, schema.Report{
			ID:                s.id,
			UserLat:           s.lat,
			UserLong:          s.long,
			ImageFile:         s.image,
			Timestamp:         ts(s.age),
			IsPothole:         true,
			SizeCategory:      s.size,
			PriorityColor:     schema.ColorForSize(s.size),
			Jurisdiction:      s.jurisdiction,
			EstimatedDuration: schema.DurationForSize(s.size),
			Status:            s.status,
			StatusHistory:     []schema.StatusHistoryEntry{},
		})
	}
	return reports
}
