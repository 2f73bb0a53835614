package session

import (
	"time"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/growth"
)

// Snapshot is the last successful identification, written once per
// success and replaced wholesale. The original image binary is never
// stored — only its local path, and a restored path alone is not enough
// to resubmit.
type Snapshot struct {
	Identification    api.Identification    `json:"identification"`
	CareGuide         *api.CareGuide        `json:"care_guide,omitempty"`
	GrowthPrediction  *api.GrowthPrediction `json:"growth_prediction,omitempty"`
	UploadedImagePath string                `json:"uploaded_image_path,omitempty"`
	Timestamp         time.Time             `json:"timestamp"`
}

// GrowthPreview remembers the last normalized growth series so the
// growth page can render instantly on revisit.
type GrowthPreview struct {
	Series  growth.Series `json:"series"`
	SavedAt time.Time     `json:"saved_at"`
}

// SaveSnapshot persists the identification snapshot slot.
func SaveSnapshot(s *Store, snap Snapshot) error {
	return s.Save(KeyIdentification, snap)
}

// LoadSnapshot reads the identification snapshot slot.
func LoadSnapshot(s *Store) (Snapshot, bool) {
	var snap Snapshot
	ok := s.Load(KeyIdentification, &snap)
	return snap, ok
}

// ClearSnapshot empties the identification snapshot slot ("re-identify").
func ClearSnapshot(s *Store) error {
	return s.Clear(KeyIdentification)
}

// SaveGrowthPreview persists the growth preview slot.
func SaveGrowthPreview(s *Store, preview GrowthPreview) error {
	return s.Save(KeyGrowthPreview, preview)
}

// LoadGrowthPreview reads the growth preview slot.
func LoadGrowthPreview(s *Store) (GrowthPreview, bool) {
	var preview GrowthPreview
	ok := s.Load(KeyGrowthPreview, &preview)
	return preview, ok
}
