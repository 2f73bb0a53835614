package api

// Wire types for the plant-care backend. Optional fields are pointers so
// the one coercion pass at this boundary can tell "absent" from "zero";
// everything past this package works against fully-typed records.

// Identification is the backend's best-guess species for an uploaded image.
type Identification struct {
	PlantName      string   `json:"plant_name"`
	ScientificName *string  `json:"scientific_name"`
	Confidence     float64  `json:"confidence"`
	CommonNames    []string `json:"common_names"`
}

// CareGuide holds care instructions. Absent fields decode to "".
type CareGuide struct {
	Watering    string   `json:"watering"`
	Sunlight    string   `json:"sunlight"`
	Temperature string   `json:"temperature"`
	Humidity    string   `json:"humidity"`
	Fertilizer  string   `json:"fertilizer"`
	Soil        string   `json:"soil"`
	Tips        []string `json:"tips"`
}

// GrowthStage is one qualitative stage of the growth prediction.
type GrowthStage struct {
	Stage       string  `json:"stage"`
	Timeframe   string  `json:"timeframe"`
	ImageURL    *string `json:"image_url"`
	Description string  `json:"description"`
}

// GrowthPrediction groups the predicted growth stages.
type GrowthPrediction struct {
	Stages []GrowthStage `json:"stages"`
}

// AnalyzeResponse is the POST /api/plant/analyze-auto payload.
type AnalyzeResponse struct {
	// Success is a pointer because older backend builds omit it; an
	// omitted value means success.
	Success          *bool             `json:"success"`
	Identification   *Identification   `json:"identification"`
	CareGuide        *CareGuide        `json:"care_guide"`
	GrowthPrediction *GrowthPrediction `json:"growth_prediction"`
	Message          string            `json:"message"`
}

// Succeeded reports whether the backend considered the analysis successful.
// Only an explicit success=false counts as failure.
func (r *AnalyzeResponse) Succeeded() bool {
	return r.Success == nil || *r.Success
}

// GrowthPoint is one sample in a growth graph series. Period and Size are
// pointers so the normalizer can drop malformed entries instead of
// mistaking them for period 0 / size 0.
type GrowthPoint struct {
	Period *int     `json:"period"`
	Size   *float64 `json:"size"`
}

// GrowthGraph is the authoritative growth series when present.
type GrowthGraph struct {
	PlantName  string        `json:"plant_name"`
	PeriodUnit string        `json:"period_unit"`
	MinSize    *float64      `json:"min_size"`
	MaxSize    *float64      `json:"max_size"`
	GoodGrowth []GrowthPoint `json:"good_growth"`
	BadGrowth  []GrowthPoint `json:"bad_growth"`
}

// MonthlyRow is one entry of the flat monthly data fallback. The backend
// has shipped several field spellings for the same values.
type MonthlyRow struct {
	Period              string   `json:"period"`
	ExpectedHeight      *float64 `json:"expected_height"`
	GoodConditionHeight *float64 `json:"good_condition_height"`
	Good                *float64 `json:"good"`
	BadConditionHeight  *float64 `json:"bad_condition_height"`
	Bad                 *float64 `json:"bad"`
}

// InsightResponse is shared by growth-insight and monthly-data-analysis.
type InsightResponse struct {
	GrowthGraph           *GrowthGraph    `json:"growth_graph"`
	MonthlyData           []MonthlyRow    `json:"monthly_data"`
	ComprehensiveAnalysis string          `json:"comprehensive_analysis"`
	Identification        *Identification `json:"identification"`
}

// Disease statuses reported by disease-detect.
const (
	DiseaseStatusHealthy = "healthy"
	DiseaseStatusDisease = "disease"
)

// DiseaseResponse is the POST /api/plant/disease-detect payload.
type DiseaseResponse struct {
	Status string `json:"status"`
	// Confidence is percent-scale (0-100, e.g. 87.3), unlike
	// Identification.Confidence which is a 0-1 ratio. Render it as-is.
	Confidence float64 `json:"confidence"`
	Message     string   `json:"message"`
	Description string   `json:"description"`
	DiseaseType string   `json:"disease_type"`
	Severity    string   `json:"severity"`
	Symptoms    []string `json:"symptoms"`
	Causes      []string `json:"causes"`
	Solutions   []string `json:"solutions"`
	Prevention  []string `json:"prevention"`
	Tips        []string `json:"tips"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status string `json:"status"`
}
