package catalog

// Catalog model types

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOpen     Status = "open"
	StatusOngoing  Status = "ongoing"
	StatusEnded    Status = "ended"
	StatusUnknown  Status = "unknown"
)

// Item is the catalog's unit of record. The zero value of every field is
// the "unknown" default, which is what makes field-level merging work.
type Item struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	BonusAmount     int64    `json:"bonusAmount"`
	BonusText       string   `json:"bonusText"`
	BonusPoolAmount int64    `json:"bonusPoolAmount,omitempty"`
	BonusPoolText   string   `json:"bonusPoolText,omitempty"`
	Deadline        string   `json:"deadline"`  // YYYY-MM-DD, empty when unknown
	StartDate       string   `json:"startDate"` // YYYY-MM-DD, empty when unknown
	Status          Status   `json:"status"`
	Category        []string `json:"category"`
	Tags            []string `json:"tags"`
	SourceName      string   `json:"sourceName"`
	SourceURL       string   `json:"sourceUrl"` // canonicalized
	Summary         string   `json:"summary"`
	CreatedAt       string   `json:"createdAt"` // RFC3339 UTC, first-seen, never updated

	// Ranking outputs, recomputed on every run
	QualityScore int      `json:"qualityScore"`
	RankReasons  []string `json:"rankReasons"`
	IsWhitelist  bool     `json:"isWhitelist"`
	Level        string   `json:"level"`
}

type Catalog struct {
	Version   int    `json:"version"`
	UpdatedAt string `json:"updatedAt"`
	Items     []Item `json:"items"`
}
