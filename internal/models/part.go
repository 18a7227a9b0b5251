package models

import (
	"time"
)

// PartRecord is one extracted row of part data tied to a single search
// keyword. Optional fields stay empty when the results page omits them.
type PartRecord struct {
	PartNumber string    `json:"part_number"`
	Maker      string    `json:"maker"`
	Weight     string    `json:"weight"`
	Price      string    `json:"price"`
	URL        string    `json:"url"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

func NewPartRecord(keyword, url string) PartRecord {
	return PartRecord{
		PartNumber: keyword,
		URL:        url,
		ScrapedAt:  time.Now(),
	}
}
