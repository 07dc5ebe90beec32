package models

import "time"

// SharePayload is the request body stored behind a share token.
type SharePayload struct {
	Arena    string `json:"arena"`
	Symbol   string `json:"symbol"`
	Horizon  int    `json:"horizon"`
	TTLHours int    `json:"ttl_hours"`
}

// ShareRecord is a stored share link.
type ShareRecord struct {
	Token     string       `json:"token"`
	Payload   SharePayload `json:"payload"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Expired reports whether the record is no longer readable at now.
func (r ShareRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// ShareLink is returned to the caller on create.
type ShareLink struct {
	Token          string `json:"token"`
	URL            string `json:"url"`
	ExpiresInHours int    `json:"expires_in_hours"`
}
