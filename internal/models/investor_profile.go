package models

import "time"

type InvestorProfile struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	FullName   *string   `json:"full_name"`
	Bio        *string   `json:"bio"`
	Industries *[]string `json:"industries"`
	Stages     *[]string `json:"stages"`
	GeoFocus   *[]string `json:"geo_focus"`
	TicketMin  *float64  `json:"ticket_min"`
	TicketMax  *float64  `json:"ticket_max"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListingWithScore struct {
	Listing
	MatchScore int `json:"match_score"`
}

type JobWithScore struct {
	Job
	MatchScore int `json:"match_score"`
}
