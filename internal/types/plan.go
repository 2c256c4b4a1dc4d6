// README: Manually edited schedule model (plans, days, activities).
package types

import "time"

type ManualActivity struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category ManualCategory `json:"category"`
	Time     string         `json:"time,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}

// BrowserActivity is a palette entry that has not been placed on a day yet.
type BrowserActivity struct {
	Title    string         `json:"title"`
	Category ManualCategory `json:"category"`
	Time     string         `json:"time,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}

// Day.Date is an ISO YYYY-MM-DD string or empty when unknown.
type Day struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Date       string           `json:"date"`
	Activities []ManualActivity `json:"activities"`
}

type Plan struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Days      []Day      `json:"days"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
