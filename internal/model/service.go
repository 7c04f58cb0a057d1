package model

// ChurchService represents a single church service event as it appears on
// the congregation's calendar page. Optional fields are nil, not empty
// strings, when the page carries no value for them.
type ChurchService struct {
	Date        string  `json:"date"`
	DayOfWeek   string  `json:"day_of_week"`
	ServiceName string  `json:"service_name"`
	Location    *string `json:"location"`
	Time        *string `json:"time"`
	Occasion    *string `json:"occasion"`
	Notes       *string `json:"notes"`
}
