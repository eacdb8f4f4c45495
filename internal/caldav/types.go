package caldav

import "time"

// Calendar is one calendar collection discovered on the server.
type Calendar struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// Addressbook is one CardDAV addressbook collection.
type Addressbook struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// Event is a parsed VEVENT. Times are stored in UTC; conversion to a
// display timezone happens at the response boundary, never here.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Contact is a parsed vCard with the fields the tool exposes.
type Contact struct {
	UID          string
	FullName     string
	Email        string
	Phone        string
	Organization string
}
