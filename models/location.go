// File: models/location.go
package models

// WeeklyTimestamp is a point in a recurring week. Day 0 is Sunday.
type WeeklyTimestamp struct {
	Day    int `json:"day" bson:"day"`
	Hour   int `json:"hour" bson:"hour"`
	Minute int `json:"minute" bson:"minute"`
}

// TimeSlot is a recurring weekly open interval. End before Start wraps past Saturday night.
type TimeSlot struct {
	Start WeeklyTimestamp `json:"start" bson:"start"`
	End   WeeklyTimestamp `json:"end" bson:"end"`
}

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Location mirrors one entry of the upstream dining API response.
type Location struct {
	ConceptID           int          `json:"conceptId" bson:"conceptId"`
	Name                string       `json:"name" bson:"name"`
	ShortDescription    string       `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	Description         string       `json:"description,omitempty" bson:"description,omitempty"`
	URL                 string       `json:"url" bson:"url"`
	Menu                string       `json:"menu,omitempty" bson:"menu,omitempty"`
	Location            string       `json:"location,omitempty" bson:"location,omitempty"`
	AcceptsOnlineOrders bool         `json:"acceptsOnlineOrders" bson:"acceptsOnlineOrders"`
	Coordinates         *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Times               []TimeSlot   `json:"times" bson:"times"`
}

// LocationsResponse is the upstream envelope.
type LocationsResponse struct {
	Locations []Location `json:"locations"`
}

// LocationStatus is a location plus its derived state at a given moment.
type LocationStatus struct {
	Location
	IsOpen          bool   `json:"isOpen"`
	StatusMsg       string `json:"statusMsg"`
	ChangesSoon     bool   `json:"changesSoon"`
	TimeUntilOpen   *int   `json:"timeUntilOpen,omitempty"`
	TimeUntilClosed *int   `json:"timeUntilClosed,omitempty"`
}

// LocationSnapshot is what the poller caches between refreshes.
type LocationSnapshot struct {
	Locations []Location `json:"locations"`
	FetchedAt int64      `json:"fetchedAt"`
}
