package entities

// Event is one scheduled talk/slot. Read-only for the check-in core.
type Event struct {
	ID             int64
	Title          string
	Room           string
	Time           string
	Date           string
	Speaker        string
	Country        string
	Available      bool
	SlotsAvailable int
	SlotsTaken     int
}
