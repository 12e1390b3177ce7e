package models

// ReadStatus is where a book sits in the reader's queue.
type ReadStatus string

const (
	StatusHaveRead   ReadStatus = "have_read"
	StatusReadingNow ReadStatus = "reading_now"
	StatusReadNext   ReadStatus = "read_next"
	StatusWantToRead ReadStatus = "want_to_read"
)

// AllReadStatuses lists the statuses in display order. The first entry is
// the fallback for unrecognised stored values.
var AllReadStatuses = []ReadStatus{
	StatusHaveRead,
	StatusReadingNow,
	StatusReadNext,
	StatusWantToRead,
}

var statusNames = map[ReadStatus]string{
	StatusHaveRead:   "Have read",
	StatusReadingNow: "Reading now",
	StatusReadNext:   "Read next",
	StatusWantToRead: "Want to read",
}

// ParseReadStatus maps a stored status name to a ReadStatus. Unknown values
// default to StatusHaveRead instead of failing.
func ParseReadStatus(s string) ReadStatus {
	status := ReadStatus(s)
	if _, ok := statusNames[status]; ok {
		return status
	}
	return StatusHaveRead
}

// Valid reports whether s is one of the four known statuses.
func (s ReadStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// DisplayName returns the human readable label.
func (s ReadStatus) DisplayName() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusHaveRead]
}

// BookReadStatus is an entry of the status picker.
type BookReadStatus struct {
	ID     int        `json:"id"`
	Status ReadStatus `json:"status"`
	Name   string     `json:"name"`
}
