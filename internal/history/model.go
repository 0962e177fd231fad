package history

import (
	"errors"
	"time"
)

// Record is one dispatched email. Records are append-only; the list is only
// ever shrunk by an explicit confirmed clear.
type Record struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

// ErrConfirmationRequired is returned when a clear is requested without the
// explicit confirmation flag.
var ErrConfirmationRequired = errors.New("confirmation required")
