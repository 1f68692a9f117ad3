package competitiondb

import "errors"

// ErrNotFound is returned when a competition is not found.
var ErrNotFound = errors.New("competition not found")
