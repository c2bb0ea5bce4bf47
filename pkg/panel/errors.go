package panel

import "errors"

// ErrAlreadySubmitting rejects a second mutation on an item whose first
// one has not resolved (double-click protection).
var ErrAlreadySubmitting = errors.New("panel: action already in flight for this item")
