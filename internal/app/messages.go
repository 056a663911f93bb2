package app

import "time"

// TickMsg refreshes the position shown in the now playing bar.
type TickMsg time.Time
