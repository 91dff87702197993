package booking

import (
	"strings"
	"time"

	"bookwise/models"
)

const maxFieldLength = 255

type check func() error

// validate runs checks in order and stops at the first failure.
func validate(checks ...check) error {
	for _, c := range checks {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func titleCheck(title string) check {
	return func() error {
		switch {
		case strings.TrimSpace(title) == "":
			return invalidInput("title", "title is required")
		case len([]rune(title)) > maxFieldLength:
			return invalidInput("title", "title must be at most 255 characters")
		}
		return nil
	}
}

func locationCheck(location string) check {
	return func() error {
		if len([]rune(location)) > maxFieldLength {
			return invalidInput("location", "location must be at most 255 characters")
		}
		return nil
	}
}

func statusCheck(status models.BookingStatus) check {
	return func() error {
		if !status.Valid() {
			return invalidInput("status", "status must be one of scheduled, in-progress, completed, cancelled")
		}
		return nil
	}
}

func leadWindowCheck(start, now time.Time, lead time.Duration) check {
	return func() error {
		if start.Before(now.Add(lead)) {
			return invalidTimeRange("startTime", "start time must be at least "+lead.String()+" from now")
		}
		return nil
	}
}

func orderCheck(start, end time.Time) check {
	return func() error {
		if start.IsZero() || end.IsZero() {
			return invalidTimeRange("startTime", "start and end time are required")
		}
		if !end.After(start) {
			return invalidTimeRange("endTime", "end time must be after start time")
		}
		return nil
	}
}
