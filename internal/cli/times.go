package cli

import (
	"strconv"
	"time"

	"timelog/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// timeLayouts are tried in order when parsing a time argument.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
	"15:04",
}

// parseTimeArg parses a user-supplied time string. A bare date means
// midnight; a bare time of day means today.
func parseTimeArg(field, value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			now := timeNow()
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
		}
		return t, nil
	}
	return time.Time{}, errors.NewInvalidInputError(field, value,
		"expected a time like \"2006-01-02 15:04\", a date, or a time of day")
}

// parseEntryID parses a positive numeric entry id argument.
func parseEntryID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", value, "expected a positive entry id")
	}
	return id, nil
}
