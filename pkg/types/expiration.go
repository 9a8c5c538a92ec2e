package types

import "time"

// ExpirationUnit is the unit of a relative expiration policy.
type ExpirationUnit string

const (
	UnitHour  ExpirationUnit = "hour"
	UnitDay   ExpirationUnit = "day"
	UnitWeek  ExpirationUnit = "week"
	UnitMonth ExpirationUnit = "month"
)

// ExpirationOption is a relative expiration policy. A zero RelativeTime or
// empty unit means the listing never expires.
type ExpirationOption struct {
	Text             string         `json:"text"`
	Value            string         `json:"value"`
	RelativeTime     int            `json:"relative_time,omitempty"`
	RelativeTimeUnit ExpirationUnit `json:"relative_time_unit,omitempty"`
}

// HasExpiration reports whether the option resolves to an absolute deadline.
func (o ExpirationOption) HasExpiration() bool {
	return o.RelativeTime > 0 && o.RelativeTimeUnit != ""
}

// AbsoluteTime resolves the relative policy against now. Calendar units use
// calendar arithmetic (a month from Jan 31 is a real date, not 30 fixed days).
func (o ExpirationOption) AbsoluteTime(now time.Time) time.Time {
	switch o.RelativeTimeUnit {
	case UnitHour:
		return now.Add(time.Duration(o.RelativeTime) * time.Hour)
	case UnitDay:
		return now.AddDate(0, 0, o.RelativeTime)
	case UnitWeek:
		return now.AddDate(0, 0, 7*o.RelativeTime)
	case UnitMonth:
		return now.AddDate(0, o.RelativeTime, 0)
	default:
		return now
	}
}

// ExpirationOptions is the fixed option list offered to users.
var ExpirationOptions = []ExpirationOption{
	{Text: "1 Hour", Value: "1h", RelativeTime: 1, RelativeTimeUnit: UnitHour},
	{Text: "12 Hours", Value: "12h", RelativeTime: 12, RelativeTimeUnit: UnitHour},
	{Text: "1 Day", Value: "1d", RelativeTime: 1, RelativeTimeUnit: UnitDay},
	{Text: "3 Days", Value: "3d", RelativeTime: 3, RelativeTimeUnit: UnitDay},
	{Text: "1 Week", Value: "1w", RelativeTime: 1, RelativeTimeUnit: UnitWeek},
	{Text: "1 Month", Value: "1mo", RelativeTime: 1, RelativeTimeUnit: UnitMonth},
	{Text: "3 Months", Value: "3mo", RelativeTime: 3, RelativeTimeUnit: UnitMonth},
	{Text: "None", Value: "none"},
}

// DefaultExpirationOption is the standing default (1 month).
func DefaultExpirationOption() ExpirationOption {
	return ExpirationOptions[5]
}

// ExpirationOptionByValue looks up an option by its value identifier.
func ExpirationOptionByValue(value string) (ExpirationOption, bool) {
	for _, opt := range ExpirationOptions {
		if opt.Value == value {
			return opt, true
		}
	}
	return ExpirationOption{}, false
}
