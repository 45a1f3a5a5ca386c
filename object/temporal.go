package object

import (
	"fmt"
	"time"
)

const (
	secondsPerDay = 24 * 60 * 60

	// DateLayout is the text form of a Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the text form of a Time.
	TimeLayout = "15:04:05"
	// TimestampLayout is the text form of a Timestamp. Millisecond values are
	// padded to six fractional digits.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Date is a calendar day without a time component.
type Date struct {
	days int64
}

func (Date) Kind() Kind { return KindDate }
func (Date) isValue()   {}

// DateFromDays returns the date that is the given number of days after 1970-01-01.
func DateFromDays(days int64) Date {
	return Date{days: days}
}

// NewDate returns the date for the given calendar fields. Out of range
// fields are normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
	return Date{days: days}
}

// ParseDate parses a date in DateLayout form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Days returns the number of days since 1970-01-01.
func (d Date) Days() int64 {
	return d.days
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Unix(d.days*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// Time is a time of day with second resolution.
type Time struct {
	secs int32
}

func (Time) Kind() Kind { return KindTime }
func (Time) isValue()   {}

// NewTime returns the time of day for the given fields, wrapped to a single day.
func NewTime(hour, minute, second int) Time {
	secs := (hour*60*60 + minute*60 + second) % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return Time{secs: int32(secs)}
}

// TimeFromUnix returns the UTC time of day of the given unix time in seconds.
func TimeFromUnix(sec int64) Time {
	return TimeOf(time.Unix(sec, 0).UTC())
}

// TimeOf returns the wall clock time of t in its own location. Sub-second
// precision is discarded.
func TimeOf(t time.Time) Time {
	return NewTime(t.Hour(), t.Minute(), t.Second())
}

// ParseTime parses a time in TimeLayout form.
func ParseTime(s string) (Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return Time{}, err
	}
	return TimeOf(t), nil
}

// Clock returns the hour, minute, and second of the time.
func (t Time) Clock() (hour, minute, second int) {
	secs := int(t.secs)
	return secs / 3600, secs % 3600 / 60, secs % 60
}

// Seconds returns the number of seconds since midnight.
func (t Time) Seconds() int {
	return int(t.secs)
}

func (t Time) String() string {
	h, m, s := t.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Timestamp is an instant in UTC with millisecond resolution.
type Timestamp struct {
	millis int64
}

func (Timestamp) Kind() Kind { return KindTimestamp }
func (Timestamp) isValue()   {}

// TimestampFromMillis returns the instant the given number of milliseconds
// after the unix epoch.
func TimestampFromMillis(millis int64) Timestamp {
	return Timestamp{millis: millis}
}

// NewTimestamp returns the UTC instant for the given calendar fields.
func NewTimestamp(year int, month time.Month, day, hour, minute, second, millis int) Timestamp {
	t := time.Date(year, month, day, hour, minute, second, millis*int(time.Millisecond), time.UTC)
	return TimestampOf(t)
}

// TimestampOf returns the instant of t truncated to milliseconds.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{millis: t.UnixMilli()}
}

// ParseTimestamp parses an RFC 3339 timestamp. Precision below one
// millisecond is truncated.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, err
	}
	return TimestampOf(t), nil
}

// Millis returns the number of milliseconds since the unix epoch.
func (t Timestamp) Millis() int64 {
	return t.millis
}

// Time returns the instant as a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(t.millis).UTC()
}

func (t Timestamp) String() string {
	return t.Time().Format(TimestampLayout)
}

// Interval is a signed duration with millisecond resolution.
type Interval struct {
	millis int64
}

func (Interval) Kind() Kind { return KindInterval }
func (Interval) isValue()   {}

// IntervalFromMillis returns an interval of the given number of milliseconds.
func IntervalFromMillis(millis int64) Interval {
	return Interval{millis: millis}
}

// IntervalOf returns the interval of d truncated to milliseconds.
func IntervalOf(d time.Duration) Interval {
	return Interval{millis: d.Milliseconds()}
}

// Millis returns the length of the interval in milliseconds.
func (i Interval) Millis() int64 {
	return i.millis
}

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.millis) * time.Millisecond
}

func (i Interval) String() string {
	return i.Duration().String()
}
