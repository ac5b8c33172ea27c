package domain

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// Date is a calendar day without a time zone. It is comparable and can be
// used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday index with Monday as 0 and Sunday as 6.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a time of day with second precision.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

func NewClock(hour, minute, second int) Clock {
	return Clock{Hour: hour, Minute: minute, Second: second}
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// PresenceRecord is one parsed row of the presence log.
type PresenceRecord struct {
	UserID int
	Date   Date
	Start  Clock
	End    Clock
}

// PresenceIndex maps a user id to that user's presence intervals by date.
// Each (user, date) pair holds at most one interval.
type PresenceIndex map[int]map[Date]Interval

func NewPresenceIndex() PresenceIndex {
	return make(PresenceIndex)
}

// Add stores the record, replacing any interval already stored for the same
// user and date. It reports whether a previous interval was replaced.
func (idx PresenceIndex) Add(r PresenceRecord) bool {
	days, ok := idx[r.UserID]
	if !ok {
		days = make(map[Date]Interval)
		idx[r.UserID] = days
	}
	_, replaced := days[r.Date]
	days[r.Date] = Interval{Start: r.Start, End: r.End}
	return replaced
}

func (idx PresenceIndex) User(userID int) (map[Date]Interval, bool) {
	days, ok := idx[userID]
	return days, ok
}

type User struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

func NewUser(userID int) User {
	return User{UserID: userID, Name: fmt.Sprintf("User %d", userID)}
}
