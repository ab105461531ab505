package frontmatter

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DateLayout is the only accepted textual form of a date field.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the calendar date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// dateRules reject anything that is not a YYYY-MM-DD calendar date. Their
// messages become the reason of a date FieldValueError.
var dateRules = []validation.Rule{
	validation.Required.Error("must be a calendar date in YYYY-MM-DD form"),
	validation.Date(DateLayout).Error("must be a calendar date in YYYY-MM-DD form"),
}

// ParseDate parses s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if err := validation.Validate(s, dateRules...); err != nil {
		return Date{}, err
	}
	// s already matched DateLayout above.
	t, _ := time.Parse(DateLayout, s)
	return NewDate(t), nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes d as an untagged YAML date rather than a quoted string.
func (d Date) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: d.String()}, nil
}

func (d Date) localDate() toml.LocalDate {
	return toml.LocalDate{Year: d.Year, Month: int(d.Month), Day: d.Day}
}

// toDate converts a decoded date value into a Date. Strings must match
// DateLayout; TOML local dates are accepted as-is. Date-times are rejected
// since a post date carries no time of day.
func toDate(v any) (Date, error) {
	switch val := v.(type) {
	case Date:
		return val, nil
	case string:
		return ParseDate(val)
	case toml.LocalDate:
		return Date{Year: val.Year, Month: time.Month(val.Month), Day: val.Day}, nil
	case toml.LocalDateTime, time.Time:
		return Date{}, fmt.Errorf("must be a calendar date without a time of day")
	default:
		return Date{}, fmt.Errorf("must be a calendar date in %s form", "YYYY-MM-DD")
	}
}
