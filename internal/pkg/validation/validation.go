package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var epcRe = regexp.MustCompile(`^[A-Ga-g]$`)

var propertyTypes = map[string]string{
	"office":      "Office",
	"retail":      "Retail",
	"industrial":  "Industrial",
	"residential": "Residential",
}

var transactionTypes = map[string]bool{
	"rent":    true,
	"service": true,
	"deposit": true,
	"fee":     true,
	"other":   true,
}

// IsValidEPC accepts a single energy rating letter A-G in either case.
func IsValidEPC(s string) bool {
	return epcRe.MatchString(strings.TrimSpace(s))
}

// NormalizePropertyType returns the canonical spelling of a property type.
func NormalizePropertyType(s string) (string, bool) {
	t, ok := propertyTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

func IsValidOccupancyRate(v float64) bool {
	return v >= 0 && v <= 1
}

func IsValidMaintenanceScore(v float64) bool {
	return v >= 1 && v <= 10
}

func IsValidTransactionType(s string) bool {
	return transactionTypes[strings.ToLower(strings.TrimSpace(s))]
}

var ErrInvalidDate = errors.New("unrecognised date")

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

// ParseDate accepts RFC 3339 timestamps, ISO dates and day-first dd/mm/yyyy
// dates. An empty string is a missing date, not an error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

// FieldErrors collects one message per invalid request field.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Error lists the fields in name order so messages are stable.
func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}
