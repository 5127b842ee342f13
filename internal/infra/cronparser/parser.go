package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

// Standard five-field cron plus descriptors (@hourly, @daily, ...), the
// grammar the CronJob controller accepts for spec.schedule.
var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parser computes next cron occurrences using go-cron.
type Parser struct{}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{}
}

// NextAfter returns the next occurrence of spec strictly after `after`.
// tz carries the schedule's spec.timeZone; when set and the spec has no
// CRON_TZ=/TZ= prefix it is prepended as CRON_TZ=<tz>. Without a timezone the
// schedule is evaluated in UTC, matching the CronJob controller's default.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := _parser.Parse(buildSpec(spec, tz))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule.Next(after), nil
}

func buildSpec(spec, tz string) string {
	if strings.HasPrefix(spec, "@") {
		// Descriptors take no timezone prefix.
		return spec
	}

	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")
	if hasTZPrefix {
		return spec
	}

	if tz != "" {
		return "CRON_TZ=" + tz + " " + spec
	}

	return "CRON_TZ=UTC " + spec
}
