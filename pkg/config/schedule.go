package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Same field set as cron.New(), so anything accepted here also schedules.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateCronSchedule accepts five-field expressions ("30 3 * * *") and
// descriptors ("@daily", "@every 1h").
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("cron schedule is empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks that name is a loadable IANA zone.
func ValidateTimezone(name string) error {
	if name == "" {
		return errors.New("timezone is empty")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("timezone %q: %w", name, err)
	}
	return nil
}

// ValidateIntRange checks lo <= v <= hi.
func ValidateIntRange(v, lo, hi int) error {
	switch {
	case lo > hi:
		return fmt.Errorf("empty range [%d, %d]", lo, hi)
	case v < lo || v > hi:
		return fmt.Errorf("%d outside [%d, %d]", v, lo, hi)
	}
	return nil
}
