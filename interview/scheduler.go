package interview

import (
	"fmt"
	"time"

	"github.com/robfig/cron"
)

// Timezone anchors both daily jobs, whatever machine the bot runs on.
const Timezone = "America/Mexico_City"

const jobHour = 12

// Scheduler fires the two daily matching jobs at a fixed hour: the post
// phase for today's weekday and the collect phase for yesterday's, since it
// gathers reactions to an announcement posted one day earlier.
type Scheduler struct {
	cron         *cron.Cron
	orchestrator *Orchestrator
	location     *time.Location
}

// NewScheduler registers both jobs on a cron pinned to the bot timezone.
func NewScheduler(orchestrator *Orchestrator) (*Scheduler, error) {
	location, err := time.LoadLocation(Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %v: %w", Timezone, err)
	}

	s := &Scheduler{
		cron:         cron.NewWithLocation(location),
		orchestrator: orchestrator,
		location:     location,
	}

	spec := fmt.Sprintf("0 0 %d * * *", jobHour)
	if err := s.cron.AddFunc(spec, s.runPost); err != nil {
		return nil, fmt.Errorf("registering the post job: %w", err)
	}
	if err := s.cron.AddFunc(spec, s.runCollect); err != nil {
		return nil, fmt.Errorf("registering the collect job: %w", err)
	}

	return s, nil
}

// Start begins firing the scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduled jobs.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Location returns the timezone the jobs run in.
func (s *Scheduler) Location() *time.Location {
	return s.location
}

func (s *Scheduler) runPost() {
	s.orchestrator.PostPhase(Weekday(time.Now().In(s.location)))
}

func (s *Scheduler) runCollect() {
	s.orchestrator.CollectPhase(Yesterday(Weekday(time.Now().In(s.location))))
}

// Weekday maps a time onto the stored day-of-week convention, Monday=0
// through Sunday=6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Yesterday returns the weekday before the given one.
func Yesterday(day int) int {
	return (day - 1 + 7) % 7
}

// NextPost returns the next time the post job fires for the given stored
// weekday, relative to now and in its location.
func NextPost(day int, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), jobHour, 0, 0, 0, now.Location())
	for Weekday(next) != day || !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
