package services

import "time"

// SchedulerConfig collects the timing thresholds of the day planner. All
// minute fields are minutes since midnight or plain durations in minutes.
type SchedulerConfig struct {
	DayStartMin      int // active window open, default 09:00
	DayEndMin        int // active window close, default 19:00
	MaxGapMin        int // largest tolerated idle stretch between blocks
	MaxAfternoonGap  int // largest tolerated lunch-end to dinner-start stretch
	TargetLandmarks  int // landmarks per normal day before expansion stops
	ExpansionRounds  int // generative request rounds per day
	RegenAttempts    int // gap-driven regeneration attempts per day
	GapFillerMaxMin  int // duration cap for a gap-filling landmark
	ThemeParkStart   int // theme-park day anchor, default 09:00
	ThemeParkMinutes int // theme-park visit length, default 8h
	UpstreamRetries  int
	RequestDeadline  time.Duration
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		DayStartMin:      9 * 60,
		DayEndMin:        19 * 60,
		MaxGapMin:        180,
		MaxAfternoonGap:  240,
		TargetLandmarks:  3,
		ExpansionRounds:  3,
		RegenAttempts:    2,
		GapFillerMaxMin:  120,
		ThemeParkStart:   9 * 60,
		ThemeParkMinutes: 8 * 60,
		UpstreamRetries:  2,
		RequestDeadline:  12 * time.Second,
	}
}
