package services

import (
	"context"
	"log"
	"sort"

	"voyago/pkg/utils"
)

// Gap is an idle stretch between two adjacent blocks on one day.
type Gap struct {
	AfterIndex int // index of the block the gap follows
	StartMin   int
	EndMin     int
	Minutes    int
}

type dayState int

const (
	stateMerging dayState = iota
	stateValidating
	stateRegenerating
	stateAccepted
)

type TimelineAssemblerInterface interface {
	PlaceLandmarks(day *PlanDay)
	Assemble(day *PlanDay)
	Gaps(blocks []*PlanBlock) []Gap
	Finalize(ctx context.Context, trip *TripContext, day *PlanDay)
}

type TimelineAssembler struct {
	expander LandmarkExpanderInterface
	meals    MealSlotPlannerInterface
	enhancer EnhancementMergerInterface
	cfg      SchedulerConfig
}

func NewTimelineAssembler(
	expander LandmarkExpanderInterface,
	meals MealSlotPlannerInterface,
	enhancer EnhancementMergerInterface,
	cfg SchedulerConfig,
) TimelineAssemblerInterface {
	return &TimelineAssembler{
		expander: expander,
		meals:    meals,
		enhancer: enhancer,
		cfg:      cfg,
	}
}

// PlaceLandmarks spreads the day's landmarks over the active window,
// leaving even breathing room between stops. Theme-park days arrive already
// placed.
func (t *TimelineAssembler) PlaceLandmarks(day *PlanDay) {
	if day.Mode == DayModeThemePark || len(day.Landmarks) == 0 {
		return
	}

	totalDur := 0
	for _, lm := range day.Landmarks {
		totalDur += lm.DurationMin
	}

	window := t.cfg.DayEndMin - t.cfg.DayStartMin
	spare := window - totalDur - lunchMinutes
	spacing := 0
	if spare > 0 {
		spacing = spare / len(day.Landmarks)
	}
	if spacing > 90 {
		spacing = 90
	}

	start := t.cfg.DayStartMin
	for _, lm := range day.Landmarks {
		lm.StartMin = start
		start += lm.DurationMin + spacing
	}
}

// Assemble merges landmarks and meals into one time-ordered sequence,
// pushing starts forward to resolve overlaps. Theme-park days skip overlap
// resolution: meals there intentionally sit inside the park's span.
func (t *TimelineAssembler) Assemble(day *PlanDay) {
	blocks := make([]*PlanBlock, 0, len(day.Landmarks)+len(day.Meals))
	blocks = append(blocks, day.Landmarks...)
	blocks = append(blocks, day.Meals...)

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].StartMin < blocks[j].StartMin
	})

	if day.Mode != DayModeThemePark {
		for i := 1; i < len(blocks); i++ {
			prevEnd := blocks[i-1].StartMin + blocks[i-1].DurationMin
			if blocks[i].StartMin < prevEnd {
				blocks[i].StartMin = prevEnd
			}
		}
	}

	day.Blocks = blocks
}

// Gaps lists the positive idle stretches between adjacent blocks.
func (t *TimelineAssembler) Gaps(blocks []*PlanBlock) []Gap {
	var gaps []Gap
	for i := 1; i < len(blocks); i++ {
		prevEnd := blocks[i-1].StartMin + blocks[i-1].DurationMin
		if diff := blocks[i].StartMin - prevEnd; diff > 0 {
			gaps = append(gaps, Gap{
				AfterIndex: i - 1,
				StartMin:   prevEnd,
				EndMin:     blocks[i].StartMin,
				Minutes:    diff,
			})
		}
	}
	return gaps
}

// Finalize drives one day through Merging -> Validating and the bounded
// Regenerating loop. The day always terminates Accepted; an uncloseable gap
// is flagged, never fatal.
func (t *TimelineAssembler) Finalize(ctx context.Context, trip *TripContext, day *PlanDay) {
	state := stateMerging
	attempts := 0

	for {
		switch state {
		case stateMerging:
			t.Assemble(day)
			state = stateValidating

		case stateValidating:
			if day.Mode == DayModeThemePark {
				state = stateAccepted
				break
			}
			worst := worstGap(t.Gaps(day.Blocks))
			if worst == nil || worst.Minutes <= t.cfg.MaxGapMin {
				state = stateAccepted
				break
			}
			if attempts >= t.cfg.RegenAttempts {
				day.ResidualGap = true
				log.Printf("day %d: %v: %d minute gap remains after %d attempts",
					day.Number, utils.ErrGapThresholdExceeded, worst.Minutes, attempts)
				state = stateAccepted
				break
			}
			state = stateRegenerating

		case stateRegenerating:
			attempts++
			t.regenerate(ctx, trip, day, attempts)
			state = stateMerging

		case stateAccepted:
			return
		}
	}
}

// regenerate closes the worst gap: first attempt asks for one extra
// landmark planted mid-gap, later attempts only shift blocks into the gap.
func (t *TimelineAssembler) regenerate(ctx context.Context, trip *TripContext, day *PlanDay, attempt int) {
	worst := worstGap(t.Gaps(day.Blocks))
	if worst == nil {
		return
	}

	if attempt == 1 {
		filler, err := t.expander.FillGap(ctx, trip, day, worst.Minutes)
		if err != nil {
			log.Printf("day %d: gap filler unavailable: %v", day.Number, err)
		}
		if filler != nil {
			filler.StartMin = worst.StartMin + (worst.Minutes-filler.DurationMin)/2
			t.enhancer.EnhanceBlock(ctx, trip, filler)
			day.Landmarks = append(day.Landmarks, filler)
			t.meals.AnchorMeals(day)
			return
		}
	}

	t.shiftIntoGap(day, worst)
}

// shiftIntoGap centers the block that follows the gap inside it, splitting
// one oversized stretch into two smaller ones.
func (t *TimelineAssembler) shiftIntoGap(day *PlanDay, gap *Gap) {
	if gap.AfterIndex+1 >= len(day.Blocks) {
		return
	}
	after := day.Blocks[gap.AfterIndex+1]

	shifted := gap.StartMin + (gap.Minutes-after.DurationMin)/2
	if shifted < gap.StartMin {
		shifted = gap.StartMin
	}
	after.StartMin = shifted
}

func worstGap(gaps []Gap) *Gap {
	var worst *Gap
	for i := range gaps {
		if worst == nil || gaps[i].Minutes > worst.Minutes {
			worst = &gaps[i]
		}
	}
	return worst
}
