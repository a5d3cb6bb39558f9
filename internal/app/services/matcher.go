package services

import (
	"sort"
	"time"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/pkg/helpers"
)

// slotRange is one half-open minutes-since-midnight interval
type slotRange struct {
	start int
	end   int
}

// mergeSlots parses and merges "HH:mm-HH:mm" strings into sorted
// non-overlapping ranges. Malformed slots are skipped.
func mergeSlots(slots []string) []slotRange {
	ranges := make([]slotRange, 0, len(slots))
	for _, s := range slots {
		start, end, err := helpers.ParseSlot(s)
		if err != nil {
			continue
		}
		ranges = append(ranges, slotRange{start: start, end: end})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	merged := ranges[:0]
	for _, r := range ranges {
		if n := len(merged); n > 0 && r.start <= merged[n-1].end {
			if r.end > merged[n-1].end {
				merged[n-1].end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// slotsCover reports whether the merged slots contain [start, end) in full
func slotsCover(slots []string, start, end int) bool {
	for _, r := range mergeSlots(slots) {
		if r.start <= start && end <= r.end {
			return true
		}
	}
	return false
}

// availabilityByDay groups entries by examiner and resolves weekly
// templates against concrete dates.
type availabilityIndex struct {
	// dated[examinerID][yyyy-mm-dd] = slots
	dated map[int64]map[string][]string
	// weekly[examinerID][weekday] = slots
	weekly map[int64]map[time.Weekday][]string
}

func buildAvailabilityIndex(entries []*models.ExaminerAvailability) *availabilityIndex {
	idx := &availabilityIndex{
		dated:  make(map[int64]map[string][]string),
		weekly: make(map[int64]map[time.Weekday][]string),
	}
	for _, e := range entries {
		if e.Weekly {
			byDay, ok := idx.weekly[e.ExaminerID]
			if !ok {
				byDay = make(map[time.Weekday][]string)
				idx.weekly[e.ExaminerID] = byDay
			}
			byDay[e.Date.UTC().Weekday()] = append(byDay[e.Date.UTC().Weekday()], e.Slots...)
			continue
		}

		byDate, ok := idx.dated[e.ExaminerID]
		if !ok {
			byDate = make(map[string][]string)
			idx.dated[e.ExaminerID] = byDate
		}
		key := helpers.DateOnly(e.Date).Format("2006-01-02")
		byDate[key] = append(byDate[key], e.Slots...)
	}
	return idx
}

// slotsFor returns the slots an examiner has declared for one date,
// dated entries plus any weekly template matching its weekday.
func (idx *availabilityIndex) slotsFor(examinerID int64, date time.Time) []string {
	date = helpers.DateOnly(date)
	var slots []string
	if byDate, ok := idx.dated[examinerID]; ok {
		slots = append(slots, byDate[date.Format("2006-01-02")]...)
	}
	if byDay, ok := idx.weekly[examinerID]; ok {
		slots = append(slots, byDay[date.Weekday()]...)
	}
	return slots
}

// matchExaminersForWindow returns the IDs of examiners whose declared
// availability covers the daily time window on every date of the event
// window. Result order follows the input ID order.
func matchExaminersForWindow(examinerIDs []int64, entries []*models.ExaminerAvailability, startDate, endDate time.Time, dayStart, dayEnd int) []int64 {
	idx := buildAvailabilityIndex(entries)

	first := helpers.DateOnly(startDate)
	last := helpers.DateOnly(endDate)

	var matched []int64
	for _, id := range examinerIDs {
		covers := true
		for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
			if !slotsCover(idx.slotsFor(id, date), dayStart, dayEnd) {
				covers = false
				break
			}
		}
		if covers {
			matched = append(matched, id)
		}
	}
	return matched
}
