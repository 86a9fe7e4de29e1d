package timers

import "timerdeck/internal/core/model"

// CategoryGroup is the ordered subset of timers sharing one category.
type CategoryGroup struct {
	Category string
	Timers   []model.Timer
}

// Stats counts the group's timers by status.
func (group CategoryGroup) Stats() CategoryStats {
	return statsOf(group.Timers)
}

// CategoryStats summarizes timers by status.
type CategoryStats struct {
	Total     int
	Running   int
	Paused    int
	Completed int
}

// GroupByCategory groups timers by exact category label. Groups appear in
// order of first appearance and members keep collection order.
func GroupByCategory(timers []model.Timer) []CategoryGroup {
	var groups []CategoryGroup
	positions := make(map[string]int)
	for _, timer := range timers {
		index, ok := positions[timer.Category]
		if !ok {
			index = len(groups)
			positions[timer.Category] = index
			groups = append(groups, CategoryGroup{Category: timer.Category})
		}
		groups[index].Timers = append(groups[index].Timers, timer)
	}
	return groups
}

// IndexByCategory is the map form of GroupByCategory.
func IndexByCategory(timers []model.Timer) map[string][]model.Timer {
	index := make(map[string][]model.Timer)
	for _, timer := range timers {
		index[timer.Category] = append(index[timer.Category], timer)
	}
	return index
}

// CategoryNames lists distinct categories in order of first appearance.
func CategoryNames(timers []model.Timer) []string {
	groups := GroupByCategory(timers)
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Category)
	}
	return names
}

func statsOf(timers []model.Timer) CategoryStats {
	stats := CategoryStats{Total: len(timers)}
	for _, timer := range timers {
		switch timer.Status {
		case model.StatusRunning:
			stats.Running++
		case model.StatusPaused:
			stats.Paused++
		case model.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}
