package draw

import "github.com/xiaofuou6/chaos-card-machine/internal/task"

// FanSize is the most cards shown while shuffling.
const FanSize = 8

// Fan returns the cards laid out during the shuffle: the first FanSize-1
// candidates followed by the selected task, capped at FanSize. The selected
// task may appear twice when it is among the first candidates.
func Fan(candidates []task.Task, selected task.Task) []task.Task {
	n := min(len(candidates), FanSize-1)
	cards := make([]task.Task, 0, n+1)
	cards = append(cards, candidates[:n]...)
	cards = append(cards, selected)
	return cards
}
