package scheduler

import (
	"math/rand"
	"sort"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// tally accumulates duty counts for one teacher, total and per location.
type tally struct {
	total      int
	byLocation map[model.DutyLocation]int
}

func newTally() *tally {
	return &tally{byLocation: make(map[model.DutyLocation]int)}
}

// runState is the bookkeeping for a single Generate call. It is built from
// the inputs, mutated as days are filled, and discarded with the call.
type runState struct {
	historical map[string]*tally
	monthly    map[string]*tally

	// lastDutyDay maps teacher id to the day of month of their latest duty.
	lastDutyDay map[string]int

	// weekFirstLocation remembers the location of each teacher's first duty
	// in the current ISO week; cleared whenever weekID changes.
	weekFirstLocation map[string]model.DutyLocation
	weekID            string
}

func newRunState(teachers []model.Teacher, history []model.RosterMonth) *runState {
	st := &runState{
		historical:        make(map[string]*tally, len(teachers)),
		monthly:           make(map[string]*tally, len(teachers)),
		lastDutyDay:       make(map[string]int, len(teachers)),
		weekFirstLocation: make(map[string]model.DutyLocation, len(teachers)),
	}

	for _, t := range teachers {
		st.historical[t.ID] = newTally()
		st.monthly[t.ID] = newTally()
	}

	// Duties held by teachers no longer on the roster are ignored.
	for _, roster := range history {
		for _, day := range roster.Days {
			for _, duty := range day.Duties {
				counts, ok := st.historical[duty.TeacherID]
				if !ok {
					continue
				}
				counts.total++
				counts.byLocation[duty.Location]++
			}
		}
	}

	return st
}

func (st *runState) recordDuty(teacherID string, loc model.DutyLocation, dayOfMonth int) {
	counts := st.monthly[teacherID]
	counts.total++
	counts.byLocation[loc]++

	st.lastDutyDay[teacherID] = dayOfMonth

	if _, ok := st.weekFirstLocation[teacherID]; !ok {
		st.weekFirstLocation[teacherID] = loc
	}
}

// pick selects the best candidate for a location under the fairness total
// order. Ties surviving every rule are broken by a coin flip: candidates are
// shuffled before the stable sort, so equally ranked teachers keep their
// random relative order. Deterministic mode sorts those ties by teacher ID
// instead.
func (st *runState) pick(
	candidates []model.Teacher,
	loc, primary model.DutyLocation,
	deterministic bool,
	rng *rand.Rand,
) model.Teacher {
	if !deterministic {
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return st.ranksBefore(candidates[i], candidates[j], loc, primary, deterministic)
	})

	return candidates[0]
}

// ranksBefore applies the candidate ordering, each rule breaking ties from
// the previous:
//
//  1. least combined (historical + this month) duty total first
//  2. least this-month total first
//  3. location balance: when filling the primary location, lowest imbalance
//     first; for any other location, highest imbalance first
//  4. teachers who already first-worked this location this week go last
func (st *runState) ranksBefore(a, b model.Teacher, loc, primary model.DutyLocation, deterministic bool) bool {
	ha, ma := st.historical[a.ID], st.monthly[a.ID]
	hb, mb := st.historical[b.ID], st.monthly[b.ID]

	if totalA, totalB := ha.total+ma.total, hb.total+mb.total; totalA != totalB {
		return totalA < totalB
	}

	if ma.total != mb.total {
		return ma.total < mb.total
	}

	if ia, ib := st.imbalance(a.ID, primary), st.imbalance(b.ID, primary); ia != ib {
		if loc == primary {
			return ia < ib
		}
		return ia > ib
	}

	if pa, pb := st.weekFirstLocation[a.ID] == loc, st.weekFirstLocation[b.ID] == loc; pa != pb {
		return !pa
	}

	if deterministic {
		return a.ID < b.ID
	}
	return false
}

// imbalance is the teacher's combined duty count at the primary location
// minus their count at all other locations. A positive value means
// overexposure to the primary location.
func (st *runState) imbalance(teacherID string, primary model.DutyLocation) int {
	h, m := st.historical[teacherID], st.monthly[teacherID]

	atPrimary := h.byLocation[primary] + m.byLocation[primary]
	elsewhere := (h.total - h.byLocation[primary]) + (m.total - m.byLocation[primary])

	return atPrimary - elsewhere
}
