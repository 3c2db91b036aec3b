package scheduler

import (
	"cmp"
	"slices"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// fairnessKey is the composite ordering key for the main ranking.
// It is computed once per staff member per sort.
type fairnessKey struct {
	unavailable   bool
	totalShifts   int
	weekShifts    int
	dutyTotal     int
	shiftTotal    int
	dayShifts     int
	eveningShifts int
	nightShifts   int
	restDays      int
	unitMatch     bool
	id            int64
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareFairness orders keys so that the member who should be assigned first comes first
func compareFairness(a, b fairnessKey) int {
	return cmp.Or(
		compareBool(a.unavailable, b.unavailable),
		cmp.Compare(a.totalShifts, b.totalShifts),
		cmp.Compare(a.weekShifts, b.weekShifts),
		cmp.Compare(a.dutyTotal, b.dutyTotal),
		cmp.Compare(a.shiftTotal, b.shiftTotal),
		cmp.Compare(a.dayShifts, b.dayShifts),
		cmp.Compare(a.eveningShifts, b.eveningShifts),
		cmp.Compare(a.nightShifts, b.nightShifts),
		cmp.Compare(b.restDays, a.restDays), // more rested first
		compareBool(!a.unitMatch, !b.unitMatch),
		cmp.Compare(a.id, b.id),
	)
}

func (rs *runState) fairnessKeyFor(member model.StaffMember, date string) fairnessKey {
	load := rs.loads[member.ID]
	pattern := rs.patterns[member.ID]

	return fairnessKey{
		unavailable:   rs.isUnavailable(member.ID, date),
		totalShifts:   load.TotalShifts,
		weekShifts:    rs.weekCount(member.ID, date),
		dutyTotal:     pattern.DutyTotal(),
		shiftTotal:    pattern.ShiftTotal(),
		dayShifts:     pattern.DayShifts,
		eveningShifts: pattern.EveningShifts,
		nightShifts:   pattern.NightShifts,
		restDays:      load.RestDays,
		unitMatch:     rs.unit != "" && load.Specialization == rs.unit,
		id:            member.ID,
	}
}

// rankByFairness returns the pool sorted by the full multi-key fairness ordering
func (rs *runState) rankByFairness(pool []model.StaffMember, date string) []model.StaffMember {
	type ranked struct {
		member model.StaffMember
		key    fairnessKey
	}

	entries := make([]ranked, len(pool))
	for i, member := range pool {
		entries[i] = ranked{member: member, key: rs.fairnessKeyFor(member, date)}
	}

	slices.SortFunc(entries, func(a, b ranked) int {
		return compareFairness(a.key, b.key)
	})

	result := make([]model.StaffMember, len(entries))
	for i, e := range entries {
		result[i] = e.member
	}
	return result
}

// rankByCount re-ranks a pool by a per-member counter, then total shifts.
// The sort is stable so members that tie keep their fairness order.
func (rs *runState) rankByCount(pool []model.StaffMember, count func(p *DutyPattern) int) []model.StaffMember {
	type ranked struct {
		member model.StaffMember
		count  int
		total  int
	}

	entries := make([]ranked, len(pool))
	for i, member := range pool {
		entries[i] = ranked{
			member: member,
			count:  count(rs.patterns[member.ID]),
			total:  rs.loads[member.ID].TotalShifts,
		}
	}

	slices.SortStableFunc(entries, func(a, b ranked) int {
		return cmp.Or(
			cmp.Compare(a.count, b.count),
			cmp.Compare(a.total, b.total),
		)
	})

	result := make([]model.StaffMember, len(entries))
	for i, e := range entries {
		result[i] = e.member
	}
	return result
}

func eveningCount(p *DutyPattern) int  { return p.EveningShifts }
func nightCount(p *DutyPattern) int    { return p.NightShifts }
func preDutyCount(p *DutyPattern) int  { return p.PreDuty }
func postDutyCount(p *DutyPattern) int { return p.PostDuty }
