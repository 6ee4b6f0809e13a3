package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 12, day, hour, minute, 0, 0, time.UTC)
}

func atp(day, hour, minute int) *time.Time {
	t := at(day, hour, minute)
	return &t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name    string
		candDep time.Time
		candArr *time.Time
		exDep   time.Time
		exArr   *time.Time
		want    bool
	}{
		{"identical windows", at(18, 1, 45), atp(18, 23, 0), at(18, 1, 45), atp(18, 23, 0), true},
		{"disjoint", at(18, 1, 0), atp(18, 5, 0), at(18, 9, 0), atp(18, 12, 0), false},
		{"back-to-back, candidate first", at(18, 1, 45), atp(18, 23, 0), at(18, 23, 0), atp(19, 5, 0), false},
		{"back-to-back, existing first", at(18, 23, 0), atp(19, 5, 0), at(18, 1, 45), atp(18, 23, 0), false},
		{"candidate inside existing", at(18, 10, 0), atp(18, 12, 0), at(18, 1, 45), atp(18, 23, 0), true},
		{"existing inside candidate", at(18, 1, 45), atp(18, 23, 0), at(18, 10, 0), atp(18, 12, 0), true},
		{"partial overlap", at(18, 17, 35), atp(18, 23, 0), at(18, 1, 45), atp(18, 23, 0), true},
		{"straddles start", at(18, 1, 0), atp(18, 2, 0), at(18, 1, 45), atp(18, 23, 0), true},
		{"open existing, departure covered", at(18, 1, 0), atp(18, 5, 0), at(18, 3, 0), nil, true},
		{"open existing, departure at candidate arrival", at(18, 1, 0), atp(18, 5, 0), at(18, 5, 0), nil, false},
		{"open existing, departs later", at(18, 1, 0), atp(18, 5, 0), at(18, 9, 0), nil, false},
		{"open candidate inside existing", at(18, 3, 0), nil, at(18, 1, 0), atp(18, 5, 0), true},
		{"open candidate at existing arrival", at(18, 5, 0), nil, at(18, 1, 0), atp(18, 5, 0), false},
		{"open candidate before existing", at(18, 0, 30), nil, at(18, 1, 0), atp(18, 5, 0), false},
		{"both open, same departure", at(18, 1, 0), nil, at(18, 1, 0), nil, true},
		{"both open, different departures", at(18, 1, 0), nil, at(18, 2, 0), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, overlaps(tc.candDep, tc.candArr, tc.exDep, tc.exArr))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := at(1, 0, 0)
	randWindow := func() (time.Time, *time.Time) {
		dep := base.Add(time.Duration(rng.Intn(10_000)) * time.Minute)
		if rng.Intn(4) == 0 {
			return dep, nil
		}
		arr := dep.Add(time.Duration(1+rng.Intn(600)) * time.Minute)
		return dep, &arr
	}
	for i := 0; i < 500; i++ {
		aDep, aArr := randWindow()
		bDep, bArr := randWindow()
		assert.Equal(t, overlaps(aDep, aArr, bDep, bArr), overlaps(bDep, bArr, aDep, aArr))
	}
}

func TestOverlapsTouchingNeverConflicts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := at(1, 0, 0)
	for i := 0; i < 500; i++ {
		dep := base.Add(time.Duration(rng.Intn(10_000)) * time.Minute)
		mid := dep.Add(time.Duration(1+rng.Intn(600)) * time.Minute)
		end := mid.Add(time.Duration(1+rng.Intn(600)) * time.Minute)
		assert.False(t, overlaps(dep, &mid, mid, &end))
		assert.False(t, overlaps(mid, &end, dep, &mid))
	}
}

func TestCheckConflict(t *testing.T) {
	// The Duronto Express scenario: an existing full-day leg, a
	// compatible overnight continuation, and an overlapping evening leg.
	existing := []model.Ticket{{
		ID:         7,
		TrainID:    1,
		CoachID:    2,
		SeatNumber: 41,
		DepartsAt:  at(18, 1, 45),
		ArrivesAt:  atp(18, 23, 0),
	}}

	handOff := &model.Ticket{
		TrainID:    1,
		CoachID:    2,
		SeatNumber: 41,
		DepartsAt:  at(18, 23, 0),
		ArrivesAt:  atp(19, 5, 0),
	}
	require.NoError(t, checkConflict(handOff, existing))

	clash := &model.Ticket{
		TrainID:    1,
		CoachID:    2,
		SeatNumber: 41,
		DepartsAt:  at(18, 17, 35),
		ArrivesAt:  atp(18, 23, 0),
	}
	err := checkConflict(clash, existing)
	require.Error(t, err)
	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, uint64(7), conflict.ExistingID)
	assert.Equal(t, uint32(41), conflict.SeatNumber)
	assert.Equal(t, at(18, 1, 45), conflict.ExistingDeparture)
	require.NotNil(t, conflict.ExistingArrival)
	assert.Equal(t, at(18, 23, 0), *conflict.ExistingArrival)
}

func TestCheckConflictEmptySeat(t *testing.T) {
	cand := &model.Ticket{DepartsAt: at(18, 1, 45), ArrivesAt: atp(18, 23, 0)}
	require.NoError(t, checkConflict(cand, nil))
}
