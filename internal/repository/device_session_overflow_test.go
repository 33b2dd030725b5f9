package repository

import (
	"testing"
	"time"

	"github.com/tilmock/cefr-backend/internal/model"
)

func sessionsAt(times ...time.Time) []model.DeviceSession {
	out := make([]model.DeviceSession, len(times))
	for i, ts := range times {
		out[i] = model.DeviceSession{ID: i + 1, UserID: 7, CreatedAt: ts, IsActive: true}
	}
	return out
}

func TestOverflowVictimsUnderLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := sessionsAt(base, base.Add(time.Minute))

	if got := OverflowVictims(active, 3); got != nil {
		t.Fatalf("expected no eviction under the cap, got %d victims", len(got))
	}
}

func TestOverflowVictimsAtLimitEvictsOldest(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)
	active := sessionsAt(t1, t2, t3)

	// Exactly max active sessions + one incoming: exactly the oldest goes,
	// leaving max active after the insert.
	victims := OverflowVictims(active, 3)
	if len(victims) != 1 {
		t.Fatalf("victims = %d, want 1", len(victims))
	}
	if !victims[0].CreatedAt.Equal(t1) {
		t.Errorf("evicted session created at %v, want oldest %v", victims[0].CreatedAt, t1)
	}
	if remaining := len(active) - len(victims) + 1; remaining != 3 {
		t.Errorf("post-insert active count = %d, want 3", remaining)
	}
}

func TestOverflowVictimsConvergesLegacyOvercap(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := sessionsAt(base, base.Add(1*time.Minute), base.Add(2*time.Minute),
		base.Add(3*time.Minute), base.Add(4*time.Minute))

	// Five active rows against a cap of three: three must go so the new
	// session still fits.
	victims := OverflowVictims(active, 3)
	if len(victims) != 3 {
		t.Fatalf("victims = %d, want 3", len(victims))
	}
	for i, v := range victims {
		if v.ID != active[i].ID {
			t.Errorf("victim[%d] = id %d, want oldest-first id %d", i, v.ID, active[i].ID)
		}
	}
}

func TestOverflowVictimsTieBreakByID(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Identical created_at: the repository query orders by (created_at, id),
	// so the lowest id is first and must be the victim.
	active := []model.DeviceSession{
		{ID: 4, UserID: 7, CreatedAt: ts, IsActive: true},
		{ID: 9, UserID: 7, CreatedAt: ts, IsActive: true},
		{ID: 12, UserID: 7, CreatedAt: ts.Add(time.Second), IsActive: true},
	}

	victims := OverflowVictims(active, 3)
	if len(victims) != 1 || victims[0].ID != 4 {
		t.Fatalf("expected the lowest-id session (4) evicted, got %+v", victims)
	}
}

func TestOverflowVictimsEmptyActiveSet(t *testing.T) {
	if got := OverflowVictims(nil, 3); got != nil {
		t.Fatalf("expected nil for empty active set, got %v", got)
	}
}
