// ABOUTME: Tests for the badger rule configuration store
// ABOUTME: Table-driven with testify
package ruleconfig

import (
	"testing"
	"time"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetUnsetReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(engine.DMLabel(14))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rule, err := s.Set(" "+engine.DMLabel(14)+" ", models.CriterionConversation)
	require.NoError(t, err)
	assert.Equal(t, engine.DMLabel(14), rule.Label)
	assert.Equal(t, fixed, rule.UpdatedAt)
	assert.True(t, rule.Known())

	got, err := s.Get(engine.DMLabel(14))
	require.NoError(t, err)
	assert.Equal(t, models.CriterionConversation, got)

	_, err = s.Set(engine.DMLabel(14), models.CriterionBooking)
	require.NoError(t, err)
	got, err = s.Get(engine.DMLabel(14))
	require.NoError(t, err)
	assert.Equal(t, models.CriterionBooking, got)

	require.NoError(t, s.Delete(engine.DMLabel(14)))
	got, err = s.Get(engine.DMLabel(14))
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again is harmless.
	require.NoError(t, s.Delete(engine.DMLabel(14)))
}

func TestSetValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Set("", models.CriterionEngagement)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.Set(engine.DMLabel(3), "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUnknownCriterionStoredVerbatim(t *testing.T) {
	s := newTestStore(t)

	rule, err := s.Set(engine.DMLabel(3), "smoke_signal")
	require.NoError(t, err)
	assert.False(t, rule.Known())

	got, err := s.Get(engine.DMLabel(3))
	require.NoError(t, err)
	assert.Equal(t, "smoke_signal", got)
}

func TestAllAndSnapshot(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Set(engine.DMLabel(30), models.CriterionBooking)
	require.NoError(t, err)
	_, err = s.Set(engine.DMLabel(3), models.CriterionEngagement)
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, engine.DMLabel(3), all[0].Label)
	assert.Equal(t, engine.DMLabel(30), all[1].Label)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, models.CriterionBooking, snap.CriterionFor(engine.DMLabel(30)))
	assert.Equal(t, models.CriterionEngagement, snap.CriterionFor(engine.DMLabel(3)))
	assert.Empty(t, snap.CriterionFor(engine.DMLabel(14)))

	// The snapshot does not see later writes.
	_, err = s.Set(engine.DMLabel(14), models.CriterionConversation)
	require.NoError(t, err)
	assert.Empty(t, snap.CriterionFor(engine.DMLabel(14)))
}

func TestEffectiveFillsDefaults(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Set(engine.DMLabel(14), models.CriterionConversation)
	require.NoError(t, err)

	eff, err := s.Effective()
	require.NoError(t, err)
	require.Len(t, eff, 3)

	got := map[string]string{}
	for _, r := range eff {
		got[r.Label] = r.Criterion
	}
	assert.Equal(t, map[string]string{
		engine.DMLabel(30): models.CriterionAnyOutreach,
		engine.DMLabel(14): models.CriterionConversation,
		engine.DMLabel(3):  models.CriterionAnyOutreach,
	}, got)
}

func TestOpenOnDiskPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.Set(engine.DMLabel(30), models.CriterionEngagement)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(engine.DMLabel(30))
	require.NoError(t, err)
	assert.Equal(t, models.CriterionEngagement, got)
}
