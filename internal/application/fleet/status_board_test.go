package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBoard_SnapshotIsSortedAndLatestWins(t *testing.T) {
	b := NewStatusBoard()
	b.Update(FleetStatus{Fleet: "charlie", State: "Idle"})
	b.Update(FleetStatus{Fleet: "alpha", State: "Idle"})
	b.Update(FleetStatus{Fleet: "alpha", State: "MoveWarp"})

	snapshot := b.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "alpha", snapshot[0].Fleet)
	assert.Equal(t, "MoveWarp", snapshot[0].State)

	assert.Equal(t, map[string]string{"alpha": "MoveWarp", "charlie": "Idle"}, b.States())
}
