package blocked

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/registry"
)

const day = "2026-06-15"

type fakeRemote struct {
    doc *model.Document
    err error
}

func (f *fakeRemote) Fetch(context.Context) (*model.Document, error) {
    if f.err != nil {
        return nil, f.err
    }
    return f.doc.Clone(), nil
}

func (f *fakeRemote) Put(context.Context, *model.Document) error { return nil }

func testRegistry(t *testing.T) *registry.Registry {
    t.Helper()
    one := 1
    two := 2
    r, err := registry.New(
        []model.Division{
            {Name: "grade1", Bunks: []string{"bunk-1", "bunk-2"}},
            {Name: "grade3", Bunks: []string{"bunk-5", "bunk-6"}},
        },
        []model.Subdivision{
            {ID: "subdiv-a", Name: "A", Divisions: []string{"grade1"}, EditorID: 10},
            {ID: "subdiv-b", Name: "B", Divisions: []string{"grade3"}, EditorID: 20},
        },
        []model.ResourceRule{
            {Name: "gym", MaxCapacity: &one},
            {Name: "pool", MaxCapacity: &two},
        },
    )
    require.NoError(t, err)
    return r
}

func activityAt(slots map[int]model.SlotAssignment, total int) []model.SlotAssignment {
    row := make([]model.SlotAssignment, total)
    for i := range row {
        row[i] = model.FreeSlot()
    }
    for slot, a := range slots {
        row[slot] = a
    }
    return row
}

func TestBuildBlocksForeignLockedClaims(t *testing.T) {
    // Subdivision A's bunk-1 holds the gym in slot 5; capacity is 1.
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{
        "bunk-1": activityAt(map[int]model.SlotAssignment{
            5: {Kind: model.SlotActivity, Resource: "gym", Activity: "Basketball"},
        }, 12),
    }

    b := NewBuilder(&fakeRemote{doc: doc}, testRegistry(t))
    editorB := model.Identity{UserID: 20, Role: model.RoleScheduler}

    m, err := b.Build(context.Background(), editorB, day)
    require.NoError(t, err)

    sr := m.BySlotResource[5]["gym"]
    require.NotNil(t, sr)
    assert.Equal(t, 1, sr.Count)
    assert.True(t, sr.IsBlocked)
    assert.Equal(t, []string{"grade1"}, sr.ClaimedByDivisions)
    assert.Equal(t, []string{"bunk-1"}, sr.Bunks)

    claim := m.ByBunkSlot["bunk-1"][5]
    assert.Equal(t, "Basketball", claim.Activity)
    assert.Equal(t, "grade1", claim.Division)

    assert.False(t, m.IsResourceAvailable("gym", 5))
    assert.True(t, m.IsResourceAvailable("gym", 6))
    assert.True(t, m.IsResourceAvailable("pool", 5))
}

func TestBuildSkipsOwnBunks(t *testing.T) {
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{
        "bunk-1": activityAt(map[int]model.SlotAssignment{
            3: {Kind: model.SlotActivity, Resource: "gym", Activity: "Basketball"},
        }, 12),
    }

    b := NewBuilder(&fakeRemote{doc: doc}, testRegistry(t))
    editorA := model.Identity{UserID: 10, Role: model.RoleScheduler}

    m, err := b.Build(context.Background(), editorA, day)
    require.NoError(t, err)

    assert.Empty(t, m.BySlotResource, "own claims never block")
    assert.True(t, m.IsResourceAvailable("gym", 3))
}

func TestBuildTreatsUnknownBunkAsUnclaimed(t *testing.T) {
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{
        "bunk-ghost": activityAt(map[int]model.SlotAssignment{
            2: {Kind: model.SlotActivity, Resource: "gym", Activity: "Mystery"},
        }, 12),
    }

    b := NewBuilder(&fakeRemote{doc: doc}, testRegistry(t))
    editorB := model.Identity{UserID: 20, Role: model.RoleScheduler}

    m, err := b.Build(context.Background(), editorB, day)
    require.NoError(t, err)
    assert.Empty(t, m.BySlotResource)
}

func TestBuildIgnoresContinuationsAndFreeSlots(t *testing.T) {
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{
        "bunk-1": activityAt(map[int]model.SlotAssignment{
            4: {Kind: model.SlotActivity, Resource: "pool", Activity: "Swim"},
            5: {Kind: model.SlotContinuation, Resource: "pool"},
            6: {Kind: model.SlotActivity, Resource: "free", Activity: "Free Play"},
        }, 12),
    }

    b := NewBuilder(&fakeRemote{doc: doc}, testRegistry(t))
    editorB := model.Identity{UserID: 20, Role: model.RoleScheduler}

    m, err := b.Build(context.Background(), editorB, day)
    require.NoError(t, err)

    assert.Equal(t, 1, m.BySlotResource[4]["pool"].Count)
    assert.NotContains(t, m.BySlotResource, 5, "continuation is not a fresh claim")
    assert.NotContains(t, m.BySlotResource, 6, "placeholder activity never claims")
}

func TestCheckRangeNamesExactBlockedSlots(t *testing.T) {
    // Pool capacity 2.  Claims: slot 10 one bunk, slot 11 two bunks,
    // slot 12 one bunk.  A 3-slot placement over 10..12 must fail on
    // slot 11 alone.
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{
        "bunk-1": activityAt(map[int]model.SlotAssignment{
            10: {Kind: model.SlotActivity, Resource: "pool", Activity: "Swim"},
            11: {Kind: model.SlotActivity, Resource: "pool", Activity: "Swim"},
        }, 13),
        "bunk-2": activityAt(map[int]model.SlotAssignment{
            11: {Kind: model.SlotActivity, Resource: "pool", Activity: "Laps"},
            12: {Kind: model.SlotActivity, Resource: "pool", Activity: "Laps"},
        }, 13),
    }

    b := NewBuilder(&fakeRemote{doc: doc}, testRegistry(t))
    editorB := model.Identity{UserID: 20, Role: model.RoleScheduler}

    m, err := b.Build(context.Background(), editorB, day)
    require.NoError(t, err)

    res := m.CheckRange("pool", 10, 12)
    assert.False(t, res.Available)
    assert.Equal(t, []int{11}, res.BlockedSlots)

    res = m.CheckRange("pool", 12, 12)
    assert.True(t, res.Available)
    assert.Empty(t, res.BlockedSlots)
}

func TestBuildPropagatesFetchError(t *testing.T) {
    boom := errors.New("remote down")
    b := NewBuilder(&fakeRemote{err: boom}, testRegistry(t))
    _, err := b.Build(context.Background(), model.Identity{UserID: 20, Role: model.RoleScheduler}, day)
    assert.ErrorIs(t, err, boom)
}

func TestBuildEmptyDateYieldsOpenMap(t *testing.T) {
    b := NewBuilder(&fakeRemote{doc: model.NewDocument()}, testRegistry(t))
    m, err := b.Build(context.Background(), model.Identity{UserID: 20, Role: model.RoleScheduler}, day)
    require.NoError(t, err)
    assert.True(t, m.IsResourceAvailable("gym", 0))
    assert.True(t, m.CheckRange("pool", 0, 11).Available)
}
