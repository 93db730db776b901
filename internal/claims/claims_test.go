package claims

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/odelyak/campboard/internal/model"
)

func divisionOfStub(bunk string) (string, bool) {
    switch bunk {
    case "bunk-a", "bunk-b":
        return "juniors", true
    case "bunk-c":
        return "seniors", true
    }
    return "", false
}

func TestBuildTableCountsOnlyClaimingSlots(t *testing.T) {
    rows := map[string][]model.SlotAssignment{
        "bunk-a": {
            {Kind: model.SlotActivity, Resource: "pool", Activity: "Swim"},
            {Kind: model.SlotContinuation, Resource: "pool"},
            model.FreeSlot(),
        },
        "bunk-b": {
            {Kind: model.SlotActivity, Resource: "pool", Activity: "Laps"},
            {Kind: model.SlotActivity, Activity: "Rest"},
            {Kind: model.SlotLocked, Resource: "gym", LockedBy: "subdiv-2"},
        },
    }

    table := BuildTable(rows, divisionOfStub)

    require.Equal(t, 2, table.Count(0, "pool"))
    assert.Zero(t, table.Count(1, "pool"), "continuations never claim")
    assert.Zero(t, table.Count(2, "gym"), "locked tags never claim")
    assert.Equal(t, []string{"juniors"}, table.Get(0, "pool").OwningDivisions)
}

func TestBuildTableKeepsUnresolvableBunks(t *testing.T) {
    rows := map[string][]model.SlotAssignment{
        "bunk-z": {{Kind: model.SlotActivity, Resource: "pool", Activity: "Swim"}},
    }
    table := BuildTable(rows, divisionOfStub)
    require.Equal(t, 1, table.Count(0, "pool"))
    assert.Empty(t, table.Get(0, "pool").OwningDivisions)
}

func lockedPartition(id, division, bunk, resource string, slot, count int) *model.PartitionSchedule {
    p := model.NewPartitionSchedule(id)
    p.Status = model.StatusLocked
    p.ResourceClaims = make(model.ClaimTable)
    for i := 0; i < count; i++ {
        p.ResourceClaims.Record(slot, resource, division, bunk, "Activity")
    }
    return p
}

func TestAggregateLockedSkipsOwnAndUnlocked(t *testing.T) {
    parts := map[string]*model.PartitionSchedule{
        "mine":   lockedPartition("mine", "juniors", "bunk-a", "pool", 5, 1),
        "theirs": lockedPartition("theirs", "seniors", "bunk-c", "pool", 5, 1),
        "draft":  model.NewPartitionSchedule("draft"),
    }
    parts["draft"].Status = model.StatusDraft

    agg := AggregateLocked(parts, func(id string) bool { return id == "mine" })

    require.Equal(t, 1, agg.Count(5, "pool"))
    assert.Equal(t, []string{"seniors"}, agg.Get(5, "pool").OwningDivisions)
}

func TestAggregateLockedSumsAcrossPartitions(t *testing.T) {
    parts := map[string]*model.PartitionSchedule{
        "s1": lockedPartition("s1", "juniors", "bunk-a", "pool", 3, 1),
        "s2": lockedPartition("s2", "seniors", "bunk-c", "pool", 3, 2),
    }

    agg := AggregateLocked(parts, func(string) bool { return false })

    info := agg.Get(3, "pool")
    assert.Equal(t, 3, info.Count)
    assert.Equal(t, []string{"juniors", "seniors"}, info.OwningDivisions)
}

func TestClaimedByOthersSaturatedSlotBlocksRange(t *testing.T) {
    agg := make(model.ClaimTable)
    agg.Record(10, "pool", "juniors", "bunk-a", "Swim")
    agg.Record(11, "pool", "juniors", "bunk-a", "Swim")
    agg.Record(11, "pool", "seniors", "bunk-c", "Laps")
    agg.Record(12, "pool", "seniors", "bunk-c", "Laps")

    report := ClaimedByOthers(agg, "pool", []int{10, 11, 12}, 2)
    require.True(t, report.Claimed)
    assert.Equal(t, 11, report.Slot, "first saturated slot reported")
    assert.Equal(t, 2, report.CurrentCount)
    assert.Equal(t, []string{"juniors", "seniors"}, report.ClaimedBy)

    report = ClaimedByOthers(agg, "pool", []int{10, 12}, 2)
    assert.False(t, report.Claimed, "no slot in range at capacity")
}

func TestRemainingUsesWorstSlot(t *testing.T) {
    agg := make(model.ClaimTable)
    agg.Record(10, "pool", "juniors", "bunk-a", "Swim")
    agg.Record(11, "pool", "juniors", "bunk-a", "Swim")
    agg.Record(11, "pool", "seniors", "bunk-c", "Laps")
    agg.Record(12, "pool", "seniors", "bunk-c", "Laps")

    assert.Equal(t, 0, Remaining(agg, "pool", []int{10, 11, 12}, 2))
    assert.Equal(t, 1, Remaining(agg, "pool", []int{10, 12}, 2))
    assert.Equal(t, 2, Remaining(agg, "pool", []int{20, 21}, 2), "untouched slots leave full capacity")
    assert.Equal(t, 0, Remaining(agg, "pool", []int{11}, 1), "never negative")
}

func TestFairShare(t *testing.T) {
    cases := []struct {
        name                             string
        capacity, remaining, competitors int
        want                             int
    }{
        {"single competitor gets full capacity", 4, 4, 1, 4},
        {"four across three floors to one", 4, 4, 3, 1},
        {"even split", 4, 4, 2, 2},
        {"minimum one unit", 2, 2, 5, 1},
        {"clamped to remaining", 4, 0, 2, 0},
        {"zero competitors treated as sole editor", 3, 3, 0, 3},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, FairShare(tc.capacity, tc.remaining, tc.competitors))
        })
    }
}

func TestSnapshotCoversCatalog(t *testing.T) {
    agg := make(model.ClaimTable)
    agg.Record(5, "pool", "seniors", "bunk-c", "Laps")

    capacityOf := func(resource string) int {
        if resource == "pool" {
            return 2
        }
        return 1
    }

    snap := Snapshot(agg, []string{"pool", "gym"}, []int{5, 6}, capacityOf, 3)

    require.Len(t, snap, 2)
    assert.Equal(t, Allocation{Remaining: 1, FairShare: 1, OthersWaiting: 2}, snap["pool"])
    assert.Equal(t, Allocation{Remaining: 1, FairShare: 1, OthersWaiting: 2}, snap["gym"])
}
