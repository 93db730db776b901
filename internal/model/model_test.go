package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestSlotAssignmentClaimsResource(t *testing.T) {
    cases := []struct {
        name string
        slot SlotAssignment
        want bool
    }{
        {"activity with resource", SlotAssignment{Kind: SlotActivity, Resource: "pool", Activity: "Swim"}, true},
        {"activity without resource", SlotAssignment{Kind: SlotActivity, Activity: "Rest"}, false},
        {"free kind", SlotAssignment{Kind: SlotFree}, false},
        {"continuation never claims", SlotAssignment{Kind: SlotContinuation, Resource: "pool"}, false},
        {"locked tag never claims", SlotAssignment{Kind: SlotLocked, Resource: "pool"}, false},
        {"placeholder resource free", SlotAssignment{Kind: SlotActivity, Resource: "free", Activity: "Swim"}, false},
        {"placeholder resource none", SlotAssignment{Kind: SlotActivity, Resource: "None", Activity: "Swim"}, false},
        {"placeholder activity free play", SlotAssignment{Kind: SlotActivity, Resource: "pool", Activity: "Free Play"}, false},
        {"placeholder activity transition", SlotAssignment{Kind: SlotActivity, Resource: "pool", Activity: "transition"}, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, tc.slot.ClaimsResource())
        })
    }
}

func TestCloneAssignmentsIsIndependent(t *testing.T) {
    src := map[string][]SlotAssignment{
        "bunk-a": {
            {Kind: SlotActivity, Resource: "pool", Activity: "Swim"},
            FreeSlot(),
        },
    }
    cp := CloneAssignments(src)
    require.Len(t, cp["bunk-a"], 2)

    cp["bunk-a"][0].Resource = "gym"
    cp["bunk-a"] = append(cp["bunk-a"], FreeSlot())

    assert.Equal(t, "pool", src["bunk-a"][0].Resource)
    assert.Len(t, src["bunk-a"], 2)
}

func TestClaimTableRecordAndMerge(t *testing.T) {
    a := make(ClaimTable)
    a.Record(0, "pool", "juniors", "bunk-a", "Swim")
    a.Record(0, "pool", "juniors", "bunk-b", "Swim")
    a.Record(1, "gym", "juniors", "bunk-a", "Ball")

    require.Equal(t, 2, a.Count(0, "pool"))
    require.Equal(t, 1, a.Count(1, "gym"))
    assert.Zero(t, a.Count(5, "pool"))

    b := make(ClaimTable)
    b.Record(0, "pool", "seniors", "bunk-z", "Laps")

    a.MergeFrom(b)
    info := a.Get(0, "pool")
    assert.Equal(t, 3, info.Count)
    assert.Equal(t, []string{"juniors", "seniors"}, info.OwningDivisions)
    assert.Equal(t, "Laps", info.BunkDetail["bunk-z"])
}

func TestClaimTableCloneIsIndependent(t *testing.T) {
    orig := make(ClaimTable)
    orig.Record(2, "pool", "juniors", "bunk-a", "Swim")

    cp := orig.Clone()
    cp.Record(2, "pool", "seniors", "bunk-z", "Laps")

    assert.Equal(t, 1, orig.Count(2, "pool"))
    assert.Equal(t, 2, cp.Count(2, "pool"))
    assert.Equal(t, []string{"juniors"}, orig.Get(2, "pool").OwningDivisions)
}

func TestResourceRuleEffectiveCapacity(t *testing.T) {
    five := 5
    cases := []struct {
        name string
        rule ResourceRule
        want int
    }{
        {"explicit override wins", ResourceRule{Name: "pool", Shareable: false, MaxCapacity: &five}, 5},
        {"shareable default", ResourceRule{Name: "field", Shareable: true}, ShareableCapacity},
        {"exclusive default", ResourceRule{Name: "kiln"}, DefaultCapacity},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, tc.rule.EffectiveCapacity())
        })
    }
}

func TestNewPartitionScheduleStartsEmpty(t *testing.T) {
    p := NewPartitionSchedule("subdiv-1")
    assert.Equal(t, StatusEmpty, p.Status)
    assert.Nil(t, p.LockedBy)
    assert.Empty(t, p.ScheduleData)
}

func TestPartitionScheduleCloneIsDeep(t *testing.T) {
    uid := uint64(7)
    at := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
    p := &PartitionSchedule{
        SubdivisionID: "subdiv-1",
        Status:        StatusLocked,
        LockedBy:      &uid,
        LockedAt:      &at,
        ScheduleData: map[string][]SlotAssignment{
            "bunk-a": {{Kind: SlotActivity, Resource: "pool", Activity: "Swim"}},
        },
        ResourceClaims: make(ClaimTable),
    }
    p.ResourceClaims.Record(0, "pool", "juniors", "bunk-a", "Swim")

    cp := p.Clone()
    *cp.LockedBy = 99
    cp.ScheduleData["bunk-a"][0].Resource = "gym"
    cp.ResourceClaims.Record(0, "pool", "seniors", "bunk-z", "Laps")

    assert.Equal(t, uint64(7), *p.LockedBy)
    assert.Equal(t, "pool", p.ScheduleData["bunk-a"][0].Resource)
    assert.Equal(t, 1, p.ResourceClaims.Count(0, "pool"))
}

func TestDocumentCloneIsDeep(t *testing.T) {
    doc := NewDocument()
    day := doc.EnsureDay("2026-06-15")
    day.TimeGrid = &TimeGrid{SlotCount: 12, SlotMinutes: 45, DayStart: "09:00"}
    day.Assignments = map[string][]SlotAssignment{
        "bunk-a": {{Kind: SlotActivity, Resource: "pool", Activity: "Swim"}},
    }
    day.Partitions = map[string]*PartitionSchedule{
        "subdiv-1": NewPartitionSchedule("subdiv-1"),
    }

    cp := doc.Clone()
    cpDay := cp.Day("2026-06-15")
    require.NotNil(t, cpDay)

    cpDay.TimeGrid.SlotCount = 99
    cpDay.Assignments["bunk-a"][0].Activity = "Laps"
    cpDay.Partitions["subdiv-1"].Status = StatusDraft
    cp.EnsureDay("2026-06-16")

    assert.Equal(t, 12, day.TimeGrid.SlotCount)
    assert.Equal(t, "Swim", day.Assignments["bunk-a"][0].Activity)
    assert.Equal(t, StatusEmpty, day.Partitions["subdiv-1"].Status)
    assert.Nil(t, doc.Day("2026-06-16"))
}

func TestDocumentDayOnNil(t *testing.T) {
    var doc *Document
    assert.Nil(t, doc.Day("2026-06-15"))
    assert.Nil(t, doc.Clone())
}
