package merge

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/odelyak/campboard/internal/model"
)

const day = "2026-06-15"

func row(activity string) []model.SlotAssignment {
    return []model.SlotAssignment{{Kind: model.SlotActivity, Resource: "pool", Activity: activity}}
}

func docWithRows(rows map[string][]model.SlotAssignment) *model.Document {
    doc := model.NewDocument()
    doc.EnsureDay(day).Assignments = rows
    return doc
}

func TestAdminMergeReturnsLocalWhole(t *testing.T) {
    local := docWithRows(map[string][]model.SlotAssignment{})
    for i := 0; i < 10; i++ {
        local.Day(day).Assignments[string(rune('a'+i))] = row("Local")
    }
    remote := docWithRows(map[string][]model.SlotAssignment{
        "a": row("Remote"), "b": row("Remote"),
    })

    admin := model.Identity{UserID: 1, Role: model.RoleAdmin}
    out := Merge(local, remote, admin, nil)

    require.Len(t, out.Day(day).Assignments, 10)
    assert.Equal(t, "Local", out.Day(day).Assignments["a"][0].Activity)

    out.Day(day).Assignments["a"][0].Activity = "changed"
    assert.Equal(t, "Local", local.Day(day).Assignments["a"][0].Activity, "merge output is a copy")
}

func TestSchedulerMergeProtectsOtherEditorsBunks(t *testing.T) {
    // Editor owns bunk-1 and bunk-2.  Local has a stale cached copy of
    // bunk-3, which belongs to another editor and changed upstream.
    local := docWithRows(map[string][]model.SlotAssignment{
        "bunk-1": row("New"),
        "bunk-2": row("New"),
        "bunk-3": row("StaleCachedCopy"),
    })
    remote := docWithRows(map[string][]model.SlotAssignment{
        "bunk-1": row("Old"),
        "bunk-3": row("OtherOwner"),
        "bunk-4": row("OtherOwner"),
    })

    editor := model.Identity{UserID: 10, Role: model.RoleScheduler}
    mine := map[string]struct{}{"bunk-1": {}, "bunk-2": {}}

    out := Merge(local, remote, editor, mine)

    got := out.Day(day).Assignments
    require.Len(t, got, 4)
    assert.Equal(t, "New", got["bunk-1"][0].Activity, "owned bunk takes local value")
    assert.Equal(t, "New", got["bunk-2"][0].Activity, "owned bunk absent remotely is added")
    assert.Equal(t, "OtherOwner", got["bunk-3"][0].Activity, "stale local copy discarded")
    assert.Equal(t, "OtherOwner", got["bunk-4"][0].Activity, "untouched remote bunk preserved")
}

func TestSchedulerMergeCopiesDateLevelKeysWholesale(t *testing.T) {
    local := model.NewDocument()
    localDay := local.EnsureDay(day)
    localDay.TimeGrid = &model.TimeGrid{SlotCount: 12, SlotMinutes: 45, DayStart: "09:00"}
    locked := model.NewPartitionSchedule("subdiv-2")
    locked.Status = model.StatusLocked
    localDay.Partitions = map[string]*model.PartitionSchedule{"subdiv-2": locked}

    remote := model.NewDocument()
    remoteDay := remote.EnsureDay(day)
    remoteDay.TimeGrid = &model.TimeGrid{SlotCount: 10, SlotMinutes: 30, DayStart: "08:00"}
    remoteDay.Partitions = map[string]*model.PartitionSchedule{
        "subdiv-2": model.NewPartitionSchedule("subdiv-2"),
        "subdiv-3": model.NewPartitionSchedule("subdiv-3"),
    }
    remoteDay.Assignments = map[string][]model.SlotAssignment{"bunk-9": row("Other")}

    editor := model.Identity{UserID: 10, Role: model.RoleScheduler}
    out := Merge(local, remote, editor, map[string]struct{}{})

    outDay := out.Day(day)
    require.NotNil(t, outDay)
    assert.Equal(t, 12, outDay.TimeGrid.SlotCount, "local grid replaces remote")
    assert.Equal(t, model.StatusLocked, outDay.Partitions["subdiv-2"].Status,
        "partition table replaced wholesale from local")
    assert.NotContains(t, outDay.Partitions, "subdiv-3",
        "remote-only partition dropped by the wholesale copy")
    assert.Equal(t, "Other", outDay.Assignments["bunk-9"][0].Activity,
        "bunk rows still follow the ownership rule")
}

func TestSchedulerMergeKeepsRemoteOnlyDates(t *testing.T) {
    local := model.NewDocument()
    local.EnsureDay(day).Assignments = map[string][]model.SlotAssignment{"bunk-1": row("New")}

    remote := model.NewDocument()
    remote.EnsureDay("2026-06-16").Assignments = map[string][]model.SlotAssignment{"bunk-7": row("Other")}

    editor := model.Identity{UserID: 10, Role: model.RoleScheduler}
    out := Merge(local, remote, editor, map[string]struct{}{"bunk-1": {}})

    require.NotNil(t, out.Day("2026-06-16"))
    assert.Equal(t, "Other", out.Day("2026-06-16").Assignments["bunk-7"][0].Activity)
    require.NotNil(t, out.Day(day))
    assert.Equal(t, "New", out.Day(day).Assignments["bunk-1"][0].Activity)
}

func TestSchedulerMergeWithoutLocalGridKeepsRemoteGrid(t *testing.T) {
    local := model.NewDocument()
    local.EnsureDay(day)

    remote := model.NewDocument()
    remote.EnsureDay(day).TimeGrid = &model.TimeGrid{SlotCount: 10, SlotMinutes: 30, DayStart: "08:00"}

    editor := model.Identity{UserID: 10, Role: model.RoleScheduler}
    out := Merge(local, remote, editor, nil)

    require.NotNil(t, out.Day(day).TimeGrid)
    assert.Equal(t, 10, out.Day(day).TimeGrid.SlotCount)
}
