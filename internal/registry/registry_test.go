package registry

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/odelyak/campboard/internal/model"
)

func testDivisions() []model.Division {
    return []model.Division{
        {Name: "juniors", Bunks: []string{"bunk-a", "bunk-b"}, StartTime: "09:00", EndTime: "16:00"},
        {Name: "seniors", Bunks: []string{"bunk-c"}, StartTime: "09:00", EndTime: "17:00"},
        {Name: "inters", Bunks: []string{"bunk-d"}, StartTime: "09:00", EndTime: "16:30"},
    }
}

func testSubdivisions() []model.Subdivision {
    return []model.Subdivision{
        {ID: "subdiv-1", Name: "Lower Camp", Divisions: []string{"juniors"}, EditorID: 10},
        {ID: "subdiv-2", Name: "Upper Camp", Divisions: []string{"seniors", "inters"}, EditorID: 20},
    }
}

func testRules() []model.ResourceRule {
    two := 2
    return []model.ResourceRule{
        {Name: "pool", Shareable: false, MaxCapacity: &two},
        {Name: "field", Shareable: true},
        {Name: "kiln"},
    }
}

func mustRegistry(t *testing.T) *Registry {
    t.Helper()
    r, err := New(testDivisions(), testSubdivisions(), testRules())
    require.NoError(t, err)
    return r
}

func TestNewRejectsDivisionOverlap(t *testing.T) {
    subs := testSubdivisions()
    subs[1].Divisions = append(subs[1].Divisions, "juniors")
    _, err := New(testDivisions(), subs, nil)
    require.Error(t, err)
    assert.ErrorIs(t, err, ErrDivisionOverlap)
}

func TestNewRejectsUnknownDivision(t *testing.T) {
    subs := testSubdivisions()
    subs[0].Divisions = []string{"ghosts"}
    _, err := New(testDivisions(), subs, nil)
    require.Error(t, err)
    assert.ErrorIs(t, err, ErrUnknownDivision)
}

func TestNewRejectsDuplicateBunk(t *testing.T) {
    divs := testDivisions()
    divs[2].Bunks = []string{"bunk-a"}
    _, err := New(divs, testSubdivisions(), nil)
    require.Error(t, err)
    assert.ErrorIs(t, err, ErrDuplicateBunk)
}

func TestOwnershipQueries(t *testing.T) {
    r := mustRegistry(t)

    owner, ok := r.DivisionOwner("seniors")
    require.True(t, ok)
    assert.Equal(t, "subdiv-2", owner.ID)

    _, ok = r.DivisionOwner("ghosts")
    assert.False(t, ok)

    div, ok := r.DivisionOfBunk("bunk-c")
    require.True(t, ok)
    assert.Equal(t, "seniors", div)

    _, ok = r.DivisionOfBunk("bunk-z")
    assert.False(t, ok)
}

func TestSubdivisionsOwnedBy(t *testing.T) {
    r := mustRegistry(t)

    admin := model.Identity{UserID: 1, Role: model.RoleAdmin}
    assert.Len(t, r.SubdivisionsOwnedBy(admin), 2)

    editor := model.Identity{UserID: 20, Role: model.RoleScheduler}
    owned := r.SubdivisionsOwnedBy(editor)
    require.Len(t, owned, 1)
    assert.Equal(t, "subdiv-2", owned[0].ID)

    stranger := model.Identity{UserID: 99, Role: model.RoleScheduler}
    assert.Empty(t, r.SubdivisionsOwnedBy(stranger))
}

func TestCanEdit(t *testing.T) {
    r := mustRegistry(t)

    admin := model.Identity{UserID: 1, Role: model.RoleAdmin}
    editor := model.Identity{UserID: 10, Role: model.RoleScheduler}

    assert.True(t, r.CanEdit(admin, "subdiv-1"))
    assert.True(t, r.CanEdit(admin, "subdiv-2"))
    assert.False(t, r.CanEdit(admin, "subdiv-9"))

    assert.True(t, r.CanEdit(editor, "subdiv-1"))
    assert.False(t, r.CanEdit(editor, "subdiv-2"))

    assert.True(t, r.CanEditDivision(editor, "juniors"))
    assert.False(t, r.CanEditDivision(editor, "seniors"))
    assert.False(t, r.CanEditDivision(editor, "ghosts"))
}

func TestEditableDivisionsAndBunks(t *testing.T) {
    r := mustRegistry(t)

    editor := model.Identity{UserID: 20, Role: model.RoleScheduler}
    assert.Equal(t, []string{"seniors", "inters"}, r.EditableDivisions(editor))

    bunks := r.EditableBunks(editor)
    assert.Len(t, bunks, 2)
    _, ok := bunks["bunk-c"]
    assert.True(t, ok)
    _, ok = bunks["bunk-a"]
    assert.False(t, ok)

    admin := model.Identity{UserID: 1, Role: model.RoleAdmin}
    assert.Len(t, r.EditableBunks(admin), 4)
}

func TestMaxCapacity(t *testing.T) {
    r := mustRegistry(t)

    assert.Equal(t, 2, r.MaxCapacity("pool"), "explicit override")
    assert.Equal(t, model.ShareableCapacity, r.MaxCapacity("field"))
    assert.Equal(t, model.DefaultCapacity, r.MaxCapacity("kiln"))
    assert.Equal(t, model.DefaultCapacity, r.MaxCapacity("unlisted"), "unknown resources default to exclusive")
}

func TestResourcesOrder(t *testing.T) {
    r := mustRegistry(t)
    assert.Equal(t, []string{"pool", "field", "kiln"}, r.Resources())
}

type stubCatalog struct {
    divisions    []model.Division
    subdivisions []model.Subdivision
    rules        []model.ResourceRule
    err          error
}

func (s *stubCatalog) ListDivisions(context.Context) ([]model.Division, error) {
    return s.divisions, s.err
}

func (s *stubCatalog) ListSubdivisions(context.Context) ([]model.Subdivision, error) {
    return s.subdivisions, s.err
}

func (s *stubCatalog) ListResourceRules(context.Context) ([]model.ResourceRule, error) {
    return s.rules, s.err
}

func TestLoadBuildsRegistry(t *testing.T) {
    cat := &stubCatalog{divisions: testDivisions(), subdivisions: testSubdivisions(), rules: testRules()}
    r, err := Load(context.Background(), cat)
    require.NoError(t, err)
    assert.Len(t, r.AllSubdivisions(), 2)
}

func TestLoadPropagatesCatalogError(t *testing.T) {
    boom := errors.New("mysql down")
    _, err := Load(context.Background(), &stubCatalog{err: boom})
    require.Error(t, err)
    assert.ErrorIs(t, err, boom)
}
