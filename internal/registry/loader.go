package registry

import (
    "context"
    "fmt"

    "github.com/odelyak/campboard/internal/model"
)

// Catalog supplies the rows the registry is built from.  The production
// implementation reads the MySQL catalog tables; tests provide fixtures
// directly.
type Catalog interface {
    ListDivisions(ctx context.Context) ([]model.Division, error)
    ListSubdivisions(ctx context.Context) ([]model.Subdivision, error)
    ListResourceRules(ctx context.Context) ([]model.ResourceRule, error)
}

// Load reads the full catalog and builds the registry.  It runs once at
// startup under a bounded context; failure aborts startup, since every
// scheduling operation depends on ownership data and running without it
// would silently treat the whole camp as unowned.
func Load(ctx context.Context, cat Catalog) (*Registry, error) {
    divisions, err := cat.ListDivisions(ctx)
    if err != nil {
        return nil, fmt.Errorf("load divisions: %w", err)
    }
    subdivisions, err := cat.ListSubdivisions(ctx)
    if err != nil {
        return nil, fmt.Errorf("load subdivisions: %w", err)
    }
    rules, err := cat.ListResourceRules(ctx)
    if err != nil {
        return nil, fmt.Errorf("load resource rules: %w", err)
    }
    return New(divisions, subdivisions, rules)
}
