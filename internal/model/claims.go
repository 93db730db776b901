package model

import "sort"

// ClaimInfo records how much of one resource's capacity a set of bunks
// has consumed in one slot.
//
// Fields:
//  Count           – number of capacity units consumed.
//  OwningDivisions – sorted unique division names that hold the claims.
//  BunkDetail      – claiming bunk → activity label, for conflict display.
type ClaimInfo struct {
    Count           int               `json:"count"`
    OwningDivisions []string          `json:"owning_divisions,omitempty"`
    BunkDetail      map[string]string `json:"bunk_detail,omitempty"`
}

// clone returns an independent copy of the claim info.
func (ci ClaimInfo) clone() ClaimInfo {
    out := ClaimInfo{Count: ci.Count}
    if ci.OwningDivisions != nil {
        out.OwningDivisions = append([]string(nil), ci.OwningDivisions...)
    }
    if ci.BunkDetail != nil {
        out.BunkDetail = make(map[string]string, len(ci.BunkDetail))
        for k, v := range ci.BunkDetail {
            out.BunkDetail[k] = v
        }
    }
    return out
}

// merge folds another claim into this one: counts add, divisions and bunk
// detail union.  Division order stays sorted for stable JSON output.
func (ci ClaimInfo) merge(other ClaimInfo) ClaimInfo {
    out := ci.clone()
    out.Count += other.Count
    for _, d := range other.OwningDivisions {
        if !containsString(out.OwningDivisions, d) {
            out.OwningDivisions = append(out.OwningDivisions, d)
        }
    }
    sort.Strings(out.OwningDivisions)
    if len(other.BunkDetail) > 0 && out.BunkDetail == nil {
        out.BunkDetail = make(map[string]string, len(other.BunkDetail))
    }
    for b, a := range other.BunkDetail {
        out.BunkDetail[b] = a
    }
    return out
}

// ClaimTable maps slot index → resource name → accumulated claim.  It is
// the shared shape for a partition's frozen resource claims and for the
// live usage view assembled from them.
type ClaimTable map[int]map[string]ClaimInfo

// Record adds one capacity unit claimed by bunk (of division) for
// resource at slot.
func (t ClaimTable) Record(slot int, resource, division, bunk, activity string) {
    byResource, ok := t[slot]
    if !ok {
        byResource = make(map[string]ClaimInfo)
        t[slot] = byResource
    }
    ci := byResource[resource]
    ci.Count++
    if division != "" && !containsString(ci.OwningDivisions, division) {
        ci.OwningDivisions = append(ci.OwningDivisions, division)
        sort.Strings(ci.OwningDivisions)
    }
    if bunk != "" {
        if ci.BunkDetail == nil {
            ci.BunkDetail = make(map[string]string)
        }
        ci.BunkDetail[bunk] = activity
    }
    byResource[resource] = ci
}

// Get returns the claim for (slot, resource); the zero ClaimInfo when
// nothing is recorded.
func (t ClaimTable) Get(slot int, resource string) ClaimInfo {
    if byResource, ok := t[slot]; ok {
        return byResource[resource]
    }
    return ClaimInfo{}
}

// Count returns the claimed unit count for (slot, resource).
func (t ClaimTable) Count(slot int, resource string) int {
    return t.Get(slot, resource).Count
}

// MergeFrom folds every claim of other into this table.  Counts are
// additive and division sets union, matching how a second editor's view
// absorbs already-locked work.
func (t ClaimTable) MergeFrom(other ClaimTable) {
    for slot, byResource := range other {
        for resource, ci := range byResource {
            dst, ok := t[slot]
            if !ok {
                dst = make(map[string]ClaimInfo)
                t[slot] = dst
            }
            dst[resource] = dst[resource].merge(ci)
        }
    }
}

// Clone deep-copies the table so frozen snapshots stay independent of the
// live schedule they were taken from.
func (t ClaimTable) Clone() ClaimTable {
    if t == nil {
        return nil
    }
    out := make(ClaimTable, len(t))
    for slot, byResource := range t {
        dst := make(map[string]ClaimInfo, len(byResource))
        for resource, ci := range byResource {
            dst[resource] = ci.clone()
        }
        out[slot] = dst
    }
    return out
}

func containsString(list []string, s string) bool {
    for _, v := range list {
        if v == s {
            return true
        }
    }
    return false
}
