package config

import (
    "time"

    "github.com/odelyak/campboard/internal/model"
)

// ScheduleConfig defines settings for the scheduling core: which
// organization's document to edit, how long the sync debounce stays
// quiet before writing, how long idle sessions survive, how long session
// initialization may take, and the default day grid applied to dates
// that have never been scheduled.
type ScheduleConfig struct {
    OrgID          string
    SyncQuiet      time.Duration
    SessionIdleTTL time.Duration
    InitTimeout    time.Duration
    SlotCount      int
    SlotMinutes    int
    DayStart       string
}

// LoadScheduleConfig reads environment variables to build a
// ScheduleConfig.  Defaults are used when variables are not set, and
// nonsensical values are clamped rather than rejected so a typo in one
// tunable never takes the service down.
func LoadScheduleConfig() ScheduleConfig {
    cfg := ScheduleConfig{
        OrgID:          envStr("ORG_ID", "default"),
        SyncQuiet:      envDur("SYNC_QUIET", 500*time.Millisecond),
        SessionIdleTTL: envDur("SESSION_IDLE_TTL", 30*time.Minute),
        InitTimeout:    envDur("SESSION_INIT_TIMEOUT", 10*time.Second),
        SlotCount:      envInt("SCHEDULE_SLOT_COUNT", 12),
        SlotMinutes:    envInt("SCHEDULE_SLOT_MINUTES", 45),
        DayStart:       envStr("SCHEDULE_DAY_START", "09:00"),
    }
    if cfg.SyncQuiet <= 0 {
        cfg.SyncQuiet = 500 * time.Millisecond
    }
    if cfg.SessionIdleTTL <= 0 {
        cfg.SessionIdleTTL = 30 * time.Minute
    }
    if cfg.InitTimeout <= 0 {
        cfg.InitTimeout = 10 * time.Second
    }
    if cfg.SlotCount < 1 {
        cfg.SlotCount = 12
    }
    if cfg.SlotMinutes < 1 {
        cfg.SlotMinutes = 45
    }
    return cfg
}

// Grid returns the default day grid described by the config.
func (c ScheduleConfig) Grid() model.TimeGrid {
    return model.TimeGrid{
        SlotCount:   c.SlotCount,
        SlotMinutes: c.SlotMinutes,
        DayStart:    c.DayStart,
    }
}
