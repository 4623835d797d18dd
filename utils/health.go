package utils

import (
	"sync"
	"time"
)

// HealthStatus is the last-known state of the external syncs. Everything
// else the process needs lives in memory, so there is nothing to ping:
// health is whether the calendar and sheet data are fresh.
type HealthStatus struct {
	CalendarSynced   bool      `json:"calendarSynced"`
	RulesSynced      bool      `json:"rulesSynced"`
	LastCalendarSync time.Time `json:"lastCalendarSync"`
	LastRulesSync    time.Time `json:"lastRulesSync"`
	TimeslotCount    int       `json:"timeslotCount"`
	RuleCount        int       `json:"ruleCount"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// RecordCalendarSync stores the outcome of a calendar sync run.
func RecordCalendarSync(ok bool, timeslots int) {
	healthMu.Lock()
	defer healthMu.Unlock()
	currentHealth.CalendarSynced = ok
	currentHealth.LastCalendarSync = time.Now()
	currentHealth.TimeslotCount = timeslots
}

// RecordRulesSync stores the outcome of a rules sync run.
func RecordRulesSync(ok bool, rules int) {
	healthMu.Lock()
	defer healthMu.Unlock()
	currentHealth.RulesSynced = ok
	currentHealth.LastRulesSync = time.Now()
	currentHealth.RuleCount = rules
}
