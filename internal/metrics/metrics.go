// Package metrics holds the Prometheus instruments for the wish pool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AttendanceRecorded counts income check-ins that created a ledger row.
// Duplicate submissions for an already-recorded day are not counted.
var AttendanceRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wishflow_attendance_recorded_total",
	Help: "Income attendance events recorded.",
})

// CheckinsRecorded counts habit check-ins that created a ledger row.
var CheckinsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wishflow_habit_checkins_recorded_total",
	Help: "Habit check-ins recorded.",
})

// WishesUnlocked counts wishes transitioned to unlocked by the greedy engine.
var WishesUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wishflow_wishes_unlocked_total",
	Help: "Wishes unlocked by the greedy allocation engine.",
})

// WishesCompleted counts wishes marked completed by users.
var WishesCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wishflow_wishes_completed_total",
	Help: "Wishes marked completed.",
})
