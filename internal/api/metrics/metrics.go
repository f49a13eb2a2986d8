// Package metrics defines and registers all custom Prometheus metrics for the
// emuhub catalog and save-state service. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are exposed through the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "emuhub"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogScansTotal counts directory scans.
// Label:
//   - system: the platform id scanned, or "all" for a full catalog scan
var CatalogScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_scans_total",
		Help:      "Total number of ROM directory scans performed.",
	},
	[]string{"system"},
)

// CatalogScanDuration measures how long one scan takes.
// Label:
//   - system: the platform id scanned, or "all" for a full catalog scan
var CatalogScanDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_scan_duration_seconds",
		Help:      "Duration of ROM directory scans.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"system"},
)

// GamesIndexed tracks the number of games the last scan found per system.
// Kept current by the library watcher.
var GamesIndexed = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "games_indexed",
		Help:      "Number of games found by the most recent scan, per system.",
	},
	[]string{"system"},
)

// ── Save-state metrics ────────────────────────────────────────────────────────

// SaveWritesTotal counts persisted save states.
// Label:
//   - kind: "state" for the quick save, "slot" for a numbered slot
var SaveWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "save_writes_total",
		Help:      "Total number of save states written.",
	},
	[]string{"kind"},
)

// SlotProbesTotal counts individual slot file probes during slot listing.
// Label:
//   - result: "occupied", "empty", or "corrupt"
var SlotProbesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_probes_total",
		Help:      "Total number of save-slot probes, labelled by outcome.",
	},
	[]string{"result"},
)
