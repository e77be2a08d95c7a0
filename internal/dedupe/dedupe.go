package dedupe

// Package dedupe provides the shared singleflight group used to
// deduplicate concurrent settlement requests. A centralized
// singleflight.Group ensures only one settlement computation runs for a
// given battle while duplicate callers wait for the same result.

import "golang.org/x/sync/singleflight"

// SettleGroup deduplicates settlement requests keyed by battle ID
// (e.g. "battle:42").
var SettleGroup singleflight.Group
