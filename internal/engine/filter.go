package engine

// SanityCeiling is the EV percentage above which a result is treated as a
// data error rather than a real edge, typically mismatched line definitions
// between books. It guards data integrity, not betting policy, so it is a
// constant rather than configuration.
const SanityCeiling = 75.0

// FilterResults applies the sanity gate and the caller's minimum-EV
// threshold to every result, preserving computed order. Sorting is a
// presentation concern of the query API, not the engine.
func FilterResults(results []*EVResult, minEVPercent float64) []*EVResult {
	kept := make([]*EVResult, 0, len(results))
	for _, r := range results {
		if r.EVPercent > SanityCeiling {
			continue
		}
		if r.EVPercent < minEVPercent {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
