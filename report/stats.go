package report

import "github.com/chazu/jtj/bridge"

// Stats are the counters of one run.
type Stats struct {
	TotalTypes        int // every type name in the archive
	ConvertedTypes    int // types with at least one bridged method
	TotalMethods      int // every member seen on a loaded type
	CompatibleMethods int
}

// Add folds one extracted type into the counters. TotalTypes is counted
// separately since skipped types never produce a result.
func (s *Stats) Add(res bridge.TypeResult) {
	s.TotalMethods += res.Total
	s.CompatibleMethods += len(res.Accepted)
	if len(res.Accepted) > 0 {
		s.ConvertedTypes++
	}
}

// CompatiblePercent is the integer share of bridged methods.
func (s Stats) CompatiblePercent() int { return percent(s.CompatibleMethods, s.TotalMethods) }

// ConvertedPercent is the integer share of types with a bridge.
func (s Stats) ConvertedPercent() int { return percent(s.ConvertedTypes, s.TotalTypes) }

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return n * 100 / total
}
