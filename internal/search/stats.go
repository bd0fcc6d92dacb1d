package search

import (
	"fmt"
	"time"
)

type Stats struct {
	Nodes    int64
	Leaves   int64
	TTProbes int64
	TTHits   int64
	TTStores int64
	Cutoffs  int64
	Start    time.Time
	Elapsed  time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d leaves=%d tt_probes=%d tt_hits=%d tt_stores=%d cutoffs=%d elapsed=%s",
		s.Nodes, s.Leaves, s.TTProbes, s.TTHits, s.TTStores, s.Cutoffs, s.Elapsed.Round(time.Microsecond))
}
