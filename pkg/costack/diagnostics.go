package costack

import(
	"math"

	"github.com/skypies/util/histogram"
)

// A running histogram of the weights exposures were added with,
// bucketed by log2(weight). Handy for spotting a run where one noisy
// exposure got drowned out, or one suspiciously clean exposure is
// dominating the coadd.
var(
	WeightHist = histogram.Histogram{NumBuckets:40, ValMin:0, ValMax:40}
)

func RecordWeight(weight float64) {
	if weight <= 0.0 {
		return
	}
	// log2(weight) in [-5,+5] maps onto the 40 buckets
	WeightHist.Add(histogram.ScalarVal(int(20.0 + 4.0*math.Log2(weight))))
}
