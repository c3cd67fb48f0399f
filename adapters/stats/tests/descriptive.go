package tests

import (
	"github.com/montanaflynn/stats"

	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// Describe summarizes one group's drawn values for the outcome report.
// montanaflynn/stats returns errors only for empty input; an empty group
// yields a zero-valued summary.
func Describe(values []float64) sampling.DescriptiveStats {
	if len(values) == 0 {
		return sampling.DescriptiveStats{}
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviationSample(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	return sampling.DescriptiveStats{
		N:      len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}
