package rankings

import (
	"github.com/montanaflynn/stats"
)

// Transform maps a raw metric value onto a normalized scale
type Transform func(float64) float64

// ZScore returns (v-mean)/stddev over the given population, using the
// population standard deviation. A flat population standardizes to 0; an
// empty one yields a transform that always returns 0.
func ZScore(values []float64) Transform {
	if len(values) == 0 {
		return func(float64) float64 { return 0 }
	}

	data := stats.Float64Data(values)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if min == max {
		// mean is exactly the common value; stddev 0 is treated as 1
		return func(v float64) float64 { return v - min }
	}

	mean, _ := stats.Mean(data)
	sd, _ := stats.StandardDeviationPopulation(data)
	if sd == 0 {
		sd = 1
	}
	return func(v float64) float64 { return (v - mean) / sd }
}

// MinMax returns (v-min)/(max-min) over the given population, or a constant
// 0.5 when the population is empty or flat.
func MinMax(values []float64) Transform {
	if len(values) == 0 {
		return func(float64) float64 { return 0.5 }
	}

	data := stats.Float64Data(values)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if max == min {
		return func(float64) float64 { return 0.5 }
	}

	span := max - min
	return func(v float64) float64 { return (v - min) / span }
}
