package utils

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
)

type Pair[F any, S any] struct {
	First  F
	Second S
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

// An imprecise float approximate comparison. "optional" variance with ... args strategy
func FloatEquals(a float64, b float64, inputVariance ...float64) bool {
	variance := 0.001
	if len(inputVariance) >= 1 {
		variance = inputVariance[0]
	}
	return math.Abs(a-b) < variance
}

func MaxSlice[T constraints.Ordered](slice []T) T {
	max := slice[0]
	for i := range slice {
		max = Max(max, slice[i])
	}
	return max
}

func MinSlice[T constraints.Ordered](slice []T) T {
	min := slice[0]
	for i := range slice {
		min = Min(min, slice[i])
	}
	return min
}

func Sum[T constraints.Integer | constraints.Float](slice []T) (sum T) {
	for i := range slice {
		sum += slice[i]
	}
	return sum
}

func Median[T constraints.Integer | constraints.Float](n []T) T {
	return Percentile(n, 50)
}

func Percentile[T constraints.Integer | constraints.Float](n []T, percentile int) T {
	if len(n) == 0 {
		log.Warn().Msg("WARNING: Percentile called on empty slice")
		return 0
	}
	if len(n) == 1 {
		return n[0]
	}

	copyN := make([]T, len(n))
	copy(copyN, n)
	sort.Slice(copyN, func(i, j int) bool { return copyN[i] < copyN[j] })

	idx := int((float64(percentile) / 100.0) * float64(len(copyN)))
	if len(copyN)%2 == 0 || idx == 0 { // even number of elements, or targeting the first element
		return copyN[idx]
	} else if copyN[idx-1] == copyN[idx] {
		return copyN[idx]
	}
	return (copyN[idx-1] + copyN[idx]) / 2
}

func Shuffle[T any](slice []T) {
	for i := range slice {
		j := rand.Intn(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}
