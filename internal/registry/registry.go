package registry

import (
	"sort"

	"decisionengine/internal/decision"
)

// Selection describes which direction a criterion optimizes.
type Selection string

const (
	SelectArgmax Selection = "argmax"
	SelectArgmin Selection = "argmin"
)

// Descriptor is the frozen metadata for one algorithm tag. Descriptors are
// value types; callers get a copy and cannot mutate the registry through it.
type Descriptor struct {
	Tag           decision.Algorithm
	Canonical     decision.Algorithm // equal to Tag unless Tag is an alias
	DisplayName   string
	Selection     Selection
	RequiresParam []string // AlgorithmParams fields this criterion reads
	SeedFree      bool
}

var byTag map[decision.Algorithm]Descriptor

func init() {
	descriptors := []Descriptor{
		{Tag: decision.AlgorithmMinimaxRegret, Canonical: decision.AlgorithmMinimaxRegret, DisplayName: "Minimax Regret", Selection: SelectArgmin, SeedFree: true},
		{Tag: decision.AlgorithmSavage, Canonical: decision.AlgorithmMinimaxRegret, DisplayName: "Savage", Selection: SelectArgmin, SeedFree: true},
		{Tag: decision.AlgorithmMaximin, Canonical: decision.AlgorithmMaximin, DisplayName: "Maximin", Selection: SelectArgmax, SeedFree: true},
		{Tag: decision.AlgorithmWald, Canonical: decision.AlgorithmMaximin, DisplayName: "Wald", Selection: SelectArgmax, SeedFree: true},
		{Tag: decision.AlgorithmWeightedSum, Canonical: decision.AlgorithmWeightedSum, DisplayName: "Weighted Sum", Selection: SelectArgmax, RequiresParam: []string{"weights"}, SeedFree: true},
		{Tag: decision.AlgorithmSoftmax, Canonical: decision.AlgorithmSoftmax, DisplayName: "Softmax", Selection: SelectArgmax, RequiresParam: []string{"weights", "temperature"}, SeedFree: true},
		{Tag: decision.AlgorithmHurwicz, Canonical: decision.AlgorithmHurwicz, DisplayName: "Hurwicz", Selection: SelectArgmax, RequiresParam: []string{"optimism"}, SeedFree: true},
		{Tag: decision.AlgorithmLaplace, Canonical: decision.AlgorithmLaplace, DisplayName: "Laplace", Selection: SelectArgmax, SeedFree: true},
		{Tag: decision.AlgorithmStarr, Canonical: decision.AlgorithmStarr, DisplayName: "Starr", Selection: SelectArgmin, RequiresParam: []string{"weights"}, SeedFree: true},
		{Tag: decision.AlgorithmHodgesLehmann, Canonical: decision.AlgorithmHodgesLehmann, DisplayName: "Hodges-Lehmann", Selection: SelectArgmax, RequiresParam: []string{"confidence"}, SeedFree: true},
		{Tag: decision.AlgorithmBrownRobinson, Canonical: decision.AlgorithmBrownRobinson, DisplayName: "Brown-Robinson", Selection: SelectArgmax, RequiresParam: []string{"iterations"}, SeedFree: true},
		{Tag: decision.AlgorithmNash, Canonical: decision.AlgorithmNash, DisplayName: "Nash Saddle Point", Selection: SelectArgmax, SeedFree: true},
		{Tag: decision.AlgorithmPareto, Canonical: decision.AlgorithmPareto, DisplayName: "Pareto Frontier", Selection: SelectArgmin, SeedFree: true},
	}

	byTag = make(map[decision.Algorithm]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byTag[d.Tag] = d
	}
}

// Lookup returns the descriptor for tag and whether it exists.
func Lookup(tag decision.Algorithm) (Descriptor, bool) {
	d, ok := byTag[tag]
	return d, ok
}

// Tags returns every registered tag, including aliases, in lexicographic
// order for stable iteration (help text, policy validation error messages).
func Tags() []decision.Algorithm {
	out := make([]decision.Algorithm, 0, len(byTag))
	for tag := range byTag {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
