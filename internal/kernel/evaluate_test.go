package kernel

import (
	"reflect"
	"testing"

	"decisionengine/internal/decision"
)

func mustEvaluate(t *testing.T, spec decision.DecisionSpec, params decision.AlgorithmParams) decision.DecisionResult {
	t.Helper()
	res, err := Evaluate(spec, params, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return res
}

func TestMinimaxRegretScenario(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmMinimaxRegret,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.RecommendedAction != "a2" {
		t.Fatalf("recommended = %q, want a2", res.RecommendedAction)
	}
	if !reflect.DeepEqual(res.Ranking, []string{"a2", "a1"}) {
		t.Fatalf("ranking = %v, want [a2 a1]", res.Ranking)
	}
}

func TestMaximinScenario(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 0}, "a2": {"s1": 5, "s2": 5}},
		Algorithm: decision.AlgorithmMaximin,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.RecommendedAction != "a2" {
		t.Fatalf("recommended = %q, want a2", res.RecommendedAction)
	}
	if !reflect.DeepEqual(res.Ranking, []string{"a2", "a1"}) {
		t.Fatalf("ranking = %v, want [a2 a1]", res.Ranking)
	}
}

func TestMinimaxRegretTieBreak(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"b", "a"},
		States:    []string{"s1"},
		Outcomes:  map[string]map[string]float64{"a": {"s1": 10}, "b": {"s1": 10}},
		Algorithm: decision.AlgorithmMinimaxRegret,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.RecommendedAction != "a" {
		t.Fatalf("recommended = %q, want a", res.RecommendedAction)
	}
	if !reflect.DeepEqual(res.Ranking, []string{"a", "b"}) {
		t.Fatalf("ranking = %v, want [a b]", res.Ranking)
	}
}

func TestWeightedSumTieBreak(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmWeightedSum,
	}
	params := decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.6, "s2": 0.4}}
	res := mustEvaluate(t, spec, params)
	if res.RecommendedAction != "a1" {
		t.Fatalf("recommended = %q, want a1", res.RecommendedAction)
	}
	if !reflect.DeepEqual(res.Ranking, []string{"a1", "a2"}) {
		t.Fatalf("ranking = %v, want [a1 a2]", res.Ranking)
	}
	if absDiff(res.Trace.Scores["a1"], 8) > tolerance || absDiff(res.Trace.Scores["a2"], 8) > tolerance {
		t.Fatalf("scores = %v, want both 8", res.Trace.Scores)
	}
}

func TestParetoScenario(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions: []string{"a", "b", "c"},
		States:  []string{"s1", "s2"},
		Outcomes: map[string]map[string]float64{
			"a": {"s1": 1, "s2": 2},
			"b": {"s1": 2, "s2": 3},
			"c": {"s1": 0, "s2": 3},
		},
		Algorithm: decision.AlgorithmPareto,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.RecommendedAction != "b" {
		t.Fatalf("recommended = %q, want b", res.RecommendedAction)
	}
	if !reflect.DeepEqual(res.Ranking, []string{"b", "c", "a"}) {
		t.Fatalf("ranking = %v, want [b c a]", res.Ranking)
	}
}

func TestReplayScenarioProducesByteEqualFingerprint(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmWeightedSum,
	}
	params := decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.6, "s2": 0.4}}

	first := mustEvaluate(t, spec, params)
	second := mustEvaluate(t, spec, params)
	if first.Trace.Fingerprint != second.Trace.Fingerprint {
		t.Fatalf("fingerprint not stable across repeated evaluation: %q vs %q", first.Trace.Fingerprint, second.Trace.Fingerprint)
	}
}

func TestRankingIsAlwaysAPermutation(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"x", "y", "z"},
		States:    []string{"s1", "s2", "s3"},
		Algorithm: decision.AlgorithmLaplace,
		Outcomes: map[string]map[string]float64{
			"x": {"s1": 1, "s2": 2, "s3": 3},
			"y": {"s1": 3, "s2": 2, "s3": 1},
			"z": {"s1": 2, "s2": 2, "s3": 2},
		},
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.Ranking[0] != res.RecommendedAction {
		t.Fatalf("ranking[0] = %q, recommended = %q", res.Ranking[0], res.RecommendedAction)
	}
	seen := map[string]bool{}
	for _, a := range res.Ranking {
		seen[a] = true
	}
	for _, a := range spec.Actions {
		if !seen[a] {
			t.Fatalf("ranking missing action %q", a)
		}
	}
	if len(res.Ranking) != len(spec.Actions) {
		t.Fatalf("ranking length = %d, want %d", len(res.Ranking), len(spec.Actions))
	}
}

func TestWeightNormalizationInvarianceNonStrict(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmWeightedSum,
	}
	base := mustEvaluate(t, spec, decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.6, "s2": 0.4}})
	scaled := mustEvaluate(t, spec, decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.06, "s2": 0.04}})
	if base.RecommendedAction != scaled.RecommendedAction {
		t.Fatalf("scaling weights changed recommendation: %q vs %q", base.RecommendedAction, scaled.RecommendedAction)
	}
}

func TestStrictModeRejectsUnnormalizedWeights(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmWeightedSum,
		Strict:    true,
	}
	_, err := Evaluate(spec, decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.6, "s2": 0.6}}, nil)
	if err == nil {
		t.Fatal("expected error for weights not summing to 1 in strict mode")
	}
}

func TestStrictModeRequiresOutcome(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0}},
		Algorithm: decision.AlgorithmMaximin,
		Strict:    true,
	}
	_, err := Evaluate(spec, decision.AlgorithmParams{}, nil)
	if err == nil {
		t.Fatal("expected MissingOutcome error in strict mode")
	}
}

func TestNonStrictModeDefaultsMissingOutcomeToZero(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0}},
		Algorithm: decision.AlgorithmMaximin,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.Trace.Scores["a2"] != 0 {
		t.Fatalf("expected missing outcome to default to 0, got score %v", res.Trace.Scores["a2"])
	}
}

func TestBrownRobinsonRequiresIterations(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmBrownRobinson,
	}
	_, err := Evaluate(spec, decision.AlgorithmParams{}, nil)
	if err == nil {
		t.Fatal("expected error for missing iterations")
	}
}

func TestBrownRobinsonIsDeterministic(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmBrownRobinson,
	}
	params := decision.AlgorithmParams{Iterations: 50}
	first := mustEvaluate(t, spec, params)
	second := mustEvaluate(t, spec, params)
	if !reflect.DeepEqual(first.Ranking, second.Ranking) {
		t.Fatalf("brown_robinson not deterministic: %v vs %v", first.Ranking, second.Ranking)
	}
}

func TestSavageIsAliasOfMinimaxRegret(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmSavage,
	}
	res := mustEvaluate(t, spec, decision.AlgorithmParams{})
	if res.RecommendedAction != "a2" {
		t.Fatalf("recommended = %q, want a2", res.RecommendedAction)
	}
	if res.Trace.Algorithm != decision.AlgorithmMinimaxRegret {
		t.Fatalf("trace algorithm = %q, want canonical minimax_regret", res.Trace.Algorithm)
	}
}

func TestUnknownAlgorithmRejected(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1"},
		States:    []string{"s1"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 1}},
		Algorithm: decision.Algorithm("not_a_real_algorithm"),
	}
	_, err := Evaluate(spec, decision.AlgorithmParams{}, nil)
	if err == nil {
		t.Fatal("expected InvalidInput for unknown algorithm tag")
	}
}

func TestDuplicateActionRejected(t *testing.T) {
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a1"},
		States:    []string{"s1"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 1}},
		Algorithm: decision.AlgorithmMaximin,
	}
	_, err := Evaluate(spec, decision.AlgorithmParams{}, nil)
	if err == nil {
		t.Fatal("expected InvalidInput for duplicate action")
	}
}
