package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(label int) Node { return Node{IsLeaf: true, ClassLabel: label} }

func split(feature int, threshold float64, left, right int) Node {
	return Node{FeatureIdx: feature, Threshold: threshold, LeftChild: left, RightChild: right}
}

func stumpForest(t *testing.T, labels ...[2]int) *Forest {
	t.Helper()
	trees := make([]Tree, 0, len(labels))
	for _, l := range labels {
		trees = append(trees, Tree{Nodes: []Node{split(0, 0.5, 1, 2), leaf(l[0]), leaf(l[1])}})
	}
	f, err := NewForest(Artifact{Name: "stumps", Version: 3, FeatureCount: 2, Trees: trees})
	require.NoError(t, err)
	return f
}

func TestForestMajorityVote(t *testing.T) {
	f := stumpForest(t, [2]int{0, 1}, [2]int{0, 1}, [2]int{1, 0})

	code, err := f.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err = f.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	assert.Equal(t, "stumps", f.Name())
	assert.Equal(t, 3, f.Version())
	assert.Equal(t, 2, f.FeatureCount())
}

func TestForestTieGoesToLowestCode(t *testing.T) {
	f := stumpForest(t, [2]int{2, 2}, [2]int{1, 1})
	code, err := f.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestForestClassifyCollapsesCodes(t *testing.T) {
	f := stumpForest(t, [2]int{0, 2})
	class, err := f.Classify(context.Background(), []float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, RiskElevated, class)
}

func TestForestRejectsWrongWidth(t *testing.T) {
	f := stumpForest(t, [2]int{0, 1})
	_, err := f.Classify(context.Background(), []float64{1})
	assert.ErrorIs(t, err, ErrFeatureLength)
}

func TestForestClassifyHonoursCancellation(t *testing.T) {
	f := stumpForest(t, [2]int{0, 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Classify(ctx, []float64{1, 0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForestIsDeterministic(t *testing.T) {
	f := stumpForest(t, [2]int{0, 1}, [2]int{1, 0}, [2]int{0, 1})
	first, err := f.Predict([]float64{0.7, 0})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got, err := f.Predict([]float64{0.7, 0})
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestNewForestRejectsBadStructure(t *testing.T) {
	cases := map[string]Artifact{
		"no trees":         {FeatureCount: 2},
		"no feature count": {Trees: []Tree{{Nodes: []Node{leaf(0)}}}},
		"empty tree":       {FeatureCount: 2, Trees: []Tree{{}}},
		"feature range":    {FeatureCount: 2, Trees: []Tree{{Nodes: []Node{split(5, 0, 1, 2), leaf(0), leaf(1)}}}},
		"child range":      {FeatureCount: 2, Trees: []Tree{{Nodes: []Node{split(0, 0, 1, 9), leaf(0)}}}},
		"backward child":   {FeatureCount: 2, Trees: []Tree{{Nodes: []Node{leaf(0), split(0, 0, 0, 2), leaf(1)}}}},
	}
	for name, art := range cases {
		_, err := NewForest(art)
		assert.Error(t, err, name)
	}
}

func TestRiskClassAdvice(t *testing.T) {
	assert.Equal(t, RiskLow, ClassFromCode(0))
	assert.Equal(t, RiskElevated, ClassFromCode(1))
	assert.Equal(t, RiskElevated, ClassFromCode(7))
	assert.Contains(t, RiskLow.Advice(), "low risk of stroke")
	assert.Contains(t, RiskElevated.Advice(), "potential risk of stroke")
	assert.Equal(t, "low", RiskLow.String())
	assert.Equal(t, "elevated", RiskElevated.String())
}
