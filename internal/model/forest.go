package model

import (
	"context"
	"fmt"
)

// Node is one entry of a flattened decision tree. Inner nodes send
// features[FeatureIdx] <= Threshold to LeftChild and everything else to
// RightChild. Children always sit after their parent.
type Node struct {
	FeatureIdx int     `json:"feature_idx" yaml:"feature_idx"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`
	LeftChild  int     `json:"left_child" yaml:"left_child"`
	RightChild int     `json:"right_child" yaml:"right_child"`
	ClassLabel int     `json:"class_label" yaml:"class_label"`
	IsLeaf     bool    `json:"is_leaf" yaml:"is_leaf"`
}

type Tree struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Artifact is the on-disk representation of a trained forest.
type Artifact struct {
	Name         string `json:"name" yaml:"name"`
	Version      int    `json:"version" yaml:"version"`
	FeatureCount int    `json:"feature_count" yaml:"feature_count"`
	Classes      []int  `json:"classes,omitempty" yaml:"classes,omitempty"`
	Trees        []Tree `json:"trees" yaml:"trees"`
}

// Forest is an immutable majority-vote ensemble of decision trees.
type Forest struct {
	name         string
	version      int
	featureCount int
	trees        []Tree
}

// NewForest checks the artifact's structure and builds a Forest from it.
func NewForest(a Artifact) (*Forest, error) {
	if a.FeatureCount <= 0 {
		return nil, fmt.Errorf("feature_count must be positive")
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	trees := make([]Tree, len(a.Trees))
	for i, tree := range a.Trees {
		if err := checkTree(tree, a.FeatureCount); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = Tree{Nodes: append([]Node(nil), tree.Nodes...)}
	}
	return &Forest{
		name:         a.Name,
		version:      a.Version,
		featureCount: a.FeatureCount,
		trees:        trees,
	}, nil
}

func checkTree(tree Tree, featureCount int) error {
	if len(tree.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for idx, node := range tree.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature_idx %d out of range", idx, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= idx || child >= len(tree.Nodes) {
				return fmt.Errorf("node %d: child %d out of range", idx, child)
			}
		}
	}
	return nil
}

func (f *Forest) Name() string      { return f.name }
func (f *Forest) Version() int      { return f.version }
func (f *Forest) FeatureCount() int { return f.featureCount }

// Predict returns the raw class code chosen by most trees. Ties go to the
// lowest code.
func (f *Forest) Predict(features []float64) (int, error) {
	if len(features) != f.featureCount {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureLength, len(features), f.featureCount)
	}
	votes := make(map[int]int)
	for _, tree := range f.trees {
		votes[predictTree(tree, features)]++
	}
	best, bestVotes := 0, -1
	for label, n := range votes {
		if n > bestVotes || (n == bestVotes && label < best) {
			best, bestVotes = label, n
		}
	}
	return best, nil
}

// Classify implements Classifier.
func (f *Forest) Classify(ctx context.Context, features []float64) (RiskClass, error) {
	if err := ctx.Err(); err != nil {
		return RiskLow, err
	}
	code, err := f.Predict(features)
	if err != nil {
		return RiskLow, err
	}
	return ClassFromCode(code), nil
}

// predictTree walks a tree already checked by checkTree, so child indexes are
// in range and strictly increasing.
func predictTree(tree Tree, features []float64) int {
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
