package edep

import (
	"fmt"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Fold combines get(node) over trackID and all its descendants.
// The forest is acyclic (checked by Build) so the recursion ends.
func Fold[T any](f *Forest, trackID int, get func(*Node) T, add func(T, T) T) T {
	node := &f.Nodes[trackID]
	value := get(node)
	for _, childID := range node.Children {
		value = add(value, Fold(f, childID, get, add))
	}
	return value
}

func sum[T constraints.Float](a, b T) T {
	return a + b
}

func addSlices[T constraints.Float](a, b []T) []T {
	out := make([]T, len(a))
	copy(out, a)
	for i := range out {
		out[i] += b[i]
	}
	return out
}

func SumEnergy(f *Forest, trackID int) float64 {
	return Fold(f, trackID, func(n *Node) float64 { return n.Self.Energy }, sum[float64])
}

func SumLength(f *Forest, trackID int) float64 {
	return Fold(f, trackID, func(n *Node) float64 { return n.Self.Length }, sum[float64])
}

func SumCharge(f *Forest, trackID int, model ChargeModel) ChargeSums {
	return Fold(f, trackID, func(n *Node) ChargeSums { return n.Self.Charge[model] }, ChargeSums.Add)
}

// SumLight returns the detected light energy for every operating point of model.
func SumLight(f *Forest, trackID int, model ChargeModel) []float64 {
	return Fold(f, trackID, func(n *Node) []float64 { return slices.Clone(n.Self.Light[model]) }, addSlices[float64])
}

// Metric is a named scalar accumulator of a node.
type Metric func(*Node) float64

// Metrics maps the per-track accumulator names of the forest to their
// accessors. Light metrics are named after the forest's operating points.
func (f *Forest) Metrics() map[string]Metric {
	return buildMetrics(f.response.Light)
}

func buildMetrics(tables LightTables) map[string]Metric {
	metrics := map[string]Metric{
		"depoTotal": func(n *Node) float64 { return n.Self.Energy },
		"selfDepo":  func(n *Node) float64 { return n.Self.Length },
	}
	for _, model := range ChargeModels {
		model := model
		metrics["depoTotal_charge"+model.Suffix()] = func(n *Node) float64 {
			return n.Self.Charge[model].Total
		}
		for i, th := range ChargeThresholds {
			i := i
			metrics["depoTotal_charge"+model.Suffix()+"_"+th.Name] = func(n *Node) float64 {
				return n.Self.Charge[model].Thresholded[i]
			}
		}
		for k, op := range tables[model] {
			k := k
			metrics["depoTotal_light_avg_"+op.Name+model.Suffix()] = func(n *Node) float64 {
				if k >= len(n.Self.Light[model]) {
					return 0
				}
				return n.Self.Light[model][k]
			}
		}
	}
	return metrics
}

func (f *Forest) MetricNames() []string {
	metrics := f.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SumMetric folds a metric of the forest's Metrics table over a subtree.
func SumMetric(f *Forest, trackID int, name string) (float64, error) {
	metric, ok := f.Metrics()[name]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q", name)
	}
	if _, err := f.Node(trackID); err != nil {
		return 0, err
	}
	return Fold(f, trackID, metric, sum[float64]), nil
}
