package quad

// Node is one weighted sample accepted into the Simpson sum.
type Node struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Weight float64 `json:"weight"`
}

type NodeObserver interface {
	OnNode(n Node)
}

// NodeRecorder keeps every node it observes, in order. It is not safe for
// concurrent use.
type NodeRecorder struct {
	Nodes []Node
}

func (r *NodeRecorder) OnNode(n Node) { r.Nodes = append(r.Nodes, n) }
