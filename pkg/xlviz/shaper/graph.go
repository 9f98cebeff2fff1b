package shaper

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// DefaultLinkWeight is the weight of a link without a usable value.
const DefaultLinkWeight = 1

// Node is a graph node.
type Node struct {
	ID models.Value `json:"id"`
}

// Link is a weighted edge between two nodes.
type Link struct {
	Source models.Value `json:"source"`
	Target models.Value `json:"target"`
	Value  float64      `json:"value"`
}

// Graph is the output of force-directed graphs. Nodes are the distinct
// link endpoints in first-seen order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

func (*Graph) Chart() charts.Kind { return charts.ForceDirected }
func (*Graph) output()            {}

func shapeGraph(j *job) (Output, error) {
	if err := j.requireColumns("source", "target"); err != nil {
		return nil, err
	}
	srcCol, dstCol := j.col("source"), j.col("target")
	weightCol := j.col("value")

	out := &Graph{}
	seen := make(map[models.Value]bool)
	addNode := func(id models.Value) {
		if !seen[id] {
			seen[id] = true
			out.Nodes = append(out.Nodes, Node{ID: id})
		}
	}

	for _, r := range j.rows() {
		link := Link{Source: r.Get(srcCol), Target: r.Get(dstCol), Value: DefaultLinkWeight}
		if weightCol != "" {
			if w, ok := r.Get(weightCol).Float(); ok && w != 0 {
				link.Value = w
			}
		}
		out.Links = append(out.Links, link)
		addNode(link.Source)
		addNode(link.Target)
	}
	return out, nil
}

// TreeNode is one node of a stratified hierarchy.
type TreeNode struct {
	ID       string      `json:"id"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Dendrogram is the output of dendrogram charts: the id and parent
// columns and the tree they stratify into.
type Dendrogram struct {
	IDColumn     string    `json:"idColumn"`
	ParentColumn string    `json:"parentColumn"`
	Root         *TreeNode `json:"root"`
}

func (*Dendrogram) Chart() charts.Kind { return charts.Dendrogram }
func (*Dendrogram) output()            {}

// shapeDendrogram stratifies rows into a tree. A row with an empty parent
// is the root; there must be exactly one, ids must be unique and every
// parent must name an existing id.
func shapeDendrogram(j *job) (Output, error) {
	if err := j.requireColumns("id", "parent"); err != nil {
		return nil, err
	}
	idCol, parentCol := j.col("id"), j.col("parent")

	nodes := make(map[string]*TreeNode)
	var order []string
	parents := make(map[string]string)
	var root *TreeNode
	for _, r := range j.rows() {
		id := r.Get(idCol).String()
		if _, dup := nodes[id]; dup {
			return nil, cannotRender(j.kind, "ambiguous id %q", id)
		}
		n := &TreeNode{ID: id}
		nodes[id] = n
		order = append(order, id)

		parent := r.Get(parentCol).String()
		if parent == "" {
			if root != nil {
				return nil, cannotRender(j.kind, "multiple roots")
			}
			root = n
			continue
		}
		parents[id] = parent
	}
	if root == nil {
		return nil, cannotRender(j.kind, "no root")
	}

	for _, id := range order {
		parent, ok := parents[id]
		if !ok {
			continue
		}
		p, ok := nodes[parent]
		if !ok {
			return nil, cannotRender(j.kind, "missing parent %q", parent)
		}
		p.Children = append(p.Children, nodes[id])
	}

	// Every node must be reachable from the root, otherwise there is a cycle.
	if reached := count(root); reached != len(nodes) {
		return nil, cannotRender(j.kind, "cycle detected")
	}
	return &Dendrogram{IDColumn: idCol, ParentColumn: parentCol, Root: root}, nil
}

func count(n *TreeNode) int {
	c := 1
	for _, ch := range n.Children {
		c += count(ch)
	}
	return c
}
