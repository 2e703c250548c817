// Package dag models the image dependency graph and produces the
// deterministic order the configure phase walks it in.
package dag

import (
	"fmt"
)

// Graph is a directed graph of image names. It is built once by the planner
// and read once for ordering; like the rest of a run it is single-threaded,
// so there is no locking.
type Graph struct {
	nodes map[string]*node
	// order remembers insertion order; it is the tie-break that makes
	// TopoOrder stable across runs.
	order []string
}

// node represents a single vertex. It is un-exported to enforce interaction
// with the graph via string IDs, not by direct struct manipulation.
type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID`
// node, meaning `toID` depends on `fromID`. An error is returned if either
// node does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// TopoOrder returns every node in an order where dependencies come before
// their dependents. Among the nodes that are ready at any point, the one
// declared first wins, so the order is a pure function of the build
// description. A cycle makes ordering impossible and is returned as an
// error naming the first trapped node.
func (g *Graph) TopoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		indegree[id] = len(g.nodes[id].deps)
	}

	done := make(map[string]bool, len(g.order))
	result := make([]string, 0, len(g.order))

	for len(result) < len(g.order) {
		picked := ""
		for _, id := range g.order {
			if !done[id] && indegree[id] == 0 {
				picked = id
				break
			}
		}
		if picked == "" {
			for _, id := range g.order {
				if !done[id] {
					return nil, fmt.Errorf("dependency cycle involving image %q", id)
				}
			}
		}

		done[picked] = true
		result = append(result, picked)
		for id := range g.nodes[picked].dependents {
			indegree[id]--
		}
	}
	return result, nil
}
