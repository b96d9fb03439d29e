package graph

import "sort"

// Components decomposes the projection into connected components via
// iterative breadth-first search. Every node lands in exactly one
// component. Components are returned largest first; equal sizes keep the
// order in which the components were discovered.
func Components(p *Projection) [][]int {
	n := p.NumNodes()
	visited := make([]bool, n)
	var components [][]int

	queue := make([]int, 0, 64)
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue = append(queue[:0], start)
		component := []int{start}

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for _, next := range p.Adj[node] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
					component = append(component, next)
				}
			}
		}
		components = append(components, component)
	}

	sort.SliceStable(components, func(a, b int) bool {
		return len(components[a]) > len(components[b])
	})
	return components
}

// ComponentSizes returns the sizes of the given components in order.
func ComponentSizes(components [][]int) []int {
	sizes := make([]int, len(components))
	for i, c := range components {
		sizes[i] = len(c)
	}
	return sizes
}
