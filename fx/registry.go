package fx

// registry maps nodes to their active animations. Nodes are kept in order of
// their first registration, animations of a node in order of their start.
// A node without animations is not contained in the registry.
type registry[N comparable] struct {
	nodes   []N
	handles map[N][]*Animation[N]
}

func newRegistry[N comparable]() registry[N] {
	return registry[N]{handles: make(map[N][]*Animation[N])}
}

func (r *registry[N]) add(a *Animation[N]) {
	list, found := r.handles[a.node]
	if !found {
		r.nodes = append(r.nodes, a.node)
	}
	r.handles[a.node] = append(list, a)
}

// remove deletes a single animation. It returns false if a is not registered.
func (r *registry[N]) remove(a *Animation[N]) bool {
	list := r.handles[a.node]
	for i, h := range list {
		if h == a {
			rest := make([]*Animation[N], 0, len(list)-1)
			rest = append(rest, list[:i]...)
			rest = append(rest, list[i+1:]...)
			if len(rest) == 0 {
				r.dropNode(a.node)
			} else {
				r.handles[a.node] = rest
			}
			return true
		}
	}
	return false
}

// take removes and returns all animations of a node.
func (r *registry[N]) take(n N) []*Animation[N] {
	list, found := r.handles[n]
	if !found {
		return nil
	}
	r.dropNode(n)
	return list
}

func (r *registry[N]) dropNode(n N) {
	delete(r.handles, n)
	for i, m := range r.nodes {
		if m == n {
			r.nodes = append(r.nodes[:i:i], r.nodes[i+1:]...)
			break
		}
	}
}

// all returns a snapshot of every registered animation, grouped by node,
// each group in start order. The snapshot is not affected by subsequent
// changes to the registry.
func (r *registry[N]) all() []*Animation[N] {
	var snapshot []*Animation[N]
	for _, n := range r.nodes {
		snapshot = append(snapshot, r.handles[n]...)
	}
	return snapshot
}

func (r *registry[N]) count(n N) int {
	return len(r.handles[n])
}

func (r *registry[N]) empty() bool {
	return len(r.nodes) == 0
}
