package reactive

// depSet is one subscriber set: the effects subscribed to a single
// (target, key) pair. Membership is mirrored on each effect's deps list so
// the effect can remove itself before a re-run.
type depSet struct {
	subs map[uint64]*Effect

	// order preserves subscription order for deterministic triggering.
	order []*Effect
}

func newDepSet() *depSet {
	return &depSet{subs: make(map[uint64]*Effect)}
}

// add inserts an effect into the set. Adding twice has the effect of once.
// Reports whether the effect was newly added.
func (ds *depSet) add(eff *Effect) bool {
	if _, ok := ds.subs[eff.id]; ok {
		return false
	}
	ds.subs[eff.id] = eff
	ds.order = append(ds.order, eff)
	return true
}

// remove deletes an effect from the set.
func (ds *depSet) remove(eff *Effect) {
	if _, ok := ds.subs[eff.id]; !ok {
		return
	}
	delete(ds.subs, eff.id)
	for i, e := range ds.order {
		if e == eff {
			ds.order = append(ds.order[:i], ds.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the current subscribers so triggering can mutate the set.
func (ds *depSet) snapshot() []*Effect {
	out := make([]*Effect, len(ds.order))
	copy(out, ds.order)
	return out
}

// depGraph maps target -> key -> subscriber set. Targets are the reactive
// wrappers themselves (boxes, observed wrappers, computed cells), which are
// pointer-comparable. Entries are dropped via release when a target is
// explicitly disposed; Go has no weak-keyed maps, so disposal is the
// arena-style hook that prevents the graph from pinning dead targets.
type depGraph struct {
	targets map[any]map[string]*depSet
}

func newDepGraph() *depGraph {
	return &depGraph{targets: make(map[any]map[string]*depSet)}
}

// setFor returns the subscriber set for (target, key), creating it if needed.
func (g *depGraph) setFor(target any, key string) *depSet {
	keys, ok := g.targets[target]
	if !ok {
		keys = make(map[string]*depSet)
		g.targets[target] = keys
	}
	ds, ok := keys[key]
	if !ok {
		ds = newDepSet()
		keys[key] = ds
	}
	return ds
}

// lookup returns the subscriber set for (target, key), or nil.
func (g *depGraph) lookup(target any, key string) *depSet {
	keys, ok := g.targets[target]
	if !ok {
		return nil
	}
	return keys[key]
}

// release removes every subscriber set for a target. Effects subscribed to
// the released sets are detached so they no longer hold the sets alive.
func (g *depGraph) release(target any) {
	keys, ok := g.targets[target]
	if !ok {
		return
	}
	for _, ds := range keys {
		for _, eff := range ds.snapshot() {
			eff.forgetSet(ds)
		}
	}
	delete(g.targets, target)
}
