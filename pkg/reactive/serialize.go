package reactive

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Observed wrappers serialize as their plain underlying value: wrapper-ness
// is not preserved across a process boundary, only boxed-value-ness is
// (see Box.MarshalJSON).

// MarshalJSON encodes the underlying map.
func (o *Object) MarshalJSON() ([]byte, error) {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	return json.Marshal(o.raw)
}

// MarshalJSON encodes the underlying slice.
func (l *List) MarshalJSON() ([]byte, error) {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	return json.Marshal(l.raw)
}

// MarshalJSON encodes the underlying entries with stringified keys.
func (d *Dict) MarshalJSON() ([]byte, error) {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	out := make(map[string]any, len(d.raw))
	for k, v := range d.raw {
		out[fmt.Sprint(k)] = v
	}
	return json.Marshal(out)
}

// MarshalJSON encodes the members as a sorted array.
func (s *Set) MarshalJSON() ([]byte, error) {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	members := make([]string, 0, len(s.raw))
	for k := range s.raw {
		members = append(members, fmt.Sprint(k))
	}
	sort.Strings(members)
	return json.Marshal(members)
}
