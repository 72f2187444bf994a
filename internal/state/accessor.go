package state

// Get resolves path against the tree and returns the plain value found
// there. Resolution fails soft: a missing key, an out-of-range index, a
// wrong container kind or a malformed path all return def. A value is
// only returned when every segment matched.
func Get(tree *Node, path string, def any) any {
	segs, err := ParsePath(path)
	if err != nil {
		return def
	}
	n := tree
	for _, s := range segs {
		if n == nil || n.kind != Mapping {
			return def
		}
		child, ok := n.fields[s.Name]
		if !ok {
			return def
		}
		if s.HasIndex {
			if child.kind != Sequence || s.Index >= len(child.items) {
				return def
			}
			child = child.items[s.Index]
		}
		n = child
	}
	return n.Value()
}

// Set writes value at path, creating intermediate containers along the
// way: a mapping by default, a sequence when the segment carries an
// index. Sequences shorter than a needed index are padded, with empty
// mappings in intermediate position and absent markers in terminal
// position. A write whose final container is not a mapping is dropped;
// that is a caller path error, not a stream error.
func Set(tree *Node, path string, value any) {
	segs, err := ParsePath(path)
	if err != nil {
		return
	}
	n := tree
	for _, s := range segs[:len(segs)-1] {
		if n.kind != Mapping {
			return
		}
		if s.HasIndex {
			seq := n.fields[s.Name]
			if seq == nil || seq.kind != Sequence {
				seq = newSequence()
				n.fields[s.Name] = seq
			}
			for len(seq.items) <= s.Index {
				seq.items = append(seq.items, NewMapping())
			}
			n = seq.items[s.Index]
			continue
		}
		child := n.fields[s.Name]
		if child == nil || (child.kind != Mapping && child.kind != Sequence) {
			child = NewMapping()
			n.fields[s.Name] = child
		}
		n = child
	}
	if n.kind != Mapping {
		return
	}
	last := segs[len(segs)-1]
	if last.HasIndex {
		seq := n.fields[last.Name]
		if seq == nil || seq.kind != Sequence {
			seq = newSequence()
			n.fields[last.Name] = seq
		}
		for len(seq.items) <= last.Index {
			seq.items = append(seq.items, newAbsent())
		}
		seq.items[last.Index] = FromValue(value)
		return
	}
	n.fields[last.Name] = FromValue(value)
}
