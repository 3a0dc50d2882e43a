package regtab

// axisEntry is one row of the canonical coefficient axis. A row can carry
// several identity strings when post-selection relabeling collapses
// differently-named coefficients onto one display label.
type axisEntry struct {
	name    CoefName
	display string
	idents  []string
}

// relabel rewrites a name whose identity appears in the label map into a
// plain name carrying the label. Used before the union when labels are the
// unification key.
func relabel(n CoefName, labels map[string]string) CoefName {
	if lbl, ok := labels[n.Identity()]; ok {
		return Plain(lbl)
	}
	return n
}

// modelKeys returns the identity strings a model's coefficients match
// under. With UseRelabeled the relabeled identities are the keys, so two
// differently-named coefficients mapped to one label share a row.
func modelKeys(m Model, cfg *Config) []string {
	names := m.CoefNames()
	keys := make([]string, len(names))
	for i, n := range names {
		if cfg.Transform != nil {
			n = cfg.Transform(n)
		}
		if cfg.UseRelabeled {
			n = relabel(n, cfg.Labels)
		}
		keys[i] = n.Identity()
	}
	return keys
}

// buildAxis unions coefficient names across models in first-seen order,
// applies keep, then drop, then order, and resolves display labels.
//
// Relabeling is two-phase on purpose: with cfg.UseRelabeled the relabeled
// names participate in the union itself (labels decide which rows exist);
// otherwise relabeling happens after selection, and entries whose displays
// collide are merged into one row without changing earlier row identity.
func buildAxis(models []Model, cfg *Config) ([]axisEntry, error) {
	var axis []axisEntry
	index := make(map[string]int)
	for _, m := range models {
		for _, n := range m.CoefNames() {
			if cfg.Transform != nil {
				n = cfg.Transform(n)
			}
			if cfg.UseRelabeled {
				n = relabel(n, cfg.Labels)
			}
			id := n.Identity()
			if _, ok := index[id]; ok {
				continue
			}
			index[id] = len(axis)
			axis = append(axis, axisEntry{name: n, idents: []string{id}})
		}
	}

	ids := func() []string {
		out := make([]string, len(axis))
		for i, e := range axis {
			out[i] = e.idents[0]
		}
		return out
	}
	missed := func(name string) {
		if hint := nearestName(ids(), name); hint != "" {
			cfg.Logger.Warn("coefficient selector matched nothing", "name", name, "closest", hint)
		} else {
			cfg.Logger.Warn("coefficient selector matched nothing", "name", name)
		}
	}

	if len(cfg.Keep) > 0 {
		pos, err := resolveAll(ids(), cfg.Keep, missed)
		if err != nil {
			return nil, err
		}
		kept := make([]axisEntry, len(pos))
		for i, p := range pos {
			kept[i] = axis[p]
		}
		axis = kept
	}
	if len(cfg.Drop) > 0 {
		pos, err := resolveAll(ids(), cfg.Drop, missed)
		if err != nil {
			return nil, err
		}
		dropped := make(map[int]bool, len(pos))
		for _, p := range pos {
			dropped[p] = true
		}
		var left []axisEntry
		for i, e := range axis {
			if !dropped[i] {
				left = append(left, e)
			}
		}
		axis = left
	}
	if len(cfg.Order) > 0 {
		pos, err := resolveAll(ids(), cfg.Order, missed)
		if err != nil {
			return nil, err
		}
		front := make(map[int]bool, len(pos))
		reordered := make([]axisEntry, 0, len(axis))
		for _, p := range pos {
			front[p] = true
			reordered = append(reordered, axis[p])
		}
		for i, e := range axis {
			if !front[i] {
				reordered = append(reordered, e)
			}
		}
		axis = reordered
	}

	for i := range axis {
		axis[i].display = axis[i].name.Display(cfg.Labels, cfg.InterceptLabel)
	}
	if !cfg.UseRelabeled {
		axis = mergeByDisplay(axis)
	}
	return axis, nil
}

// mergeByDisplay collapses rows that render identically after relabeling.
// The first row keeps its position and absorbs the other rows' identities.
func mergeByDisplay(axis []axisEntry) []axisEntry {
	index := make(map[string]int)
	var out []axisEntry
	for _, e := range axis {
		if i, ok := index[e.display]; ok {
			out[i].idents = append(out[i].idents, e.idents...)
			continue
		}
		index[e.display] = len(out)
		out = append(out, e)
	}
	return out
}
