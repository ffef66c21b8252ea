package session

// FileGroups groups samples by source file in first-seen order. It is derived
// on every call and never mutates the session.
func (s *Session) FileGroups() []FileGroup {
	groups := make([]FileGroup, 0)
	index := make(map[string]int)
	for i, sample := range s.Samples {
		g, ok := index[sample.SourceFileName]
		if !ok {
			index[sample.SourceFileName] = len(groups)
			groups = append(groups, FileGroup{Name: sample.SourceFileName, Count: 1, FirstIndex: i})
			continue
		}
		groups[g].Count++
	}
	return groups
}

// Progress counts labeled samples. Orphaned labels still count as labeled.
func (s *Session) Progress() Progress {
	p := Progress{Total: len(s.Samples), ByLabel: make(map[string]int)}
	for _, sample := range s.Samples {
		if !sample.IsLabeled() {
			continue
		}
		p.Labeled++
		p.ByLabel[*sample.Label]++
	}
	if p.Total > 0 {
		p.Percent = float64(p.Labeled) / float64(p.Total) * 100
	}
	return p
}
