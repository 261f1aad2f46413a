package project

import "github.com/sysread/fnord/internal/store"

// IndexStatus is the three-way diff between the live source tree and the
// entry store. It is derived, never persisted.
type IndexStatus struct {
	// New holds live files with no stored entry.
	New []*store.Entry

	// Stale holds live files whose stored entry is incomplete or no longer
	// matches the source content.
	Stale []*store.Entry

	// Deleted holds stored entries whose source file is gone, or has become
	// excluded or git-ignored since the last index.
	Deleted []*store.Entry
}

// IndexStatus recomputes the diff from scratch. It is intentionally
// uncached: exclusion rules and git-ignore state can change between calls.
// The legacy-layout migration runs first so stored entries are classified
// under the current layout.
func (p *Project) IndexStatus() (*IndexStatus, error) {
	st := p.Store()
	if err := st.MigrateLegacyLayout(); err != nil {
		return nil, err
	}

	live, err := p.SourceFiles()
	if err != nil {
		return nil, err
	}

	status := &IndexStatus{}
	liveByID := make(map[string]bool, len(live))
	for _, e := range live {
		liveByID[e.ID] = true
		switch {
		case !e.ExistsInStore():
			status.New = append(status.New, e)
		case e.IsStale():
			status.Stale = append(status.Stale, e)
		}
	}

	stored, err := st.List()
	if err != nil {
		return nil, err
	}
	for _, e := range stored {
		if !liveByID[e.ID] {
			status.Deleted = append(status.Deleted, e)
		}
	}
	return status, nil
}
