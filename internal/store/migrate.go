package store

import "os"

// MigrateFromPaths imports a batch of external list files into the
// store, typically legacy files found at a previous installation's
// locations. It returns how many imported successfully and how many
// existing files were attempted.
//
// Paths that do not exist are skipped without counting toward the
// total; a migration sweep probes well-known locations and most will
// be absent. Failures on existing files are logged per file and never
// abort the sweep.
func (s *Store) MigrateFromPaths(paths []string) (imported, total int) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		total++
		if _, ok := s.ImportExternal(p); ok {
			imported++
		}
	}

	if total > 0 {
		s.log.Info("migration sweep finished", "imported", imported, "total", total)
	}
	return imported, total
}
