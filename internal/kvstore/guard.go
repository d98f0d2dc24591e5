// ABOUTME: First-run seed guard persisted outside the main store.
// ABOUTME: A data reset wipes SQLite but leaves this flag in place.
package kvstore

// GuardKey is the key of the seed guard flag.
const GuardKey = "fx.hasSeeded.v1"

// HasGuard reports whether demo seeding has already run on this machine.
func (s *Store) HasGuard() (bool, error) {
	return s.get(GuardKey, nil)
}

// MarkGuard records that demo seeding has run.
func (s *Store) MarkGuard() error {
	return s.put(GuardKey, true)
}

// ClearGuard removes the guard so the next start may seed again, provided
// the main store is also empty and not marked seeded.
func (s *Store) ClearGuard() error {
	return s.delete(GuardKey)
}
