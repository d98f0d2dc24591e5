// ABOUTME: First-run demo seeding gated by the settings flag, the external guard and emptiness.
// ABOUTME: Seeding runs in one transaction that also marks the settings row done.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/logger"
	"github.com/harperreed/fitnotes/internal/storage"
)

// Outcome describes what a seeding attempt did.
type Outcome int

const (
	// Seeded means demo data was written.
	Seeded Outcome = iota
	// AlreadyDone means the settings row was already marked seeded.
	AlreadyDone
	// Guarded means the external guard was set.
	Guarded
	// NotEmpty means user data existed; the store was marked seeded without
	// writing demo data.
	NotEmpty
	// Deferred means the side store was detached, so the guard could not be
	// read durably. Seeding is retried on a later start.
	Deferred
)

func (o Outcome) String() string {
	switch o {
	case Seeded:
		return "seeded"
	case AlreadyDone:
		return "already done"
	case Guarded:
		return "guarded"
	case NotEmpty:
		return "not empty"
	case Deferred:
		return "deferred"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Loader reloads an in-memory cache after seeding.
type Loader interface {
	Load(ctx context.Context) error
}

// Seeder populates a fresh store with demo data.
type Seeder struct {
	repo storage.Repository
	kv   *kvstore.Store
	log  *log.Logger
	rng  *rand.Rand
	now  func() time.Time
}

// New creates a seeder. kv may be nil, in which case only the settings flag
// gates seeding.
func New(repo storage.Repository, kv *kvstore.Store, l *log.Logger) *Seeder {
	seed := uint64(time.Now().UnixNano())
	return &Seeder{
		repo: repo,
		kv:   kv,
		log:  logger.OrDiscard(l),
		rng:  rand.New(rand.NewPCG(seed, seed>>1)),
		now:  time.Now,
	}
}

// WithRand sets the random source, for reproducible demo data.
func (s *Seeder) WithRand(r *rand.Rand) *Seeder {
	s.rng = r
	return s
}

// WithClock sets the clock used to place demo history.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Run seeds if allowed and reloads caches on success. Failures are logged
// and swallowed; it reports whether demo data was written.
func (s *Seeder) Run(ctx context.Context, caches ...Loader) bool {
	outcome, err := s.Seed(ctx)
	if err != nil {
		s.log.Error("seeding failed", "err", err)
		return false
	}
	s.log.Debug("seeding finished", "outcome", outcome)
	if outcome != Seeded && outcome != NotEmpty {
		return false
	}
	for _, c := range caches {
		if err := c.Load(ctx); err != nil {
			s.log.Error("reload after seeding", "err", err)
		}
	}
	return outcome == Seeded
}

// Seed checks the gates and writes demo data. The settings check, the
// emptiness check, the inserts and the seedingDone flag share one
// transaction, so two concurrent starts cannot both seed. The external guard
// is marked after commit.
func (s *Seeder) Seed(ctx context.Context) (Outcome, error) {
	settings, err := s.repo.Conn().EnsureSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("read settings: %w", err)
	}
	if settings.SeedingDone {
		return AlreadyDone, nil
	}
	if s.kv != nil && s.kv.Detached() {
		s.log.Warn("side store detached, seed guard unreadable; skipping first-run seeding")
		return Deferred, nil
	}
	if s.kv != nil {
		guarded, err := s.kv.HasGuard()
		if err != nil {
			return 0, fmt.Errorf("read seed guard: %w", err)
		}
		if guarded {
			return Guarded, nil
		}
	}

	var outcome Outcome
	err = s.repo.InTx(ctx, func(c *storage.Conn) error {
		settings, err := c.EnsureSettings(ctx)
		if err != nil {
			return err
		}
		if settings.SeedingDone {
			outcome = AlreadyDone
			return nil
		}

		counts, err := c.Counts(ctx)
		if err != nil {
			return err
		}
		if counts.Exercises > 0 || counts.Workouts > 0 || counts.Measurements > 0 {
			outcome = NotEmpty
		} else {
			if err := s.write(ctx, c); err != nil {
				return err
			}
			outcome = Seeded
		}

		settings.SeedingDone = true
		return c.PutSettings(ctx, *settings)
	})
	if err != nil {
		return 0, fmt.Errorf("seed database: %w", err)
	}
	if outcome == AlreadyDone {
		return outcome, nil
	}

	if s.kv != nil {
		if err := s.kv.MarkGuard(); err != nil {
			s.log.Warn("mark seed guard", "err", err)
		}
	}
	return outcome, nil
}

func (s *Seeder) write(ctx context.Context, c *storage.Conn) error {
	exercises := CatalogExercises()
	if err := c.BulkAddExercises(ctx, exercises); err != nil {
		return err
	}

	now := s.now()
	g := generator{rng: s.rng, today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}

	workouts := g.workouts(exercises)
	if err := c.BulkAddWorkouts(ctx, workouts); err != nil {
		return err
	}
	measurements := g.measurements()
	if err := c.BulkAddMeasurements(ctx, measurements); err != nil {
		return err
	}

	s.log.Info("seeded demo data", "exercises", len(exercises), "workouts", len(workouts), "measurements", len(measurements))
	return nil
}
