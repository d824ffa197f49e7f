package prompt

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/medphys/internal/model"
)

// Confirmer obtains a yes/no decision from the operator.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Guard protects existing reports from being replaced without consent.
type Guard struct {
	confirmer Confirmer
	force     bool
	logger    *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithForce makes the guard replace existing reports without asking.
func WithForce(force bool) GuardOption {
	return func(g *Guard) {
		g.force = force
	}
}

// WithGuardLogger sets the logger of the guard.
func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard creates a Guard asking confirmer about collisions.
func NewGuard(confirmer Confirmer, opts ...GuardOption) *Guard {
	g := &Guard{
		confirmer: confirmer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check asks about every path that already exists, one question at a time.
// If any answer is no, Check returns ErrOverwriteDeclined and the caller must
// not write any of the paths. Running out of input counts as a no.
// Paths that do not exist need no decision.
func (g *Guard) Check(paths []string) error {
	for _, path := range paths {
		exists, err := fileExists(path)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}

		if g.force {
			g.logger.Info("replacing existing report", "path", path)
			continue
		}

		ok, err := g.confirmer.Confirm(fmt.Sprintf("%s exists - overwrite?", path))
		if errors.Is(err, ErrNoInput) {
			return fmt.Errorf("%w: no answer for %s", model.ErrOverwriteDeclined, path)
		}
		if err != nil {
			return err
		}
		if !ok {
			g.logger.Debug("overwrite declined", "path", path)
			return fmt.Errorf("%w: %s was kept", model.ErrOverwriteDeclined, path)
		}
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s: %w", path, err)
}
