package ports

import (
	"context"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
)

// ProgressFunc receives periodic generation progress updates.
type ProgressFunc func(usersDone, usersTotal int)

type Generator interface {
	// Generate produces the requested number of fake user profiles, each
	// carrying readingsPerUser sensor readings. Nonpositive counts yield
	// empty results.
	Generate(ctx context.Context, users, readingsPerUser int, progress ProgressFunc) ([]entities.UserRecord, error)
}
