package ports

import (
	"context"

	"trapzone/internal/domain/hunting"
)

type ScenarioProvider interface {
	Load(ctx context.Context, name string) (hunting.Config, error)
	List(ctx context.Context) ([]string, error)
}
