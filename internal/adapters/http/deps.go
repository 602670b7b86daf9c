package http

import (
	"github.com/nats-io/nats.go"
	"github.com/snaphunt/snaphunt/internal/adapters/postgres"
	"github.com/snaphunt/snaphunt/internal/adapters/valkey"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Hunts       *usecases.HuntService
	Checkpoints *usecases.CheckpointService
	Plans       *usecases.PlanService
	Zoning      zoning.Config
	NATS        *nats.Conn
	DB          *postgres.DB
	Cache       *valkey.Cache
}
