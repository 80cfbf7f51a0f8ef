package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/producers-backend/api/responses"
	"github.com/angelmondragon/producers-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/logger"
)

const (
	envHeader         = "X-Producers-Env"
	readinessDeadline = 3 * time.Second
)

// Pinger is any dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and the blob store; any failure answers 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, storeP Pinger) http.HandlerFunc {
	checks := []struct {
		name   string
		pinger Pinger
	}{
		{name: "database", pinger: dbP},
		{name: "storage", pinger: storeP},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessDeadline)
		defer cancel()

		for _, check := range checks {
			if check.pinger == nil {
				continue
			}
			if err := check.pinger.Ping(ctx); err != nil {
				if logg != nil {
					ctx = logg.WithField(ctx, "check", check.name)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
