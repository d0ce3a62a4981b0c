// Command incidentsaver captures incidents and exports them from the terminal
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"incidentsaver/internal/core/version"
	"incidentsaver/internal/modkit"
	"incidentsaver/internal/platform/config"
	"incidentsaver/internal/platform/logger"
	"incidentsaver/internal/platform/store"

	incmod "incidentsaver/internal/services/incidents/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(openStore)
	root.Version = version.For("incidentsaver").String()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// env is what every subcommand works against
type env struct {
	mod   *incmod.Module
	close func()
}

// opener builds the env; tests swap in a memory store
type opener func(ctx context.Context) (*env, error)

// openStore opens the store named by INCIDENTSAVER_STORE_* and wires the incidents module
func openStore(ctx context.Context) (*env, error) {
	cfg := config.New().Prefix("INCIDENTSAVER_")
	l := logger.Named("cli")
	st, err := store.Open(ctx, store.FromConfig(cfg, "incidentsaver"), store.WithLogger(*l))
	if err != nil {
		return nil, err
	}
	return &env{
		mod: incmod.New(modkit.FromStore(cfg, st), incmod.Options{}),
		close: func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		},
	}, nil
}
