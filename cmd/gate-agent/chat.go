package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/minhyannv/gate-agent-go/pkg/agent"
	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/minhyannv/gate-agent-go/pkg/reservation"
	"github.com/minhyannv/gate-agent-go/pkg/settings"
	"github.com/minhyannv/gate-agent-go/pkg/tools"
	"github.com/minhyannv/gate-agent-go/pkg/weather"
)

// runChat loads the stored settings strictly and starts the REPL.
func (a *app) runChat(ctx context.Context) error {
	record, err := settings.LoadFile(a.cfg.SettingsPath)
	if err != nil {
		return err
	}
	if err := a.matchProvider(record); err != nil {
		return err
	}

	pool, err := a.loadFixtures()
	if err != nil {
		return err
	}
	vars := reservation.NewVariables()
	pnrs, err := reservation.New(pool,
		reservation.WithContext(vars),
		reservation.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	var forecaster tools.Forecaster
	if strings.TrimSpace(record.WeatherAPIKey) != "" {
		forecaster = weather.New(record.WeatherAPIKey, a.cfg.WeatherBaseURL, a.cfg.HTTPTimeout)
	} else {
		loggerpkg.Warn(a.logger, "weather tool disabled", map[string]any{"reason": "no tomorrow.io key in settings"})
	}

	registry := tools.New(tools.Context{
		Verbose:      a.cfg.Verbose,
		Ctx:          ctx,
		Logger:       a.logger,
		Weather:      forecaster,
		Reservations: pnrs,
	})
	loop, err := agent.New(ctx, a.cfg, record, registry, agent.WithLogger(a.logger))
	if err != nil {
		return err
	}

	return runREPL(loop, vars, replOptions{
		Verbose:   a.cfg.Verbose,
		Logger:    a.logger,
		SessionID: loop.SessionID,
	}, a.in, a.out)
}

func (a *app) loadFixtures() ([]reservation.PNR, error) {
	if a.cfg.FixturesPath == "" {
		return reservation.DefaultFixtures()
	}
	return reservation.LoadFixtures(a.cfg.FixturesPath)
}

// matchProvider rejects a stored record written for the other backend.
func (a *app) matchProvider(record settings.Record) error {
	if record.UseAzure() == a.cfg.UseAzure {
		return nil
	}
	return fmt.Errorf("settings at %s are for the %s backend; run `gate-agent setup` again or pass --azure=%t",
		a.cfg.SettingsPath, record.Provider, record.UseAzure())
}

// checkStoredProvider applies matchProvider to the settings file, if one
// can be read. A missing or malformed file is left to the facade.
func (a *app) checkStoredProvider() error {
	record, err := settings.LoadFile(a.cfg.SettingsPath)
	if err != nil {
		return nil
	}
	return a.matchProvider(record)
}
