package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minhyannv/gate-agent-go/pkg/oauth"
	"github.com/minhyannv/gate-agent-go/pkg/weather"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Exchange the stored Amadeus client credentials for an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkStoredProvider(); err != nil {
				return err
			}
			ctx := cmd.Context()
			f := a.facade()
			clientID, err := f.AskAmadeusClientID(ctx, a.cfg.UseAzure)
			if err != nil {
				return err
			}
			secret, err := f.AskAmadeusSecret(ctx, a.cfg.UseAzure)
			if err != nil {
				return err
			}
			if clientID == "" || secret == "" {
				return errors.New("amadeus client id and secret are required")
			}

			client := oauth.NewClient(a.cfg.OAuthBaseURL, a.cfg.HTTPTimeout)
			token, err := client.Exchange(ctx, clientID, secret)
			if err != nil {
				return err
			}
			a.logger.Info("access token issued", map[string]any{
				"token":      token.AccessToken,
				"expires_in": token.ExpiresIn,
			})
			_, _ = fmt.Fprintf(a.out, "Access token: %s\n", token.AccessToken)
			if token.ExpiresIn > 0 {
				_, _ = fmt.Fprintf(a.out, "Expires in: %ds\n", token.ExpiresIn)
			}
			return nil
		},
	}
}

func newWeatherCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather <lat,lon>",
		Short: "Print the daily forecast for a latitude,longitude pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkStoredProvider(); err != nil {
				return err
			}
			ctx := cmd.Context()
			key, err := a.facade().AskWeatherAPIKey(ctx, a.cfg.UseAzure)
			if err != nil {
				return err
			}
			if key == "" {
				return errors.New("tomorrow.io api key is required")
			}

			skill := weather.New(key, a.cfg.WeatherBaseURL, a.cfg.HTTPTimeout)
			forecast, err := skill.GetForecast(ctx, strings.ReplaceAll(args[0], " ", ""))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.out, forecast)
			return nil
		},
	}
}
