package main

import (
	"context"
	"fmt"

	"github.com/portoo/portoo-backend/internal/client"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenEnv      = "PORTOO_TOKEN"
)

// app is built lazily so that offline commands (slug, crop) need no server.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("portoo")
	a.v.AutomaticEnv()
	a.v.SetDefault("api_url", defaultAPIURL)

	root := &cobra.Command{
		Use:           "portoo",
		Short:         "Build and publish portoo portfolios from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", defaultAPIURL, "portoo API base URL (env PORTOO_API_URL)")
	root.PersistentFlags().Bool("verbose", false, "log each upload and API call")
	_ = a.v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newSlugCmd(),
		newCropCmd(),
		newCheckCmd(a),
		newSuggestCmd(a),
		newSubmitCmd(a),
		newEditCmd(a),
	)
	return root
}

// client loads the session from PORTOO_TOKEN and returns an API client
func (a *app) client(ctx context.Context) (*client.Client, error) {
	session := client.NewSession()
	if err := session.Load(ctx, client.EnvToken(tokenEnv)); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return client.New(a.v.GetString("api_url"), session), nil
}

func (a *app) logger() *logger.Logger {
	if !a.v.GetBool("verbose") {
		return logger.NewNop()
	}
	log, err := logger.New("development", "debug")
	if err != nil {
		return logger.NewNop()
	}
	return log
}
