package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"firstresponse/config"
	"firstresponse/models"
	"firstresponse/services/auth"
	"firstresponse/services/geocode"
	"firstresponse/services/session"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNotSignedIn = errors.New("not signed in; run `frctl login` first")

// app is the state shared by every command after flags are parsed.
type app struct {
	cfg     config.Config
	sess    *session.Context
	api     *upstream.Client
	geo     *geocode.Client
	auth    *auth.Controller
	jsonOut bool
	out     io.Writer
}

type globalFlags struct {
	apiURL      string
	sessionFile string
	noDemo      bool
	jsonOut     bool
	verbose     bool
}

func newApp(cmd *cobra.Command, f *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.apiURL != "" {
		cfg.APIBaseURL = f.apiURL
	}
	if f.sessionFile != "" {
		cfg.SessionFile = f.sessionFile
	}
	if f.noDemo {
		cfg.DemoFallback = false
	}
	config.AppConfig = cfg

	if f.verbose {
		utils.InitializeLogger()
	} else {
		utils.SetLogger(zap.NewNop())
	}

	api := upstream.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout)
	return &app{
		cfg:     cfg,
		sess:    session.New(session.NewFileStore(cfg.SessionFile)),
		api:     api,
		geo:     geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocodeTimeout),
		auth:    auth.NewController(api, cfg.DemoFallback),
		jsonOut: f.jsonOut,
		out:     cmd.OutOrStdout(),
	}, nil
}

// token returns the stored auth token, the CLI's session guard.
func (a *app) token(ctx context.Context) (string, error) {
	tok, ok, err := a.sess.AuthToken(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNotSignedIn
	}
	return tok, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) demoNote(demo bool) {
	if demo {
		a.printf("(demo mode: backend unreachable, showing sample data)\n")
	}
}

func (a *app) printOutcome(out *models.AuthOutcome) error {
	if a.jsonOut {
		return a.printJSON(out)
	}
	a.printf("%s\n", out.Message)
	a.demoNote(out.Demo)
	return nil
}
