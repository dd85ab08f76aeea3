package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var a *app

	root := &cobra.Command{
		Use:           "frctl",
		Short:         "FirstResponse humanitarian toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(cmd, flags)
			return err
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api", "", "API base URL (overrides API_BASE_URL)")
	pf.StringVar(&flags.sessionFile, "session-file", "", "session file (overrides SESSION_FILE)")
	pf.BoolVar(&flags.noDemo, "no-demo", false, "fail instead of showing demo data when the API is unreachable")
	pf.BoolVar(&flags.jsonOut, "json", false, "print results as JSON")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log requests to stderr")

	get := func() *app { return a }
	root.AddCommand(
		newLoginCmd(get),
		newOTPCmd(get),
		newStatusCmd(get),
		newSignOutCmd(get),
		newHealthCmd(get),
		newFirstAidCmd(get),
		newRationCmd(get),
		newRouteCmd(get),
		newScanCmd(get),
		newLangCmd(get),
	)
	return root
}
