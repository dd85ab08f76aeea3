package main

import (
	"bufio"
	"fmt"
	"strings"

	"firstresponse/models"
	"firstresponse/services/auth"

	"github.com/spf13/cobra"
)

func newLoginCmd(get func() *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; a device code is requested next",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			out, err := a.auth.Login(cmd.Context(), a.sess, models.LoginCredentials{Username: username, Password: password})
			if err != nil {
				return err
			}
			return a.printOutcome(out)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newOTPCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "otp <code>",
		Short: "Verify the 6-digit device code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			in := &auth.OTPInput{}
			in.Paste(args[0])
			code := in.Code()
			if !in.Complete() {
				code = args[0]
			}
			out, err := a.auth.VerifyOTP(cmd.Context(), a.sess, code)
			if err != nil {
				return err
			}
			return a.printOutcome(out)
		},
	}
}

func newStatusCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sign-in state and preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			s, err := a.sess.Load(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{"state": s.State(), "username": s.Username, "language": s.Language})
			}
			a.printf("state:    %s\n", s.State())
			if s.Username != "" {
				a.printf("username: %s\n", s.Username)
			}
			a.printf("language: %s\n", s.Language)
			return nil
		},
	}
}

func newSignOutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the auth token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.auth.SignOut(cmd.Context(), a.sess); err != nil {
				return err
			}
			a.printf("Signed out.\n")
			return nil
		},
	}
}
