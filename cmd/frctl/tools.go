package main

import (
	"os"
	"path/filepath"
	"strings"

	"firstresponse/models"
	"firstresponse/services/firstaid"
	"firstresponse/services/home"
	"firstresponse/services/rationing"
	"firstresponse/services/route"
	"firstresponse/services/scanner"
	"firstresponse/services/settings"

	"github.com/spf13/cobra"
)

func newHealthCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the API is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			tok, _, err := a.sess.AuthToken(cmd.Context())
			if err != nil {
				return err
			}
			health, demo := home.NewService(a.api, a.cfg.DemoFallback).CheckHealth(cmd.Context(), tok)
			if a.jsonOut {
				return a.printJSON(map[string]any{"health": health, "demo": demo})
			}
			a.printf("backend: %s\n", health)
			a.demoNote(demo)
			return nil
		},
	}
}

func newFirstAidCmd(get func() *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "first-aid <question>",
		Short: "Get first-aid guidance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()
			tok, err := a.token(ctx)
			if err != nil {
				return err
			}
			if lang == "" {
				if lang, err = a.sess.Language(ctx); err != nil {
					return err
				}
			}
			g, err := firstaid.NewService(a.api, a.cfg.DemoFallback).Ask(ctx, tok, strings.Join(args, " "), lang)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(g)
			}
			a.demoNote(g.Demo)
			for i, step := range g.Steps {
				a.printf("%d. %s\n", i+1, step)
			}
			if len(g.Checklist) > 0 {
				a.printf("\nChecklist:\n")
				for _, item := range g.Checklist {
					a.printf("- %s: %s (avoid: %s)\n", item.Action, item.HowTo, item.Avoid)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "answer language (en, hi, ar, es)")
	return cmd
}

func newRationCmd(get func() *app) *cobra.Command {
	var req models.RationingRequest
	cmd := &cobra.Command{
		Use:   "ration",
		Short: "Plan how to ration water, food and medicine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx := cmd.Context()
			tok, err := a.token(ctx)
			if err != nil {
				return err
			}
			if req.Lang, err = a.sess.Language(ctx); err != nil {
				return err
			}
			plan, err := rationing.NewService(a.api, a.cfg.DemoFallback).Analyze(ctx, tok, req)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(plan)
			}
			a.demoNote(plan.Demo)
			for _, line := range plan.Explanation {
				a.printf("%s\n", line)
			}
			a.printf("\n")
			for _, rs := range plan.ResourceStatus {
				a.printf("%-9s %-9s %s\n", rs.Resource, rs.Status, rs.Details)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&req.WaterLiters, "water", 0, "water available in liters")
	f.StringVar(&req.FoodItems, "food", "", "food items available")
	f.Float64Var(&req.MedicinesUnits, "medicine", 0, "medicine units available")
	f.IntVar(&req.PeopleCount, "people", 0, "number of people")
	f.IntVar(&req.DaysCount, "days", 0, "number of days")
	return cmd
}

func newRouteCmd(get func() *app) *cobra.Command {
	var req models.RouteRequest
	var sample bool
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find a safe walking route between two places",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx := cmd.Context()
			tok, err := a.token(ctx)
			if err != nil {
				return err
			}
			if sample {
				req = route.SampleRequest()
			}
			plan, err := route.NewOrchestrator(a.geo, a.api, a.cfg.DemoFallback).Plan(ctx, tok, req)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(plan)
			}
			a.demoNote(plan.Demo)
			a.printf("%s, about %s\n", plan.Summary, plan.Duration)
			a.printf("From: %s\nTo:   %s\n\n", plan.Start.DisplayName, plan.Destination.DisplayName)
			for i, s := range plan.Steps {
				street := ""
				if s.StreetName != "" {
					street = " on " + s.StreetName
				}
				a.printf("%2d. %s%s (%s, %s)\n", i+1, s.Text, street, s.Distance, s.Duration)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Region, "region", "", "region, e.g. karnataka")
	f.StringVar(&req.Start, "from", "", "start location")
	f.StringVar(&req.Destination, "to", "", "destination")
	f.BoolVar(&sample, "sample", false, "use the sample route")
	return cmd
}

func newScanCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "Check a flyer image for misinformation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()
			tok, err := a.token(ctx)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			svc := scanner.NewService(a.api, a.cfg.DemoFallback, a.cfg.MaxUploadBytes)
			res, err := svc.Scan(ctx, tok, &scanner.Upload{Filename: filepath.Base(args[0]), Body: f})
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(res)
			}
			a.demoNote(res.Demo)
			a.printf("Verdict: %s\n", res.Verdict)
			if res.Suspicious() {
				a.printf("Potential misinformation detected.\n")
			}
			a.printf("Reason:  %s\n\nExtracted text:\n%s\n", res.Reason, res.ExtractedText)
			return nil
		},
	}
}

func newLangCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()
			if len(args) == 1 {
				if err := settings.SetLanguage(ctx, a.sess, args[0]); err != nil {
					return err
				}
			}
			view, err := settings.View(ctx, a.sess)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(view)
			}
			for _, l := range view.Languages {
				mark := " "
				if l.Code == view.Language {
					mark = "*"
				}
				a.printf("%s %s  %s\n", mark, l.Code, l.Label)
			}
			return nil
		},
	}
}
