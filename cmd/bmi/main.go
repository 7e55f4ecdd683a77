// Package main is the entry point of the bmi binary.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gobd/querycheck"
	"github.com/Gobd/querycheck/bmi"
	"github.com/Gobd/querycheck/internal/api"
	"github.com/Gobd/querycheck/internal/config"
	"github.com/Gobd/querycheck/internal/logger"
	"github.com/Gobd/querycheck/internal/server"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// errRejected is returned by calc when the input fails validation. The
// failures themselves are already printed.
var errRejected = errors.New("invalid input")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bmi",
		Short:         "Body Mass Index calculator",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(), newCalcCmd(), newOpenAPICmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the BMI API over HTTP",
		Long: `Serve the BMI API over HTTP until SIGINT or SIGTERM.

Configuration is read from BMI_ variables (and a .env file), for example:
  BMI_SERVER_PORT=3000 BMI_ADMIN_ADDR=127.0.0.1:9090 bmi serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cmd.ErrOrStderr(), cfg.Logging, cfg.Env)

			srv, err := server.New(cfg, log, Version)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Validate input and print the BMI as JSON",
		Example: `  bmi calc --height 170 --weight 70
  {"bmi":24.22,"label":"normal"}`,
		Args: cobra.NoArgs,
		RunE: runCalc,
	}

	cmd.Flags().String("height", "", "Height in centimetres")
	cmd.Flags().String("weight", "", "Weight in kilograms")
	return cmd
}

func runCalc(cmd *cobra.Command, _ []string) error {
	src := querycheck.MapSource{}
	for _, name := range []string{"height", "weight"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		src[name] = value
	}

	res := api.NewBMIValidator().Validate(src)
	if !res.Passed {
		fmt.Fprintln(cmd.OutOrStdout(), api.ErrorPrefix)
		fmt.Fprintln(cmd.OutOrStdout(), res.ErrorMessage())
		return errRejected
	}

	height, err := querycheck.Float(src, "height")
	if err != nil {
		return err
	}
	weight, err := querycheck.Float(src, "weight")
	if err != nil {
		return err
	}
	out, err := bmi.Compute(height, weight)
	if err != nil {
		return err
	}

	return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
}

func newOpenAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := api.Document(Version)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}
