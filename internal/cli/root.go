/*
 * root.go, part of gochemkit.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package cli implements the gochemkit command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmera/gochemkit/internal/config"
	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

//RootOptions holds the global flags and the state shared by the subcommands,
//built before any of them runs.
type RootOptions struct {
	ConfigFile string
	Backend    string
	LogLevel   string

	cfg *config.Config
	log logging.Logger
	tk  *toolkit.Toolkit
}

//NewRootCommand creates the root command of gochemkit.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "gochemkit",
		Short: "gochemkit - molecules, hydrogens and feature tables",
		Long: `gochemkit reads small molecules and proteins (SMILES, SDF, PDB, mmCIF, XYZ),
adds or removes hydrogens, computes atom and residue feature tables and checks
them against stored golden snapshots.

Settings are read from an optional YAML file (--config) and from GOCHEMKIT_*
environment variables. The flags take precedence over both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				opts.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVarP(&opts.Backend, "backend", "b", "", "toolkit backend (ob|rdk), overrides the configuration")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides the configuration")

	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewFeaturesCommand(opts))
	cmd.AddCommand(NewGoldenCommand(opts))
	cmd.AddCommand(NewSSCommand(opts))
	cmd.AddCommand(NewRamaCommand(opts))
	return cmd
}

//init loads the configuration, applies the flag overrides and builds the
//logger and the toolkit.
func (o *RootOptions) init() error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	tk, err := toolkit.New(cfg.Backend, toolkit.WithLogger(log))
	if err != nil {
		return err
	}
	o.cfg, o.log, o.tk = cfg, log, tk
	return nil
}

//Execute runs the root command with the arguments of the process.
func Execute() error {
	return NewRootCommand().Execute()
}
