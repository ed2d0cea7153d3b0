/*
 *  cmd.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"context"
	"fmt"
	"os"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrDifferent is returned by the compare command when the inputs differ
var ErrDifferent = errors.New("inputs are not equivalent")

// banner prints the separate steps
func banner(message string) {
	message = "* " + message + " *"
	log.Noticef(strings.Repeat("*", len(message)))
	log.Noticef(message)
	log.Noticef(strings.Repeat("*", len(message)))
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:     "unicanon",
		Short:   "Canonical form of assembled unitigs for byte-level comparison",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.NOTICE
			if verbose {
				level = logging.DEBUG
			}
			logging.SetLevel(level, "unicanon")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug messages")
	root.AddCommand(newCanonicalizeCmd(), newStatsCmd(), newCompareCmd())
	return root
}

func newCanonicalizeCmd() *cobra.Command {
	c := &Canonicalizer{}
	cmd := &cobra.Command{
		Use:   "canonicalize <input> <output>",
		Short: "Rewrite unitigs into canonical orientation, rotation and order",
		Long: `
Canonicalize function:
Every sequence is replaced by the smaller of itself and its reverse
complement. Sequences whose first and last k-1 bases agree are cycles, and
all their rotations compete too. The records are then sorted by sequence, so
two assemblies of the same unitigs produce identical files.

With --links, headers must be ">idx [L:+:idx:-]*" with one sequence line per
record. Indices and link orientations are rewritten to follow the new order.

Inputs ending in .lz4, .zst, .bgz or .gz are decompressed; the output
is compressed the same way.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Input, c.Output = args[0], args[1]
			banner("canonicalize " + c.Input)
			res, err := c.Run(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), StatsHeader)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Output, res.Stats)
			return nil
		},
	}
	cmd.Flags().IntVarP(&c.K, "kval", "k", DefaultK, "k-mer size used to build the unitigs")
	cmd.Flags().BoolVarP(&c.Links, "links", "l", false, "Renumber L: link tokens in the headers")
	cmd.Flags().BoolVarP(&c.Force, "force", "f", false, "Overwrite an existing output")
	cmd.Flags().IntVarP(&c.Workers, "threads", "t", DefaultWorkers(), "Number of worker threads")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "stats <fasta>...",
		Short: "Report unitig count, bases, k-mers and N50",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), StatsHeader)
			for _, filename := range args {
				st, err := FileStats(filename, k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", filename, st)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "kval", "k", DefaultK, "k-mer size used to count k-mers")
	return cmd
}

func newCompareCmd() *cobra.Command {
	r := &Comparer{}
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Check whether two unitig files are equivalent after canonicalization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r.A, r.B = args[0], args[1]
			same, err := r.Run(context.Background())
			if err != nil {
				return err
			}
			if !same {
				fmt.Fprintln(cmd.OutOrStdout(), "different")
				return ErrDifferent
			}
			fmt.Fprintln(cmd.OutOrStdout(), "identical")
			return nil
		},
	}
	cmd.Flags().IntVarP(&r.K, "kval", "k", DefaultK, "k-mer size used to build the unitigs")
	cmd.Flags().BoolVarP(&r.Links, "links", "l", false, "Renumber L: link tokens in the headers")
	cmd.Flags().IntVarP(&r.Workers, "threads", "t", DefaultWorkers(), "Number of worker threads")
	return cmd
}

// Execute runs the command line against os.Args
func Execute() error {
	root := NewRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		log.Errorf("%v", err)
		return err
	}
	return nil
}
