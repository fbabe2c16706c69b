// msisparm manages binary coefficient tables: generates the built-in
// default table and inspects existing table files.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	msis "github.com/ackellerman/gomsis"
)

var flagOut string

func runGen(cmd *cobra.Command, args []string) error {
	p := msis.DefaultParameters()
	if err := p.Save(flagOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (version %d, %dx%d)\n",
		flagOut, p.Version(), msis.NumRows, msis.NumBasis)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := msis.LoadParameters(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "  version  %d\n", p.Version())
	fmt.Fprintf(cmd.OutOrStdout(), "  rows     %d\n", msis.NumRows)
	fmt.Fprintf(cmd.OutOrStdout(), "  columns  %d\n", msis.NumBasis)

	// A coarse health check of the resident table: evaluate a quiet
	// mid-latitude point and report the headline numbers.
	m, err := msis.New(args[0])
	if err != nil {
		return err
	}
	out, err := m.Evaluate(msis.Input{
		DayOfYear: 80,
		AltKm:     400,
		LatDeg:    45,
		LST:       12,
		F107A:     150,
		F107:      150,
		Ap:        4,
	}, msis.MaskAll)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  check    T(400km)=%.1fK Tex=%.1fK rho=%.3e g/cm^3\n",
		out.Temperature, out.ExosphericTemperature, out.MassDensity)
	if math.IsNaN(out.MassDensity) || out.MassDensity <= 0 {
		return fmt.Errorf("table sanity check failed: mass density %v", out.MassDensity)
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:           "msisparm",
		Short:         "Manage neutral-atmosphere coefficient tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	gen := &cobra.Command{
		Use:   "gen",
		Short: "Write the built-in default coefficient table",
		Args:  cobra.NoArgs,
		RunE:  runGen,
	}
	gen.Flags().StringVarP(&flagOut, "out", "o", "msis.parm.gz", "output path (.gz compresses)")

	info := &cobra.Command{
		Use:   "info FILE",
		Short: "Inspect a coefficient table",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	root.AddCommand(gen, info)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "msisparm: %v\n", err)
		os.Exit(1)
	}
}
