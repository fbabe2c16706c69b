// msiscalc evaluates the atmosphere model at query points: a single point
// from flags, or a bulk table read from a whitespace-delimited text file.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	msis "github.com/ackellerman/gomsis"
)

var (
	flagParm    string
	flagDefault bool
	flagVerbose bool

	flagNoSeasonal bool
	flagNoTides    bool
	flagNoWaves    bool
	flagNoSolar    bool
	flagNoGeomag   bool

	in msis.Input
)

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

func newModel() (*msis.Model, error) {
	sw := msis.DefaultSwitches()
	sw.IntraAnnual = !flagNoSeasonal
	sw.Tides = !flagNoTides
	sw.PlanetaryWaves = !flagNoWaves
	sw.SolarFlux = !flagNoSolar
	sw.Geomagnetic = !flagNoGeomag

	opts := []msis.Option{
		msis.WithSwitches(sw),
		msis.WithLogger(newLogger()),
	}
	if flagDefault || flagParm == "" {
		opts = append(opts, msis.WithDefaultParameters())
	}
	return msis.New(flagParm, opts...)
}

func printOutput(w *bufio.Writer, out msis.Output) {
	fmt.Fprintf(w, "Temperature      %10.2f K\n", out.Temperature)
	fmt.Fprintf(w, "Exospheric temp  %10.2f K\n", out.ExosphericTemperature)
	for s := msis.Species(0); int(s) < msis.NumSpecies; s++ {
		fmt.Fprintf(w, "n(%-6s)        %14.6e cm^-3\n", s, out.Densities[s])
	}
	fmt.Fprintf(w, "Mass density     %14.6e g/cm^3\n", out.MassDensity)
}

func runPoint(cmd *cobra.Command, args []string) error {
	m, err := newModel()
	if err != nil {
		return err
	}
	out, err := m.Evaluate(in, msis.MaskAll)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	printOutput(w, out)
	return w.Flush()
}

// bulk table columns: doy ut alt lat lon lst f107a f107 ap
const bulkColumns = 9

func parseBulkLine(line string) (msis.Input, error) {
	fields := strings.Fields(line)
	if len(fields) != bulkColumns {
		return msis.Input{}, fmt.Errorf("want %d columns, got %d", bulkColumns, len(fields))
	}
	vals := make([]float64, bulkColumns)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return msis.Input{}, fmt.Errorf("column %d: %v", i+1, err)
		}
		vals[i] = v
	}
	return msis.Input{
		DayOfYear: vals[0],
		UTSeconds: vals[1],
		AltKm:     vals[2],
		LatDeg:    vals[3],
		LonDeg:    vals[4],
		LST:       vals[5],
		F107A:     vals[6],
		F107:      vals[7],
		Ap:        vals[8],
	}, nil
}

func runTable(cmd *cobra.Command, args []string) error {
	m, err := newModel()
	if err != nil {
		return err
	}

	inFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer inFile.Close()
	outFile, err := os.Create(args[1])
	if err != nil {
		return err
	}
	w := bufio.NewWriter(outFile)

	lineNo := 0
	sc := bufio.NewScanner(inFile)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		q, err := parseBulkLine(line)
		if err != nil {
			outFile.Close()
			return fmt.Errorf("%s:%d: %v", args[0], lineNo, err)
		}
		out, err := m.Evaluate(q, msis.MaskAll)
		if err != nil {
			outFile.Close()
			return fmt.Errorf("%s:%d: %v", args[0], lineNo, err)
		}
		fmt.Fprintf(w, "%s %9.2f", line, out.Temperature)
		for s := msis.Species(0); int(s) < msis.NumSpecies; s++ {
			fmt.Fprintf(w, " %13.6e", out.Densities[s])
		}
		fmt.Fprintf(w, " %13.6e\n", out.MassDensity)
	}
	if err := sc.Err(); err != nil {
		outFile.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

func main() {
	root := &cobra.Command{
		Use:           "msiscalc",
		Short:         "Evaluate the neutral-atmosphere model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagParm, "parm", "", "coefficient table path (.parm or .parm.gz)")
	root.PersistentFlags().BoolVar(&flagDefault, "default", false, "use the built-in coefficient table")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable logging")
	root.PersistentFlags().BoolVar(&flagNoSeasonal, "no-seasonal", false, "disable annual/semiannual variation")
	root.PersistentFlags().BoolVar(&flagNoTides, "no-tides", false, "disable migrating tides")
	root.PersistentFlags().BoolVar(&flagNoWaves, "no-waves", false, "disable stationary planetary waves")
	root.PersistentFlags().BoolVar(&flagNoSolar, "no-solar", false, "disable solar-flux dependence")
	root.PersistentFlags().BoolVar(&flagNoGeomag, "no-geomag", false, "disable geomagnetic-activity dependence")

	point := &cobra.Command{
		Use:   "point",
		Short: "Evaluate a single query point",
		Args:  cobra.NoArgs,
		RunE:  runPoint,
	}
	point.Flags().Float64Var(&in.DayOfYear, "doy", 172, "day of year (1..366)")
	point.Flags().Float64Var(&in.UTSeconds, "ut", 43200, "universal time, seconds of day")
	point.Flags().Float64Var(&in.AltKm, "alt", 400, "geodetic altitude, km")
	point.Flags().Float64Var(&in.LatDeg, "lat", 0, "geodetic latitude, degrees")
	point.Flags().Float64Var(&in.LonDeg, "lon", 0, "geodetic longitude, degrees")
	point.Flags().Float64Var(&in.LST, "lst", -1, "local solar time, hours (negative: derive from ut and lon)")
	point.Flags().Float64Var(&in.F107A, "f107a", 150, "81-day average F10.7, sfu")
	point.Flags().Float64Var(&in.F107, "f107", 150, "previous-day F10.7, sfu")
	point.Flags().Float64Var(&in.Ap, "ap", 4, "daily Ap index")

	table := &cobra.Command{
		Use:   "table IN OUT",
		Short: "Evaluate a bulk table (columns: doy ut alt lat lon lst f107a f107 ap)",
		Args:  cobra.ExactArgs(2),
		RunE:  runTable,
	}

	root.AddCommand(point, table)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "msiscalc: %v\n", err)
		os.Exit(1)
	}
}
