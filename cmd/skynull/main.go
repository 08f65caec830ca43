package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"skynull/adapters/export"
	"skynull/adapters/ingest"
	"skynull/app"
	"skynull/domain/axis"
	"skynull/domain/geom"
	"skynull/domain/harmonics"
	"skynull/domain/parity"
	"skynull/domain/sphere"
	"skynull/internal"
	"skynull/internal/config"
	"skynull/ports"
)

var logger = internal.DefaultLogger

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment defaults")
	}

	rootCmd := &cobra.Command{
		Use:   "skynull",
		Short: "Null-hypothesis significance engine for large-angle sky anomalies",
	}

	rootCmd.AddCommand(
		newParityCmd(),
		newAxesCmd(),
		newQuasarCmd(),
		newColdspotCmd(),
		newScanCmd(),
		newSpectrumCmd(),
		newMockCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadField(cfg *config.Config, path string) (sphere.Field, error) {
	return ingest.NewMapFile(cfg.NSide).LoadField(path)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func writeReports(xlsxPath string, reports ...*app.Report) error {
	for _, r := range reports {
		if err := printJSON(r); err != nil {
			return err
		}
	}
	if xlsxPath == "" {
		return nil
	}
	if err := export.NewExcelWriter().Write(xlsxPath, reports); err != nil {
		return err
	}
	logger.Info("Workbook written to %s", xlsxPath)
	return nil
}

func newParityCmd() *cobra.Command {
	var xlsxPath string
	var tail string

	cmd := &cobra.Command{
		Use:   "parity [map-file]",
		Short: "Test even/odd multipole power asymmetry against rotation nulls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := loadField(cfg, args[0])
			if err != nil {
				return err
			}
			dir := ports.DirectionLess
			if tail == "greater" {
				dir = ports.DirectionGreater
			}
			battery := app.NewBattery(cfg)
			report, err := battery.Run(cmd.Context(), battery.ParityHypothesis(f, dir))
			if err != nil {
				return err
			}
			return writeReports(xlsxPath, report)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Optional workbook output path")
	cmd.Flags().StringVar(&tail, "tail", "less", "Extreme tail: less (odd preference) or greater")

	return cmd
}

func newAxesCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "axes [map-file]",
		Short: "Extract low-multipole axes and test their alignments",
		Long: `Extract the l=2 and l=3 principal axes, report their angles to the
reference directions, and test the mutual quadrupole-octopole alignment and
the quadrupole-ecliptic alignment against rotation nulls.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := loadField(cfg, args[0])
			if err != nil {
				return err
			}
			axisReport, err := axis.Analyze(f)
			if err != nil {
				return err
			}
			if err := printJSON(axisReport); err != nil {
				return err
			}

			battery := app.NewBattery(cfg)
			mutual, err := battery.Run(cmd.Context(), battery.MutualAxisHypothesis(f))
			if err != nil {
				return err
			}
			ecliptic, err := battery.Run(cmd.Context(),
				battery.AxisAlignmentHypothesis(f, 2, "ecliptic_pole", sphere.EclipticPole()))
			if err != nil {
				return err
			}
			return writeReports(xlsxPath, mutual, ecliptic)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Optional workbook output path")

	return cmd
}

func newQuasarCmd() *cobra.Command {
	var xlsxPath string
	var zMin float64
	var axisName string

	cmd := &cobra.Command{
		Use:   "quasar [catalog-csv]",
		Short: "Test catalog separation-vector alignment against spun catalogs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := ingest.NewCSVCatalog().LoadCatalog(args[0], zMin)
			if err != nil {
				return err
			}
			if cat.Len() > cfg.MaxCatalogObjects {
				logger.Info("Downsampling catalog from %d to %d objects", cat.Len(), cfg.MaxCatalogObjects)
				cat = geom.Downsample(cat, cfg.MaxCatalogObjects, cfg.Seed)
			}

			refs := map[string]sphere.Vec3{
				"solar_pole":    sphere.SolarPole(),
				"ecliptic_pole": sphere.EclipticPole(),
				"equinox":       sphere.VernalEquinox(),
			}
			axisVec, ok := refs[axisName]
			if !ok {
				return fmt.Errorf("unknown axis %q (accepted: solar_pole, ecliptic_pole, equinox)", axisName)
			}

			battery := app.NewBattery(cfg)
			report, err := battery.Run(cmd.Context(),
				battery.CatalogAlignmentHypothesis(cat, axisName, axisVec))
			if err != nil {
				return err
			}
			return writeReports(xlsxPath, report)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Optional workbook output path")
	cmd.Flags().Float64Var(&zMin, "zmin", 0.5, "Minimum redshift cut")
	cmd.Flags().StringVar(&axisName, "axis", "solar_pole", "Target axis for the correlation")

	return cmd
}

func newColdspotCmd() *cobra.Command {
	var fwhmDeg float64

	cmd := &cobra.Command{
		Use:   "coldspot [map-file]",
		Short: "Locate the southern cold spot and report its nodal alignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := loadField(cfg, args[0])
			if err != nil {
				return err
			}
			spot, err := geom.FindColdSpot(f, fwhmDeg)
			if err != nil {
				return err
			}
			return printJSON(spot)
		},
	}

	cmd.Flags().Float64Var(&fwhmDeg, "fwhm", 5.0, "Gaussian smoothing FWHM in degrees (0 disables)")

	return cmd
}

func newScanCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "scan [map-file]",
		Short: "Map the parity statistic over a coarse grid of sky directions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := loadField(cfg, args[0])
			if err != nil {
				return err
			}
			result, err := parity.Scan(cmd.Context(), f, cfg.ScanNSide, cfg.LMin, cfg.LMax, cfg.Workers)
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := ingest.NewMapFile(cfg.ScanNSide).WriteField(outPath, result); err != nil {
					return err
				}
				logger.Info("Scan map written to %s", outPath)
			}
			return printJSON(scanExtrema(result))
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the scan map to this path")

	return cmd
}

type scanSummary struct {
	MinValue float64 `json:"min_value"`
	MinRA    float64 `json:"min_ra_deg"`
	MinDec   float64 `json:"min_dec_deg"`
	MaxValue float64 `json:"max_value"`
	MaxRA    float64 `json:"max_ra_deg"`
	MaxDec   float64 `json:"max_dec_deg"`
}

func scanExtrema(f sphere.Field) *scanSummary {
	nside, err := f.NSide()
	if err != nil {
		return nil
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil
	}
	minPix, maxPix := -1, -1
	for i := range f {
		if !f.Seen(i) {
			continue
		}
		if minPix < 0 || f[i] < f[minPix] {
			minPix = i
		}
		if maxPix < 0 || f[i] > f[maxPix] {
			maxPix = i
		}
	}
	if minPix < 0 {
		return nil
	}
	out := &scanSummary{MinValue: f[minPix], MaxValue: f[maxPix]}
	out.MinRA, out.MinDec = s.PixToVec(minPix).RADec()
	out.MaxRA, out.MaxDec = s.PixToVec(maxPix).RADec()
	return out
}

func newSpectrumCmd() *cobra.Command {
	var lmax int

	cmd := &cobra.Command{
		Use:   "spectrum [map-file]",
		Short: "Print the angular power spectrum of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := loadField(cfg, args[0])
			if err != nil {
				return err
			}
			if lmax <= 0 {
				lmax = cfg.LMax
			}
			cl, err := harmonics.PowerSpectrum(f, lmax)
			if err != nil {
				return err
			}
			for l, v := range cl {
				fmt.Printf("%d\t%.10g\n", l, v)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lmax, "lmax", 0, "Maximum multipole (0 uses the configured band)")

	return cmd
}

func newMockCmd() *cobra.Command {
	var signalAmp float64
	var noiseAmp float64

	cmd := &cobra.Command{
		Use:   "mock [out-file]",
		Short: "Generate a synthetic sky for pipeline rehearsal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := ingest.MockField(ingest.MockOptions{
				NSide:     cfg.NSide,
				Seed:      cfg.Seed,
				NoiseAmp:  noiseAmp,
				SignalAmp: signalAmp,
			})
			if err != nil {
				return err
			}
			if err := ingest.NewMapFile(cfg.NSide).WriteField(args[0], f); err != nil {
				return err
			}
			logger.Info("Mock map written to %s", args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&signalAmp, "signal", 50, "Injected octopole amplitude (0 for pure noise)")
	cmd.Flags().Float64Var(&noiseAmp, "noise", 1, "Per-pixel Gaussian noise sigma")

	return cmd
}
