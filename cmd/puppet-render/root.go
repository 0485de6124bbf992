package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phanxgames/puppet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setDefaults registers every config key with its default value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("out", "puppet.svg")
	v.SetDefault("format", "")
	v.SetDefault("width", 800)
	v.SetDefault("height", 400)
	v.SetDefault("scale", 50.0)
	v.SetDefault("views", []string{"front", "side"})
	v.SetDefault("pose", []string{})
	v.SetDefault("script", "")
	v.SetDefault("max_frames", 3600)
	v.SetDefault("snapshot_dir", "snapshots")
	v.SetDefault("stroke_width", 1.0)
	v.SetDefault("supersample", 2)
	v.SetDefault("fit", false)
	v.SetDefault("debug", false)
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "puppet-render",
		Short: "Render a posed stick figure",
		Long: `puppet-render builds the humanoid skeleton, applies pose edits and
writes one projected view per entry of --views side by side.

Pose edits use joint.axis=degrees, e.g.:
  puppet-render --pose leftLowerLeg.y=45 --pose center.z=30 -o fig.png

The output format follows --format, or the output file extension.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg.Debug)
			return render(cfg, logger)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML)")
	_ = v.BindPFlag("config", flags.Lookup("config"))

	f := cmd.Flags()
	f.StringP("out", "o", "puppet.svg", "output file")
	f.String("format", "", "output format: svg, png or webp (default: from --out extension)")
	f.Int("width", 800, "output width in pixels")
	f.Int("height", 400, "output height in pixels")
	f.Float64("scale", 50, "pixels per world unit")
	f.StringSlice("views", []string{"front", "side"}, "views to draw left to right: front, side, top")
	f.StringArray("pose", nil, "pose edit joint.axis=degrees (repeatable)")
	f.String("script", "", "JSON pose script to play before writing the output")
	f.Int("max-frames", 3600, "frame limit for --script")
	f.String("snapshot-dir", "snapshots", "directory for script snapshots")
	f.Float64("stroke-width", 1, "stroke width in pixels")
	f.Int("supersample", 2, "raster supersampling factor")
	f.Bool("fit", false, "scale each view to frame the posed figure (ignores --scale)")
	f.Bool("debug", false, "log per-pass timings")
	for _, key := range []string{"out", "format", "width", "height", "scale", "views", "pose", "script", "supersample", "fit", "debug"} {
		_ = v.BindPFlag(key, f.Lookup(key))
	}
	_ = v.BindPFlag("max_frames", f.Lookup("max-frames"))
	_ = v.BindPFlag("snapshot_dir", f.Lookup("snapshot-dir"))
	_ = v.BindPFlag("stroke_width", f.Lookup("stroke-width"))

	cmd.AddCommand(newJointsCmd())
	return cmd
}

func initConfig(v *viper.Viper) error {
	setDefaults(v)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PUPPET")
	// PUPPET_STROKE_WIDTH for stroke_width
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	return nil
}

// renderConfig is the resolved configuration of one render.
type renderConfig struct {
	Out         string
	Format      string
	Width       int
	Height      int
	Scale       float64
	Views       []string
	Pose        []poseEdit
	Script      string
	MaxFrames   int
	SnapshotDir string
	StrokeWidth float64
	Supersample int
	Fit         bool
	Debug       bool
}

func loadConfig(v *viper.Viper) (renderConfig, error) {
	cfg := renderConfig{
		Out:         v.GetString("out"),
		Format:      strings.ToLower(v.GetString("format")),
		Width:       v.GetInt("width"),
		Height:      v.GetInt("height"),
		Scale:       v.GetFloat64("scale"),
		Views:       v.GetStringSlice("views"),
		Script:      v.GetString("script"),
		MaxFrames:   v.GetInt("max_frames"),
		SnapshotDir: v.GetString("snapshot_dir"),
		StrokeWidth: v.GetFloat64("stroke_width"),
		Supersample: v.GetInt("supersample"),
		Fit:         v.GetBool("fit"),
		Debug:       v.GetBool("debug"),
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Scale <= 0 {
		return cfg, fmt.Errorf("invalid scale %v", cfg.Scale)
	}
	if len(cfg.Views) == 0 {
		return cfg, fmt.Errorf("no views")
	}
	if cfg.Format == "" {
		cfg.Format = formatFromPath(cfg.Out)
	}
	switch cfg.Format {
	case "svg", "png", "webp":
	default:
		return cfg, fmt.Errorf("unknown format %q", cfg.Format)
	}
	for _, s := range v.GetStringSlice("pose") {
		e, err := parsePoseEdit(s)
		if err != nil {
			return cfg, err
		}
		cfg.Pose = append(cfg.Pose, e)
	}
	return cfg, nil
}

func formatFromPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		switch ext := strings.ToLower(path[i+1:]); ext {
		case "png", "webp":
			return ext
		}
	}
	return "svg"
}

// poseEdit is one parsed --pose value.
type poseEdit struct {
	Joint   string
	Axis    puppet.Axis
	Degrees float64
}

// parsePoseEdit parses "joint.axis=degrees".
func parsePoseEdit(s string) (poseEdit, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return poseEdit{}, fmt.Errorf("pose %q: want joint.axis=degrees", s)
	}
	dot := strings.LastIndexByte(lhs, '.')
	if dot <= 0 {
		return poseEdit{}, fmt.Errorf("pose %q: want joint.axis=degrees", s)
	}
	axis, err := puppet.ParseAxis(lhs[dot+1:])
	if err != nil {
		return poseEdit{}, fmt.Errorf("pose %q: %w", s, err)
	}
	var deg float64
	if _, err := fmt.Sscan(strings.TrimSpace(rhs), &deg); err != nil {
		return poseEdit{}, fmt.Errorf("pose %q: bad degrees: %w", s, err)
	}
	return poseEdit{Joint: strings.TrimSpace(lhs[:dot]), Axis: axis, Degrees: deg}, nil
}

func newLogger(cmd *cobra.Command, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func newJointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "joints",
		Short: "List the humanoid's joint names and controls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := puppet.NewFigure(puppet.NewHumanoid())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range fig.JointNames() {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Controls:")
			for _, c := range puppet.HumanoidControls() {
				fmt.Fprintf(out, "  %-16s %s.%s\n", c.Name, c.Joint, c.Axis)
			}
			return nil
		},
	}
}
