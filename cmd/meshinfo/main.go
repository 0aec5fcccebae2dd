// Command meshinfo loads an OBJ file into a lazymesh mesh and prints, as
// YAML, what the file holds, what the mesh stored and, optionally, what
// survives a conversion to another mesh type.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/edwinsyarief/lazymesh"
	"github.com/edwinsyarief/lazymesh/obj"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document printed by meshinfo.
type Report struct {
	File       string                 `yaml:"file"`
	Check      string                 `yaml:"check,omitempty"`
	Conversion *Conversion            `yaml:"conversion,omitempty"`
	Content    lazymesh.Info          `yaml:"content"`
	Mesh       lazymesh.Info          `yaml:"mesh"`
	Enabled    []lazymesh.ImportEntry `yaml:"enabled,omitempty"`
}

// Conversion describes the import of the loaded mesh into another type.
type Conversion struct {
	To     string                `yaml:"to"`
	Mesh   lazymesh.Info         `yaml:"mesh"`
	Report lazymesh.ImportReport `yaml:"report"`
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := DefaultConfig()
	var configPath string
	cmd := &cobra.Command{
		Use:          "meshinfo [flags] file.obj",
		Short:        "Describe the mesh stored in an OBJ file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileCfg, err := LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = mergeFlags(cmd, fileCfg, cfg)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
			rep, err := run(args[0], cfg, logger)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(rep); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&configPath, "config", "", "TOML file with default settings")
	fl.StringVarP(&cfg.MeshType, "type", "t", cfg.MeshType, "mesh type to load into: tri or poly")
	fl.StringVar(&cfg.Convert, "convert", cfg.Convert, "also import the mesh into this mesh type: tri or poly")
	fl.BoolVar(&cfg.Compact, "compact", cfg.Compact, "compact the mesh before reporting")
	fl.BoolVar(&cfg.EnableAll, "enable-all", cfg.EnableAll, "enable every optional component before loading")
	fl.BoolVar(&cfg.Check, "check", cfg.Check, "verify every stored reference")
	fl.CountVarP(&cfg.Verbose, "verbose", "v", "log more (-vv for debug)")
	fl.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "only log errors")
	return cmd
}

// mergeFlags returns file with every explicitly set flag applied.
func mergeFlags(cmd *cobra.Command, file, flags Config) Config {
	fl := cmd.Flags()
	if fl.Changed("type") {
		file.MeshType = flags.MeshType
	}
	if fl.Changed("convert") {
		file.Convert = flags.Convert
	}
	if fl.Changed("compact") {
		file.Compact = flags.Compact
	}
	if fl.Changed("enable-all") {
		file.EnableAll = flags.EnableAll
	}
	if fl.Changed("check") {
		file.Check = flags.Check
	}
	if fl.Changed("verbose") {
		file.Verbose = flags.Verbose
	}
	if fl.Changed("quiet") {
		file.Quiet = flags.Quiet
	}
	return file
}

func newMesh(kind string, logger *slog.Logger) *lazymesh.Mesh {
	opts := lazymesh.Options{Logger: logger}
	if kind == "poly" {
		return lazymesh.NewPolyMesh(opts)
	}
	return lazymesh.NewTriMesh(opts)
}

func run(path string, cfg Config, logger *slog.Logger) (Report, error) {
	rep := Report{File: path}
	m := newMesh(cfg.MeshType, logger)
	if cfg.EnableAll {
		m.EnableAllOptionalComponents()
	}
	var enabled []lazymesh.ImportEntry
	lazymesh.Subscribe(m.Bus(), func(e lazymesh.ComponentToggled) {
		if e.Enabled {
			enabled = append(enabled, lazymesh.ImportEntry{Kind: e.Kind, Component: e.Component, Status: lazymesh.Enabled})
		}
	})
	f, err := os.Open(path)
	if err != nil {
		return rep, err
	}
	defer f.Close()
	info, err := obj.Read(f, m, obj.ReadOptions{Logger: logger})
	if err != nil {
		return rep, fmt.Errorf("meshinfo: %s: %w", path, err)
	}
	rep.Content = info
	rep.Enabled = enabled
	if cfg.Compact {
		m.Compact()
	}
	rep.Mesh = lazymesh.InfoOf(m)
	if cfg.Check {
		rep.Check = "ok"
		if err := lazymesh.CheckReferences(m); err != nil {
			rep.Check = err.Error()
			logger.Warn("dangling references", "file", path, "err", err)
		}
	}
	if cfg.Convert != "" {
		dst := newMesh(cfg.Convert, logger)
		conv := dst.EnableSameOptionalComponentsOf(m)
		conv.Merge(dst.ImportFrom(m))
		rep.Conversion = &Conversion{To: cfg.Convert, Mesh: lazymesh.InfoOf(dst), Report: conv}
	}
	logger.Info("mesh loaded", "file", path, "vertices", m.Store(lazymesh.VertexKind).Live())
	return rep, nil
}
