package reportconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/IgorBayerl/opcode_counter/internal/analyzer"
	"github.com/IgorBayerl/opcode_counter/internal/logging"
)

// IReportConfiguration defines the configuration for one opcode count run.
type IReportConfiguration interface {
	SourcePath() string
	Marker() string
	Limit() int
	VerbosityLevel() logging.VerbosityLevel
	LogFormat() logging.Format
}

// ReportConfiguration is a concrete implementation of IReportConfiguration.
type ReportConfiguration struct {
	SrcPath  string
	OpMarker string
	OpLimit  int
	VLevel   logging.VerbosityLevel
	LFormat  logging.Format
}

func (rc *ReportConfiguration) SourcePath() string                     { return rc.SrcPath }
func (rc *ReportConfiguration) Marker() string                         { return rc.OpMarker }
func (rc *ReportConfiguration) Limit() int                             { return rc.OpLimit }
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.VLevel }
func (rc *ReportConfiguration) LogFormat() logging.Format              { return rc.LFormat }

// NewReportConfiguration returns a configuration with the built-in defaults:
// src/opcodes.h, the PVM_OP_ marker and the one-byte limit.
func NewReportConfiguration(verbosity logging.VerbosityLevel, format logging.Format) *ReportConfiguration {
	if format == "" {
		format = logging.FormatTerminal
	}
	return &ReportConfiguration{
		SrcPath:  analyzer.DefaultPath,
		OpMarker: analyzer.DefaultMarker,
		OpLimit:  analyzer.ByteLimit,
		VLevel:   verbosity,
		LFormat:  format,
	}
}

// fileConfig mirrors the TOML config file. Pointer fields tell a key that is
// absent from one that is set to its zero value.
type fileConfig struct {
	Path   *string `toml:"path"`
	Marker *string `toml:"marker"`
	Limit  *int    `toml:"limit"`
}

// ApplyFile overlays the keys present in the TOML file at path onto rc.
// Unknown keys are rejected so a typo does not silently fall back to a default.
func (rc *ReportConfiguration) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	if fc.Path != nil {
		rc.SrcPath = *fc.Path
	}
	if fc.Marker != nil {
		rc.OpMarker = *fc.Marker
	}
	if fc.Limit != nil {
		rc.OpLimit = *fc.Limit
	}
	return rc.Validate()
}

// SetSourcePath overrides the path to scan. The value is taken as given, an
// empty path included; callers that have no path should not call it.
func (rc *ReportConfiguration) SetSourcePath(path string) {
	rc.SrcPath = path
}

// Validate checks the values the counter cannot work with.
func (rc *ReportConfiguration) Validate() error {
	if rc.OpMarker == "" {
		return fmt.Errorf("invalid configuration: %w", analyzer.ErrEmptyMarker)
	}
	if rc.OpLimit < 0 {
		return fmt.Errorf("invalid configuration: %w", analyzer.ErrNegativeLimit)
	}
	return nil
}

// CounterOptions translates a configuration into analyzer options.
func CounterOptions(cfg IReportConfiguration) []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithMarker(cfg.Marker()),
		analyzer.WithLimit(cfg.Limit()),
	}
}
