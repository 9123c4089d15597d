// Package config loads a search run's configuration from a JSON file whose
// top level holds a named map of device profiles (spec.md's `ds_configs`
// format) alongside the run's date/time window, IV rectangle, and
// execution knobs, with environment-variable overrides for the active
// profile name and a handful of per-field settings — the same layered
// JSON-then-env approach the hashing simulator's SimulatorConfig uses.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"seedhunter/internal/calendar"
	"seedhunter/internal/derive"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/seedhash"
)

// DeviceProfile is one named console identity from a config file's
// top-level "ds_configs" map, with the keys "version", "timer0", "mac" and
// "is_dslite". "timer0" is read as a JSON number only, and "mac" as a
// colon-separated string of six hex octets only; a hex-string timer0 or a
// numeric mac fails to decode.
type DeviceProfile struct {
	Version  string `json:"version"`
	Timer0   uint16 `json:"timer0"`
	MAC      string `json:"mac"` // "AA:BB:CC:DD:EE:FF"
	IsDSLite bool   `json:"is_dslite"`
}

// DefaultDeviceProfile is the profile a config file's single implicit
// "default" entry resolves to when no file is given at all.
func DefaultDeviceProfile() DeviceProfile {
	return DeviceProfile{
		Version: "White2",
		Timer0:  0x0c79,
		MAC:     "00:00:00:00:00:00",
	}
}

// BuildDSConfig constructs the seedhash.DSConfig this profile describes.
func (p DeviceProfile) BuildDSConfig() (seedhash.DSConfig, error) {
	version, err := ParseVersion(p.Version)
	if err != nil {
		return seedhash.DSConfig{}, err
	}
	mac, err := ParseMAC(p.MAC)
	if err != nil {
		return seedhash.DSConfig{}, err
	}
	return seedhash.DSConfig{
		Version:  version,
		Timer0:   p.Timer0,
		MAC:      mac,
		IsDSLite: p.IsDSLite,
	}, nil
}

// RunConfig is the rest of a search run's settings: the fields a config
// file carries alongside its "ds_configs" profile map. These are additive
// to spec.md's documented external format, not part of the profile map
// itself.
type RunConfig struct {
	StartDate string   `json:"start_date"` // "YYYY-MM-DD"
	EndDate   string   `json:"end_date"`
	Times     []string `json:"times"` // "HH:MM:SS"

	FrameOffset uint8    `json:"frame_offset"`
	IVMin       [6]uint8 `json:"iv_min"`
	IVMax       [6]uint8 `json:"iv_max"`

	OffsetRecipe string `json:"offset_recipe"`

	BatchSize     int `json:"batch_size"`
	PipelineDepth int `json:"pipeline_depth"`
	Workers       int `json:"workers"`

	WeekdayWrap string `json:"weekday_wrap"` // "93" or "94"

	LogLevel string `json:"log_level"`
}

// DefaultRunConfig returns the run settings the CLI falls back to when no
// file or flags are supplied.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		StartDate:     "2000-01-01",
		EndDate:       "2000-01-01",
		Times:         []string{"00:00:00"},
		FrameOffset:   0,
		IVMax:         [6]uint8{31, 31, 31, 31, 31, 31},
		OffsetRecipe:  "BW2Continue",
		BatchSize:     256,
		PipelineDepth: 2,
		Workers:       0,
		WeekdayWrap:   "93",
		LogLevel:      "info",
	}
}

// Configs is a config file's full top-level document: spec.md's
// `{"ds_configs": {"<profile>": {...}}}` device-profile map, plus the
// sibling run settings an actual search needs.
type Configs struct {
	DSConfigs map[string]DeviceProfile `json:"ds_configs"`
	RunConfig
}

// Default returns the Configs the CLI falls back to when no file is
// given: a single "default" profile plus the default run settings.
func Default() *Configs {
	return &Configs{
		DSConfigs: map[string]DeviceProfile{"default": DefaultDeviceProfile()},
		RunConfig: DefaultRunConfig(),
	}
}

// Load reads Configs from a JSON file at path, then applies any
// SEEDHUNTER_* run-level environment overrides. An empty path returns
// Default(). Per-profile overrides (version/timer0/mac) are applied later,
// by Profile, once a profile name is known.
func Load(path string) (*Configs, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg = &Configs{RunConfig: DefaultRunConfig()}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if len(cfg.DSConfigs) == 0 {
			return nil, fmt.Errorf("config: %s has no ds_configs profiles", path)
		}
	}
	applyRunEnvOverrides(&cfg.RunConfig)
	return cfg, nil
}

// Profile selects one named device profile. An empty name consults
// SEEDHUNTER_PROFILE; if that is also unset, a Configs with exactly one
// profile uses it implicitly, and one with several is an error (the
// caller must say which). SEEDHUNTER_VERSION/SEEDHUNTER_TIMER0/
// SEEDHUNTER_MAC override fields on whichever profile is selected.
func (c *Configs) Profile(name string) (DeviceProfile, error) {
	if name == "" {
		name = os.Getenv("SEEDHUNTER_PROFILE")
	}
	if name == "" {
		if len(c.DSConfigs) != 1 {
			return DeviceProfile{}, fmt.Errorf("config: no profile selected and %d profiles are configured; set SEEDHUNTER_PROFILE or pass one explicitly", len(c.DSConfigs))
		}
		for only := range c.DSConfigs {
			name = only
		}
	}
	p, ok := c.DSConfigs[name]
	if !ok {
		return DeviceProfile{}, fmt.Errorf("config: unknown profile %q", name)
	}
	applyDeviceEnvOverrides(&p)
	return p, nil
}

func applyRunEnvOverrides(rc *RunConfig) {
	if v := os.Getenv("SEEDHUNTER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rc.Workers = n
		}
	}
	if v := os.Getenv("SEEDHUNTER_LOG_LEVEL"); v != "" {
		rc.LogLevel = v
	}
}

func applyDeviceEnvOverrides(p *DeviceProfile) {
	if v := os.Getenv("SEEDHUNTER_VERSION"); v != "" {
		p.Version = v
	}
	if v := os.Getenv("SEEDHUNTER_TIMER0"); v != "" {
		if n, err := strconv.ParseUint(strings.TrimPrefix(v, "0x"), 16, 16); err == nil {
			p.Timer0 = uint16(n)
		}
	}
	if v := os.Getenv("SEEDHUNTER_MAC"); v != "" {
		p.MAC = v
	}
}

// ParseVersion maps the configured version string to a seedhash.GameVersion.
func ParseVersion(s string) (seedhash.GameVersion, error) {
	switch strings.ToLower(s) {
	case "black":
		return seedhash.Black, nil
	case "white":
		return seedhash.White, nil
	case "black2":
		return seedhash.Black2, nil
	case "white2":
		return seedhash.White2, nil
	default:
		return 0, fmt.Errorf("config: unknown version %q", s)
	}
}

// ParseMAC parses a colon-separated MAC address into the low-48-bit form
// DSConfig expects.
func ParseMAC(s string) (uint64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return 0, fmt.Errorf("config: MAC %q must have 6 octets", s)
	}
	var mac uint64
	for _, p := range parts {
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("config: MAC %q: %w", s, err)
		}
		mac = mac<<8 | b
	}
	return mac, nil
}

// ParseWeekdayWrap maps the configured wrap string to a
// calendar.WeekdayWrapMode.
func ParseWeekdayWrap(s string) calendar.WeekdayWrapMode {
	if s == "94" {
		return calendar.WrapYear94
	}
	return calendar.WrapYear93
}

// ParseOffsetRecipe maps the configured recipe name to a
// derive.OffsetType.
func ParseOffsetRecipe(s string) (derive.OffsetType, error) {
	switch s {
	case "Bw1Start":
		return derive.OffsetBw1Start, nil
	case "Bw1Continue":
		return derive.OffsetBw1Continue, nil
	case "BW2Start":
		return derive.OffsetBW2Start, nil
	case "BW2Continue":
		return derive.OffsetBW2Continue, nil
	case "BW2ContinueWithLink":
		return derive.OffsetBW2ContinueWithLink, nil
	default:
		return 0, fmt.Errorf("config: unknown offset recipe %q", s)
	}
}

func parseDate(s string) (calendar.Date, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return calendar.Date{}, fmt.Errorf("config: invalid date %q: %w", s, err)
	}
	return calendar.Date{Year: uint8(y % 100), Month: uint8(m), Day: uint8(d)}, nil
}

func parseTime(s string) (calendar.Time, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%2d:%2d:%2d", &h, &m, &sec); err != nil {
		return calendar.Time{}, fmt.Errorf("config: invalid time %q: %w", s, err)
	}
	return calendar.Time{Hour: uint8(h), Minute: uint8(m), Second: uint8(sec)}, nil
}

// BuildRange constructs the calendar.Range this run config describes.
func (rc RunConfig) BuildRange() (calendar.Range, error) {
	start, err := parseDate(rc.StartDate)
	if err != nil {
		return calendar.Range{}, err
	}
	end, err := parseDate(rc.EndDate)
	if err != nil {
		return calendar.Range{}, err
	}
	times := make([]calendar.Time, 0, len(rc.Times))
	for _, ts := range rc.Times {
		t, err := parseTime(ts)
		if err != nil {
			return calendar.Range{}, err
		}
		times = append(times, t)
	}
	if len(times) == 0 {
		times = append(times, calendar.Time{})
	}
	return calendar.Range{Start: start, End: end, Times: times}, nil
}

// BuildIVRectangle constructs the min/max ivgen.IVs pair this run config
// describes.
func (rc RunConfig) BuildIVRectangle() (min, max ivgen.IVs) {
	return ivgen.IVs(rc.IVMin), ivgen.IVs(rc.IVMax)
}
