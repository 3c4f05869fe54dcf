package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Profile is the tunable part of a collection run. It is read from an
// optional YAML file; anything the file omits keeps its default.
type Profile struct {
	Delays    Delays           `yaml:"delays"`
	Express   ExpressProfile   `yaml:"express"`
	Intercity IntercityProfile `yaml:"intercity"`
}

// Delays are the minimum spacing between calls of one endpoint class, in ms
type Delays struct {
	TerminalListMS   int `yaml:"terminalListMs" validate:"gte=0"`
	DestinationsMS   int `yaml:"destinationsMs" validate:"gte=0"`
	SchedulesMS      int `yaml:"schedulesMs" validate:"gte=0"`
	ProbeMS          int `yaml:"probeMs" validate:"gte=0"`
	IntercityProbeMS int `yaml:"intercityProbeMs" validate:"gte=0"`
	AirportMS        int `yaml:"airportMs" validate:"gte=0"`
}

// MajorTerminals selects probe candidates by id allow-list and name substring
type MajorTerminals struct {
	IDs          []string `yaml:"ids"`
	NamePatterns []string `yaml:"namePatterns"`
}

type ExpressProfile struct {
	Majors               MajorTerminals `yaml:"majors"`
	CheckpointEvery      int            `yaml:"checkpointEvery" validate:"gt=0"`
	ProbeCheckpointEvery int            `yaml:"probeCheckpointEvery" validate:"gt=0"`
	// IdentityMap pins short codes to full ids ahead of name matching
	IdentityMap map[string]string `yaml:"identityMap" validate:"omitempty,dive,keys,numeric,endkeys,required"`
}

type IntercityProfile struct {
	Majors          MajorTerminals `yaml:"majors"`
	CheckpointEvery int            `yaml:"checkpointEvery" validate:"gt=0"`
	RunWindow       RunWindow      `yaml:"runWindow"`
}

// RunWindow is a local-time hour range [StartHour, EndHour)
type RunWindow struct {
	StartHour int `yaml:"startHour" validate:"gte=0,lte=23"`
	EndHour   int `yaml:"endHour" validate:"gte=0,lte=24"`
}

// Duration converts a millisecond delay to a time.Duration
func Duration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// LoadProfile reads a YAML profile over DefaultProfile. A missing file is
// not an error.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return profile, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Validate checks delays, checkpoint intervals and the run window
func (p Profile) Validate() error {
	v := validator.New()
	for _, s := range []any{p.Delays, p.Express, p.Intercity, p.Intercity.RunWindow} {
		if err := v.Struct(s); err != nil {
			return fmt.Errorf("invalid collector profile: %w", err)
		}
	}
	return nil
}
