package staticconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

var ErrInvalidScenarioPath = fmt.Errorf("invalid scenario path: %w", hunting.ErrInvalidConfig)

// Provider loads named scenarios from <Root>/<name>.json. Fields a file
// leaves out keep the value from Base.
type Provider struct {
	Root string
	Base hunting.Config
}

func (p Provider) Load(_ context.Context, name string) (hunting.Config, error) {
	path, err := secureJoin(p.Root, name+".json")
	if err != nil {
		return hunting.Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return hunting.Config{}, fmt.Errorf("scenario %q: %w", name, ports.ErrNotFound)
	}
	if err != nil {
		return hunting.Config{}, err
	}
	return Decode(data, p.base())
}

// List returns the scenario names available under Root.
func (p Provider) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (p Provider) base() hunting.Config {
	if len(p.Base.Zones) == 0 {
		return hunting.DefaultConfig()
	}
	return p.Base
}

// LoadFile reads a scenario file outside any provider root.
func LoadFile(path string, base hunting.Config) (hunting.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hunting.Config{}, err
	}
	return Decode(data, base)
}

type fileConfig struct {
	Catalog      *fileCatalog `json:"catalog"`
	Zones        []fileZone   `json:"zones"`
	StartMoney   *int         `json:"start_money"`
	TaxMin       *int         `json:"tax_min"`
	TaxMax       *int         `json:"tax_max"`
	GoalBalance  *int         `json:"goal_balance"`
	InitialStock *int         `json:"initial_stock"`
	Timers       *fileTimers  `json:"timers"`
	Seed         *int64       `json:"seed"`
}

type fileCatalog struct {
	Animals []fileAnimal `json:"animals"`
	Traps   []fileTrap   `json:"traps"`
}

type fileAnimal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

type fileTrap struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Cost        int                `json:"cost"`
	CatchChance map[string]float64 `json:"catch_chance"`
}

type fileZone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileTimers struct {
	TaxSeconds   *float64 `json:"tax_seconds"`
	HuntSeconds  *float64 `json:"hunt_seconds"`
	SpawnSeconds *float64 `json:"spawn_seconds"`
}

// Decode overlays a JSON scenario on base and validates the result.
func Decode(data []byte, base hunting.Config) (hunting.Config, error) {
	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return hunting.Config{}, fmt.Errorf("%w: %v", hunting.ErrInvalidConfig, err)
	}

	cfg := base
	if fc.Catalog != nil {
		cfg.Catalog = hunting.Catalog{}
		for _, a := range fc.Catalog.Animals {
			cfg.Catalog.Animals = append(cfg.Catalog.Animals, hunting.AnimalKind{ID: hunting.AnimalKindID(a.ID), Name: a.Name, Cost: a.Cost})
		}
		for _, t := range fc.Catalog.Traps {
			chances := make(map[hunting.AnimalKindID]float64, len(t.CatchChance))
			for id, c := range t.CatchChance {
				chances[hunting.AnimalKindID(id)] = c
			}
			cfg.Catalog.Traps = append(cfg.Catalog.Traps, hunting.TrapKind{ID: hunting.TrapKindID(t.ID), Name: t.Name, Cost: t.Cost, CatchChance: chances})
		}
	}
	if fc.Zones != nil {
		cfg.Zones = nil
		for _, z := range fc.Zones {
			cfg.Zones = append(cfg.Zones, hunting.ZoneSpec{ID: hunting.ZoneID(z.ID), Name: z.Name})
		}
	}
	setInt(&cfg.StartMoney, fc.StartMoney)
	setInt(&cfg.TaxMin, fc.TaxMin)
	setInt(&cfg.TaxMax, fc.TaxMax)
	setInt(&cfg.GoalBalance, fc.GoalBalance)
	setInt(&cfg.InitialStock, fc.InitialStock)
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.Timers != nil {
		setSeconds(&cfg.Timers.Tax, fc.Timers.TaxSeconds)
		setSeconds(&cfg.Timers.Hunt, fc.Timers.HuntSeconds)
		setSeconds(&cfg.Timers.Spawn, fc.Timers.SpawnSeconds)
	}
	if err := cfg.Validate(); err != nil {
		return hunting.Config{}, err
	}
	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setSeconds(dst *time.Duration, v *float64) {
	if v != nil {
		*dst = time.Duration(*v * float64(time.Second))
	}
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" || rel == ".json" {
		return "", ErrInvalidScenarioPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidScenarioPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidScenarioPath
	}
	return target, nil
}
