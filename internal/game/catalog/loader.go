package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// fileDoc is the wire representation of a catalog document.
type fileDoc struct {
	Settings settingsDoc        `json:"Settings" yaml:"Settings"`
	Weapons  map[string]ruleDoc `json:"Weapons" yaml:"Weapons"`
}

type settingsDoc struct {
	Cooldown float64 `json:"cooldown" yaml:"cooldown" validate:"gte=0"`
}

type ruleDoc struct {
	Commands    []string `json:"command" yaml:"command" validate:"required,min=1,dive,required"`
	ItemID      string   `json:"weaponentity" yaml:"weaponentity" validate:"required"`
	Slot        int      `json:"weaponslot" yaml:"weaponslot" validate:"gte=0"`
	Price       int      `json:"price" yaml:"price" validate:"gte=0"`
	MaxPurchase int      `json:"maxpurchase" yaml:"maxpurchase" validate:"gte=0"`
	Restricted  bool     `json:"restrict" yaml:"restrict"`
}

var validate = validator.New()

// LoadFromBytes parses and validates a JSON catalog document.
//
// Precondition: data must be a JSON document conforming to the catalog schema.
// Postcondition: Returns a validated Catalog and Settings, or a non-nil error.
func LoadFromBytes(data []byte) (*Catalog, Settings, error) {
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Settings{}, fmt.Errorf("parsing catalog JSON: %w", err)
	}
	return convert(doc)
}

// LoadFromYAMLBytes parses and validates a YAML catalog document.
//
// Precondition: data must be a YAML document conforming to the catalog schema.
// Postcondition: Returns a validated Catalog and Settings, or a non-nil error.
func LoadFromYAMLBytes(data []byte) (*Catalog, Settings, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Settings{}, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return convert(doc)
}

// LoadFromFile reads a catalog document from disk. The format is chosen by
// extension: .yaml/.yml parse as YAML, everything else as JSON.
//
// Precondition: path must point to a readable catalog file.
// Postcondition: Returns a validated Catalog and Settings, or a non-nil error.
func LoadFromFile(path string) (*Catalog, Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Settings{}, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFromYAMLBytes(data)
	default:
		return LoadFromBytes(data)
	}
}

// convert validates the wire document and builds the domain types.
func convert(doc fileDoc) (*Catalog, Settings, error) {
	var errs []string

	if err := validate.Struct(doc.Settings); err != nil {
		errs = append(errs, fmt.Sprintf("settings: %v", err))
	}

	rules := make(map[string]Rule, len(doc.Weapons))
	for key, rd := range doc.Weapons {
		if key == "" {
			errs = append(errs, "weapon with empty key")
			continue
		}
		if err := validate.Struct(rd); err != nil {
			errs = append(errs, fmt.Sprintf("weapon %q: %v", key, err))
			continue
		}
		rules[key] = Rule{
			Commands:    rd.Commands,
			ItemID:      rd.ItemID,
			Slot:        rd.Slot,
			Price:       rd.Price,
			MaxPurchase: rd.MaxPurchase,
			Restricted:  rd.Restricted,
		}
	}

	if len(errs) > 0 {
		return nil, Settings{}, fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}

	return New(rules), Settings{Cooldown: doc.Settings.Cooldown}, nil
}
