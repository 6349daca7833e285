package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spellduel/duel"
)

// ErrInvalidScenario is returned for scenario files with bad values.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Attacker holds the caster's starting stats.
type Attacker struct {
	HP   int `yaml:"hp"`
	Mana int `yaml:"mana"`
}

// Scenario is one duel to solve.
type Scenario struct {
	Name      string   `yaml:"name,omitempty"`
	Attacker  Attacker `yaml:"attacker"`
	Defender  Defender `yaml:"defender"`
	Attrition int      `yaml:"attrition,omitempty"`

	// Spells restricts the catalog by name; empty means every spell.
	Spells []string `yaml:"spells,omitempty"`

	// Expect, when set, is the minimum cost the scenario should produce;
	// -1 means no winning line.
	Expect *int `yaml:"expect,omitempty"`
}

// New returns a scenario for defender with the reference attacker.
func New(d Defender) Scenario {
	return Scenario{
		Attacker: Attacker{HP: duel.DefaultHP, Mana: duel.DefaultMana},
		Defender: d,
	}
}

// Validate checks values and spell names.
func (s Scenario) Validate() error {
	if err := s.Setup().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidScenario, s.label(), err)
	}
	if s.Attrition < 0 {
		return fmt.Errorf("%w: %s: negative attrition", ErrInvalidScenario, s.label())
	}
	for _, name := range s.Spells {
		if _, err := duel.ParseEffectID(name); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidScenario, s.label(), err)
		}
	}

	return nil
}

// Setup returns the starting values for duel.
func (s Scenario) Setup() duel.Setup {
	return duel.Setup{
		HP:             s.Attacker.HP,
		Mana:           s.Attacker.Mana,
		DefenderHP:     s.Defender.HP,
		DefenderDamage: s.Defender.Damage,
	}
}

// Rules returns the duel rules with the catalog restricted to Spells.
func (s Scenario) Rules() (duel.Rules, error) {
	cat := duel.DefaultCatalog()
	if len(s.Spells) > 0 {
		ids := make([]duel.EffectID, 0, len(s.Spells))
		for _, name := range s.Spells {
			id, err := duel.ParseEffectID(name)
			if err != nil {
				return duel.Rules{}, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, s.label(), err)
			}
			ids = append(ids, id)
		}
		var err error
		if cat, err = cat.Subset(ids...); err != nil {
			return duel.Rules{}, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, s.label(), err)
		}
	}

	return duel.NewRules(cat, s.Attrition)
}

func (s Scenario) label() string {
	if s.Name != "" {
		return s.Name
	}

	return "unnamed"
}

// Decode reads every YAML document in r. An attacker block left out of a
// document keeps the reference values.
func Decode(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []Scenario
	for {
		s := New(Defender{})
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrInvalidScenario, len(out)+1, err)
		}
		if err = s.Validate(); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrInvalidScenario)
	}

	return out, nil
}

// Load reads the scenario file at path.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
