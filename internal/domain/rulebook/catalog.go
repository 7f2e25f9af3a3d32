package rulebook

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/formula"
)

//go:embed systems/*.yaml
var embedded embed.FS

// DefaultTrackMax is used for a health track when no formula yields a value
const DefaultTrackMax = 10

// Catalog is the read-only registry of systems, fixed once loaded
type Catalog struct {
	systems []*System
	byID    map[string]*System
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded system definitions.
// It panics if they fail validation, which can only happen with a bad build.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "systems")
		if err != nil {
			panic(err)
		}
		catalog, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("embedded system catalog is invalid: %v", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Load reads every *.yaml file at the root of fsys, in file name order, as
// one system definition each
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to read system definitions")
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	systems := make([]*System, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to read %s", name)
		}

		var sys System
		if err := yaml.Unmarshal(data, &sys); err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, fmt.Sprintf("failed to parse %s", path.Base(name)))
		}
		systems = append(systems, &sys)
	}

	return New(systems...)
}

// New validates and indexes the given systems
func New(systems ...*System) (*Catalog, error) {
	c := &Catalog{
		systems: make([]*System, 0, len(systems)),
		byID:    make(map[string]*System, len(systems)),
	}

	for _, sys := range systems {
		if sys == nil {
			return nil, dnderr.InvalidArgument("system cannot be nil")
		}
		if _, exists := c.byID[sys.ID]; exists {
			return nil, dnderr.AlreadyExistsf("system '%s' is defined twice", sys.ID).
				WithMeta("system_id", sys.ID)
		}
		if err := sys.index(); err != nil {
			return nil, err
		}
		c.systems = append(c.systems, sys)
		c.byID[sys.ID] = sys
	}

	return c, nil
}

// GetSystem looks up a system by id
func (c *Catalog) GetSystem(id string) (*System, bool) {
	sys, ok := c.byID[id]
	return sys, ok
}

// GetAttribute looks up an attribute within a system
func (c *Catalog) GetAttribute(systemID, attributeID string) (*Attribute, bool) {
	sys, ok := c.byID[systemID]
	if !ok {
		return nil, false
	}
	return sys.Attribute(attributeID)
}

// GetSkill looks up a skill within a system, searching categories when the
// system groups its skills
func (c *Catalog) GetSkill(systemID, skillID string) (*Skill, bool) {
	sys, ok := c.byID[systemID]
	if !ok {
		return nil, false
	}
	return sys.Skill(skillID)
}

// Systems returns every system in catalog order
func (c *Catalog) Systems() []*System {
	out := make([]*System, len(c.systems))
	copy(out, c.systems)
	return out
}

// Themes returns the suggested campaign themes for a system
func (c *Catalog) Themes(systemID string) []string {
	if sys, ok := c.byID[systemID]; ok && len(sys.Themes) > 0 {
		out := make([]string, len(sys.Themes))
		copy(out, sys.Themes)
		return out
	}
	return []string{"Adventure"}
}

// AttributeModifier applies the system family's modifier rule. Unknown
// systems yield 0.
func (c *Catalog) AttributeModifier(systemID, attributeID string, value int) int {
	sys, ok := c.byID[systemID]
	if !ok {
		return 0
	}
	return sys.Modifier(value)
}

// EvaluateDerivedStat computes a derived stat from raw attribute values.
// Every attribute contributes <id> as its raw value and <id>_mod as
// floor((value-10)/2) regardless of system. A missing stat or a formula that
// does not evaluate yields 0.
func (c *Catalog) EvaluateDerivedStat(systemID, statID string, attributes map[string]int) float64 {
	sys, ok := c.byID[systemID]
	if !ok {
		return 0
	}
	stat, ok := sys.DerivedStat(statID)
	if !ok {
		return 0
	}
	return evaluate(stat.Formula, attributes)
}

// TrackMax resolves a health track's maximum: the derived stat sharing the
// track's id, floored, or DefaultTrackMax when that yields 0. The track's
// own max is descriptive only.
func (c *Catalog) TrackMax(systemID, trackID string, attributes map[string]int) int {
	if v := c.EvaluateDerivedStat(systemID, trackID, attributes); v != 0 {
		return int(math.Floor(v))
	}
	return DefaultTrackMax
}

func evaluate(expr string, attributes map[string]int) float64 {
	env := make(formula.Env, len(attributes)*2)
	for id, value := range attributes {
		env[id] = float64(value)
		env[id+"_mod"] = float64(ScoreModifier(value))
	}

	v, err := formula.Evaluate(expr, env)
	if err != nil {
		return 0
	}
	return v
}

// ModifierRule returns the modifier rule for a system's family
func (c *Catalog) ModifierRule(systemID string) (ModifierRule, bool) {
	sys, ok := c.byID[systemID]
	if !ok || sys.modifier == nil {
		return nil, false
	}
	return sys.modifier, true
}
