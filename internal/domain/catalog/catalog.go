// Package catalog loads and validates the event template pool.
//
// The pool ships embedded as YAML. Operators may point the service at a
// replacement file in the same format. Every template is validated once at
// load time so the engine never sees an out-of-range slot.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/arena/internal/domain/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// playerToken matches participant placeholders and captures their index.
var playerToken = regexp.MustCompile(`\{(?:Player|They|Them|Their)(\d+)\}`)

type document struct {
	Weapons struct {
		Melee  []string `yaml:"melee"`
		Ranged []string `yaml:"ranged"`
	} `yaml:"weapons"`
	Items      []string                  `yaml:"items"`
	Categories map[string][]templateSpec `yaml:"categories"`
}

type templateSpec struct {
	ID       string `yaml:"id"`
	Text     string `yaml:"text"`
	Tributes int    `yaml:"tributes"`
	Deaths   []int  `yaml:"deaths"`
	Killer   *int   `yaml:"killer"`
	Weapon   bool   `yaml:"weapon"`
	Item     bool   `yaml:"item"`
}

type category struct {
	all      []model.Template
	fatal    []model.Template
	nonFatal []model.Template
	solo     []model.Template
}

// Pool is the read-only template catalog.
type Pool struct {
	categories map[model.Phase]*category
	order      []model.Template
	melee      []string
	ranged     []string
	items      []string
}

// Default parses the embedded catalog.
func Default() (*Pool, error) {
	return Parse(defaultCatalog)
}

// LoadFile parses a catalog from disk.
func LoadFile(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Pool, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Pool, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	p := &Pool{
		categories: make(map[model.Phase]*category, len(model.Categories())),
		melee:      doc.Weapons.Melee,
		ranged:     doc.Weapons.Ranged,
		items:      doc.Items,
	}

	for name := range doc.Categories {
		if !model.Phase(name).IsCategory() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidTemplate, name)
		}
	}

	seen := make(map[string]struct{})
	for _, phase := range model.Categories() {
		specs := doc.Categories[string(phase)]
		if len(specs) == 0 {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidTemplate, ErrEmptyCategory, phase)
		}
		c := &category{}
		for _, s := range specs {
			if _, dup := seen[s.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidTemplate, s.ID)
			}
			seen[s.ID] = struct{}{}

			t := s.template()
			if err := p.validate(t); err != nil {
				return nil, err
			}
			// One arena template is shared by every living tribute.
			if phase == model.PhaseArena && !t.Solo() {
				return nil, fmt.Errorf("%w: %s: arena templates must take one tribute, got %d",
					ErrInvalidTemplate, t.ID, t.Tributes)
			}
			c.add(t)
			p.order = append(p.order, t)
		}
		p.categories[phase] = c
	}
	return p, nil
}

func (s templateSpec) template() model.Template {
	t := model.Template{
		ID:             s.ID,
		Text:           s.Text,
		Tributes:       s.Tributes,
		Deaths:         append([]int(nil), s.Deaths...),
		RequiresWeapon: s.Weapon,
		RequiresItem:   s.Item,
	}
	if s.Killer != nil {
		k := *s.Killer
		t.Killer = &k
	}
	return t
}

func (c *category) add(t model.Template) {
	c.all = append(c.all, t)
	if t.Fatal() {
		c.fatal = append(c.fatal, t)
	} else {
		c.nonFatal = append(c.nonFatal, t)
	}
	if t.Solo() {
		c.solo = append(c.solo, t)
	}
}

// validate enforces the slot invariants of a single template.
func (p *Pool) validate(t model.Template) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidTemplate, t.ID, fmt.Sprintf(format, args...))
	}

	if t.ID == "" {
		return fmt.Errorf("%w: template with empty id", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Text) == "" {
		return bad("empty text")
	}
	if t.Tributes < 1 {
		return bad("tributes must be >= 1, got %d", t.Tributes)
	}

	slots := make(map[int]struct{}, len(t.Deaths))
	for _, d := range t.Deaths {
		if d < 0 || d >= t.Tributes {
			return bad("fatal slot %d out of range", d)
		}
		if _, dup := slots[d]; dup {
			return bad("fatal slot %d repeated", d)
		}
		slots[d] = struct{}{}
	}

	if t.Killer != nil && (*t.Killer < -1 || *t.Killer >= t.Tributes) {
		return bad("killer slot %d out of range", *t.Killer)
	}

	for _, m := range playerToken.FindAllStringSubmatch(t.Text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > t.Tributes {
			return bad("placeholder %s beyond %d tributes", m[0], t.Tributes)
		}
	}

	if t.RequiresWeapon && len(p.melee)+len(p.ranged) == 0 {
		return bad("requires a weapon but the catalog lists none")
	}
	if t.RequiresItem && len(p.items) == 0 {
		return bad("requires an item but the catalog lists none")
	}
	return nil
}

// Category returns the templates of phase in catalog order, or nil when
// phase carries no category.
func (p *Pool) Category(phase model.Phase) []model.Template {
	if c, ok := p.categories[phase]; ok {
		return c.all
	}
	return nil
}

// Partition splits a category into fatal and non-fatal templates.
func (p *Pool) Partition(phase model.Phase) (fatal, nonFatal []model.Template) {
	if c, ok := p.categories[phase]; ok {
		return c.fatal, c.nonFatal
	}
	return nil, nil
}

// Solo returns the 1-participant templates of a category.
func (p *Pool) Solo(phase model.Phase) []model.Template {
	if c, ok := p.categories[phase]; ok {
		return c.solo
	}
	return nil
}

// Templates returns every template across all categories.
func (p *Pool) Templates() []model.Template {
	return p.order
}

// Melee lists close-combat weapons.
func (p *Pool) Melee() []string { return p.melee }

// Ranged lists ranged weapons.
func (p *Pool) Ranged() []string { return p.ranged }

// Items lists supply items.
func (p *Pool) Items() []string { return p.items }
