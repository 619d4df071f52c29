// Package render fills template placeholders with concrete tributes,
// pronouns, weapons and items.
package render

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/arena/internal/domain/catalog"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/random"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
)

// Placeholders resolved from the weapon and item lists.
const (
	WeaponToken = "{Weapon}"
	ItemToken   = "{Item}"
)

// tributeToken matches a whole placeholder so {Player1} never matches
// inside {Player11}.
var tributeToken = regexp.MustCompile(`\{(Player|They|Them|Their)(\d+)\}`)

var meleeVerbs = []string{"stab", "slash", "pierce", "swing", "hack", "chop"} //nolint:gochecknoglobals // fixed verb list

// Renderer resolves placeholders. It holds no mutable state and is safe to
// share between games.
type Renderer struct {
	melee     []string
	ranged    []string
	all       []string
	throwable []string
	items     []string
	log       logger.Logger
}

// New creates a renderer over the weapon and item lists of pool.
func New(pool *catalog.Pool, opts ...Option) *Renderer {
	r := &Renderer{
		melee:  pool.Melee(),
		ranged: pool.Ranged(),
		items:  pool.Items(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.all = make([]string, 0, len(r.melee)+len(r.ranged))
	r.all = append(r.all, r.melee...)
	r.all = append(r.all, r.ranged...)
	for _, w := range r.all {
		if !strings.Contains(strings.ToLower(w), "bow") {
			r.throwable = append(r.throwable, w)
		}
	}
	return r
}

// Render substitutes tribute, weapon and item placeholders in text. Weapon
// and item placeholders are left in place unless the matching flag is set.
func (r *Renderer) Render(rng random.Source, text string, tributes []model.Tribute, needsWeapon, needsItem bool) string {
	out := tributeToken.ReplaceAllStringFunc(text, func(tok string) string {
		m := tributeToken.FindStringSubmatch(tok)
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > len(tributes) {
			return tok
		}
		t := tributes[n-1]
		switch m[1] {
		case "Player":
			return t.Name
		case "They":
			return t.Gender.Subject()
		case "Them":
			return t.Gender.Object()
		default:
			return t.Gender.Possessive()
		}
	})

	if strings.Contains(out, WeaponToken) {
		if !needsWeapon {
			r.unresolved(text, WeaponToken, "not requested")
		} else if w, ok := random.Pick(rng, r.weaponsFor(text)); ok {
			out = strings.ReplaceAll(out, WeaponToken, w)
		} else {
			r.unresolved(text, WeaponToken, "no matching weapon")
		}
	}

	if strings.Contains(out, ItemToken) {
		if !needsItem {
			r.unresolved(text, ItemToken, "not requested")
		} else if it, ok := random.Pick(rng, r.items); ok {
			out = strings.ReplaceAll(out, ItemToken, it)
		} else {
			r.unresolved(text, ItemToken, "no items")
		}
	}
	return out
}

// weaponsFor narrows the weapon list by the verbs in the original text.
func (r *Renderer) weaponsFor(text string) []string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "throw") {
		return r.throwable
	}
	for _, v := range meleeVerbs {
		if strings.Contains(lower, v) {
			return r.melee
		}
	}
	return r.all
}

func (r *Renderer) unresolved(text, token, reason string) {
	metrics.RecordUnresolvedPlaceholder(token)
	r.log.Debug(context.Background(), "placeholder left unresolved",
		logger.String("placeholder", token),
		logger.String("reason", reason),
		logger.String("text", text),
	)
}

// FormatList joins names as "A", "A and B" or "A, B, and C".
func FormatList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// Names returns the display names of tributes in order.
func Names(tributes []model.Tribute) []string {
	out := make([]string, len(tributes))
	for i, t := range tributes {
		out[i] = t.Name
	}
	return out
}

// QualifiedName renders "Name (District N)".
func QualifiedName(t model.Tribute) string {
	return fmt.Sprintf("%s (District %d)", t.Name, t.DistrictID)
}
