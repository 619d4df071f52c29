package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/okian/arena/pkg/metrics"
)

// Treap-ordered kill leaderboard.
//
// Ordering: total kills DESC, then name ASC. "less" means ranks earlier, so
// an in-order walk yields the board from best to worst. Node priorities are
// a hash of the name, which keeps the tree balanced in expectation and the
// shape independent of insertion order.

// Standing is one leaderboard row.
type Standing struct {
	Rank  int    // dense rank, equal kills share a rank
	Name  string // tribute display name
	Kills int    // kills summed over every recorded game
	Best  int    // most kills in a single game
	Games int    // games recorded
	Wins  int    // games won
}

type standingRecord struct {
	kills int
	best  int
	games int
	wins  int
}

type node struct {
	name  string
	kills int
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func less(aKills int, aName string, bKills int, bName string) bool {
	if aKills != bKills {
		return aKills > bKills
	}
	return aName < bName
}

func priority(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, name string, kills int) *node {
	if n == nil {
		return &node{name: name, kills: kills, prio: priority(name), size: 1}
	}
	if less(kills, name, n.kills, n.name) {
		n.left = insert(n.left, name, kills)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, name, kills)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, name string, kills int) *node {
	if n == nil {
		return nil
	}
	switch {
	case kills == n.kills && name == n.name:
		// Rotate the higher-priority child up until the node is a leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, name, kills)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, name, kills)
		}
	case less(kills, name, n.kills, n.name):
		n.left = deleteNode(n.left, name, kills)
	default:
		n.right = deleteNode(n.right, name, kills)
	}
	fix(n)
	return n
}

// collect appends up to limit standings in rank order. limit < 0 collects
// everything.
func collect(n *node, limit int, byName map[string]standingRecord, out *[]Standing) {
	if n == nil || (limit >= 0 && len(*out) >= limit) {
		return
	}
	collect(n.left, limit, byName, out)
	if limit < 0 || len(*out) < limit {
		rec := byName[n.name]
		*out = append(*out, Standing{
			Name:  n.name,
			Kills: rec.kills,
			Best:  rec.best,
			Games: rec.games,
			Wins:  rec.wins,
		})
	}
	collect(n.right, limit, byName, out)
}

// assignRanks gives equal kill totals the same rank; ranks are consecutive.
func assignRanks(rows []Standing) {
	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Kills != rows[i-1].Kills {
			rank++
		}
		rows[i].Rank = rank
	}
}

// Leaderboard ranks tributes by kills summed over many games. Safe for
// concurrent use.
type Leaderboard struct {
	mu     sync.RWMutex
	root   *node
	byName map[string]standingRecord
}

// NewLeaderboard creates an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{byName: make(map[string]standingRecord)}
}

// Record adds one game's result for name. O(log n) expected.
func (l *Leaderboard) Record(_ context.Context, name string, kills int, won bool) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("leaderboard_record", float64(time.Since(start).Microseconds())/1000)
	}()

	if kills < 0 {
		kills = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.byName[name]
	if ok {
		l.root = deleteNode(l.root, name, rec.kills)
	}
	rec.kills += kills
	rec.games++
	if kills > rec.best {
		rec.best = kills
	}
	if won {
		rec.wins++
	}
	l.byName[name] = rec
	l.root = insert(l.root, name, rec.kills)
}

// Rank returns the standing of name.
func (l *Leaderboard) Rank(_ context.Context, name string) (Standing, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.byName[name]; !ok {
		metrics.RecordErrorByComponent("leaderboard", "not_found")
		return Standing{}, ErrNotRanked
	}
	rows := make([]Standing, 0, len(l.byName))
	collect(l.root, -1, l.byName, &rows)
	assignRanks(rows)
	for _, row := range rows {
		if row.Name == name {
			return row, nil
		}
	}
	return Standing{}, ErrNotRanked
}

// TopN returns the n best standings. Ranks are global because a prefix of
// the in-order walk sees every tie above it.
func (l *Leaderboard) TopN(_ context.Context, n int) ([]Standing, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("leaderboard_top", float64(time.Since(start).Microseconds())/1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("leaderboard", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Standing, 0, min(n, len(l.byName)))
	collect(l.root, n, l.byName, &out)
	assignRanks(out)
	return out, nil
}

// Count returns the number of ranked names.
func (l *Leaderboard) Count(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}
