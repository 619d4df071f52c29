package batchrun

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/arena/internal/domain/types"
)

// WriteReport renders report in the given format.
func WriteReport(w io.Writer, report types.BatchReport, format string) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err := io.WriteString(w, formatText(report))
	return err
}

func formatText(r types.BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "games:        %d (completed %d, failed %d)\n", r.Games, r.Completed, r.Failed)
	fmt.Fprintf(&b, "no survivor:  %d\n", r.NoSurvivor)
	fmt.Fprintf(&b, "mean days:    %.2f\n", r.MeanDays)
	fmt.Fprintf(&b, "mean events:  %.2f\n", r.MeanEvents)
	if r.TopKiller != "" {
		fmt.Fprintf(&b, "top killer:   %s with %d kills\n", r.TopKiller, r.TopKills)
	}
	fmt.Fprintf(&b, "duration:     %dms\n", r.DurationMillis)
	if len(r.TopKillers) > 0 {
		b.WriteString("kill leaderboard:\n")
		for _, k := range r.TopKillers {
			fmt.Fprintf(&b, "  %2d. %s %d kills (best %d, wins %d)\n", k.Rank, k.Name, k.Kills, k.Best, k.Wins)
		}
	}

	if len(r.WinsByDistrict) == 0 {
		return b.String()
	}
	b.WriteString("wins by district:\n")
	for _, d := range sortedDistricts(r.WinsByDistrict) {
		fmt.Fprintf(&b, "  district %-3s %d\n", d, r.WinsByDistrict[d])
	}
	return b.String()
}

// sortedDistricts orders district keys numerically.
func sortedDistricts(wins map[string]int) []string {
	keys := make([]string, 0, len(wins))
	for k := range wins {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}
