package competition

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FallbackTotalQuestions is the denominator used when no questions were parsed.
const FallbackTotalQuestions = 10

// SortMode orders the leaderboard.
type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical"
	SortRank         SortMode = "rank"
	SortProgress     SortMode = "progress"
)

// ParseSortMode maps a query value to a SortMode, defaulting to alphabetical.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortRank, SortProgress:
		return SortMode(s)
	default:
		return SortAlphabetical
	}
}

// Progress is a participant's tally.
type Progress struct {
	Completed int `json:"completed"`
	Correct   int `json:"correct"`
}

// Standing is one leaderboard line.
type Standing struct {
	FullName    string `json:"fullName"`
	Completed   int    `json:"completed"`
	Correct     int    `json:"correct"`
	Rank        int    `json:"rank"`
	IsCompleted bool   `json:"isCompleted"`
}

// Leaderboard is the ranked view returned to the teacher.
type Leaderboard struct {
	Sort           SortMode   `json:"sort"`
	TotalQuestions int        `json:"totalQuestions"`
	Standings      []Standing `json:"standings"`
}

func totalQuestions(n int) int {
	if n == 0 {
		return FallbackTotalQuestions
	}
	return n
}

func accuracy(p Standing) float64 {
	if p.Completed == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Completed)
}

// outranks reports whether a performed strictly better than b.
func outranks(a, b Standing) bool {
	switch {
	case a.Correct != b.Correct:
		return a.Correct > b.Correct
	case a.Completed != b.Completed:
		return a.Completed > b.Completed
	default:
		return accuracy(a) > accuracy(b)
	}
}

// Rank builds standings for names, with rank 1 + the number of participants who outrank each one.
// Participants with no answers get zero progress.
func Rank(names []string, progress map[string]Progress, total int) []Standing {
	standings := make([]Standing, 0, len(names))
	for _, name := range names {
		p := progress[name]
		standings = append(standings, Standing{
			FullName:    name,
			Completed:   p.Completed,
			Correct:     p.Correct,
			IsCompleted: total > 0 && p.Completed >= total,
		})
	}

	for i := range standings {
		better := 0
		for j := range standings {
			if outranks(standings[j], standings[i]) {
				better++
			}
		}
		standings[i].Rank = better + 1
	}

	return standings
}

// Sort orders standings in place for mode. Name ties are broken with English collation.
func Sort(standings []Standing, mode SortMode, total int) {
	col := collate.New(language.English)
	byName := func(a, b Standing) int {
		return col.CompareString(a.FullName, b.FullName)
	}

	progress := func(s Standing) float64 {
		if total <= 0 {
			return 0
		}
		return float64(s.Completed) / float64(total)
	}

	switch mode {
	case SortRank:
		slices.SortStableFunc(standings, func(a, b Standing) int {
			return cmp.Or(cmp.Compare(a.Rank, b.Rank), byName(a, b))
		})
	case SortProgress:
		slices.SortStableFunc(standings, func(a, b Standing) int {
			return cmp.Or(
				cmp.Compare(progress(b), progress(a)),
				cmp.Compare(b.Correct, a.Correct),
				byName(a, b),
			)
		})
	default:
		slices.SortStableFunc(standings, byName)
	}
}

// Leaderboard ranks and sorts names against the recorded progress.
func (c *Competition) Leaderboard(names []string, mode SortMode) Leaderboard {
	total := c.TotalQuestions()
	standings := Rank(names, c.Progress(), total)
	Sort(standings, mode, total)

	return Leaderboard{
		Sort:           mode,
		TotalQuestions: total,
		Standings:      standings,
	}
}
