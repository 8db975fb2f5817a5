package vocab

import (
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// SelectParams configures one run of SelectDaily.
type SelectParams struct {
	// Topic restricts selection to catalog entries carrying this tag.
	// Blank means untargeted selection.
	Topic       string
	TargetCount int
	WeakQuota   int
	ReviewQuota int
	Cooldown    time.Duration
	Now         time.Time
}

// buckets partitions the catalog by the learner's records.
type buckets struct {
	newWords     []domain.DailyWord
	hardNew      []domain.DailyWord
	weak         []domain.DailyWord
	coolLearning []domain.DailyWord
	hotLearning  []domain.DailyWord
	known        []domain.DailyWord
}

// SelectDaily builds a daily practice set from the catalog entries of one
// language and the learner's progress snapshot for that language.
//
// Untargeted: up to WeakQuota Weak words, then up to ReviewQuota Learning words
// outside the cool-down, then New words (hard ones only if there are enough),
// then Known words, shuffled.
//
// Topic: entries tagged with the topic, taken New first, then cool Learning,
// then Learning still in cool-down, then Known. Order is kept.
//
// Records whose word is not in entries are ignored. The result never holds
// the same word twice and never more than TargetCount words.
func SelectDaily(entries []domain.CatalogEntry, snapshot []domain.WordProgress, p SelectParams, rnd Rand) []domain.DailyWord {
	if p.TargetCount <= 0 || len(entries) == 0 {
		return []domain.DailyWord{}
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	topic := strings.TrimSpace(p.Topic)
	b := partition(entries, indexSnapshot(snapshot), topic, p)

	if topic != "" {
		return selectByTopic(b, p.TargetCount, rnd)
	}
	return selectUntargeted(b, p, rnd)
}

func indexSnapshot(snapshot []domain.WordProgress) map[string]domain.WordProgress {
	idx := make(map[string]domain.WordProgress, len(snapshot))
	for _, rec := range snapshot {
		idx[domain.NormalizeWord(rec.Word)] = rec
	}
	return idx
}

func partition(entries []domain.CatalogEntry, progress map[string]domain.WordProgress, topic string, p SelectParams) buckets {
	var b buckets
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		key := domain.NormalizeWord(e.Word)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if topic != "" && !e.HasTag(topic) {
			continue
		}

		rec, ok := progress[key]
		if !ok || rec.Status == domain.StatusNew || !rec.Status.IsValid() {
			w := domain.DailyWord{Entry: e, Progress: domain.WordProgress{Word: e.Word, Status: domain.StatusNew}}
			b.newWords = append(b.newWords, w)
			if e.Level.IsHard() {
				b.hardNew = append(b.hardNew, w)
			}
			continue
		}

		w := domain.DailyWord{Entry: e, Progress: rec}
		switch rec.Status {
		case domain.StatusWeak:
			b.weak = append(b.weak, w)
		case domain.StatusLearning:
			if rec.IsCool(p.Now, p.Cooldown) {
				b.coolLearning = append(b.coolLearning, w)
			} else {
				b.hotLearning = append(b.hotLearning, w)
			}
		case domain.StatusKnown:
			b.known = append(b.known, w)
		}
	}
	return b
}

func selectUntargeted(b buckets, p SelectParams, rnd Rand) []domain.DailyWord {
	target := p.TargetCount
	selected := make([]domain.DailyWord, 0, target)

	selected = append(selected, pick(rnd, b.weak, min(max(p.WeakQuota, 0), target))...)
	selected = append(selected, pick(rnd, b.coolLearning, min(max(p.ReviewQuota, 0), target-len(selected)))...)

	if need := target - len(selected); need > 0 {
		pool := b.newWords
		if len(b.hardNew) >= need {
			pool = b.hardNew
		}
		selected = append(selected, pick(rnd, pool, need)...)
	}

	if need := target - len(selected); need > 0 {
		selected = append(selected, pick(rnd, b.known, need)...)
	}

	rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// selectByTopic does not draw from Weak words.
func selectByTopic(b buckets, target int, rnd Rand) []domain.DailyWord {
	selected := make([]domain.DailyWord, 0, target)
	for _, pool := range [][]domain.DailyWord{b.newWords, b.coolLearning, b.hotLearning, b.known} {
		need := target - len(selected)
		if need <= 0 {
			break
		}
		selected = append(selected, pick(rnd, pool, need)...)
	}
	return selected
}

// pick returns n distinct random elements of pool (all of them, shuffled, if
// pool is smaller). pool is not modified.
func pick(rnd Rand, pool []domain.DailyWord, n int) []domain.DailyWord {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	out := slices.Clone(pool)
	if n >= len(out) {
		rnd.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		return out
	}
	for i := range n {
		j := i + rnd.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}
