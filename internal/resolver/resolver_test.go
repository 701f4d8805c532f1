package resolver

import (
	"math/rand"
	"testing"

	"github.com/harrison/ordertouch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RegexDeferredPlacement(t *testing.T) {
	entries := []string{"/w/z.tmp", "/w/y.txt", "/w/x.tmp"}

	got := Resolve(entries, nil, []string{"(regex)*.tmp"})

	assert.Equal(t, models.FinalOrder{"/w/y.txt", "/w/x.tmp", "/w/z.tmp"}, got)
}

func TestResolve_PlainOrderReversedAtTail(t *testing.T) {
	entries := []string{"/w/a", "/w/b", "/w/c", "/w/d", "/w/e"}

	got := Resolve(entries, []string{"/w/c", "/w/a", "/w/e"}, nil)
	assert.Equal(t, models.FinalOrder{"/w/b", "/w/d", "/w/e", "/w/a", "/w/c"}, got)

	// Declaring the reverse order flips the tail back
	got = Resolve(entries, []string{"/w/e", "/w/a", "/w/c"}, nil)
	assert.Equal(t, models.FinalOrder{"/w/b", "/w/d", "/w/c", "/w/a", "/w/e"}, got)
}

func TestResolve_FullComposition(t *testing.T) {
	entries := []string{
		"/w/README.md",
		"/w/build.log",
		"/w/docs",
		"/w/main.go",
		"/w/notes.tmp",
		"/w/src",
	}
	plain := []string{"/w/src", "/w/README.md"}
	regex := []string{"(regex)*.tmp", "(regex)*.log"}

	got := Resolve(entries, plain, regex)

	assert.Equal(t, models.FinalOrder{
		"/w/docs",
		"/w/main.go",
		"/w/build.log",
		"/w/notes.tmp",
		"/w/README.md",
		"/w/src",
	}, got)
}

func TestResolve_RegexMatchesFullPath(t *testing.T) {
	entries := []string{"/w/gen", "/w/gen/a.go", "/w/lib.go"}

	got := Resolve(entries, nil, []string{"(regex)/w/gen/**"})

	assert.Equal(t, models.FinalOrder{"/w/gen", "/w/lib.go", "/w/gen/a.go"}, got)
}

func TestResolve_PlainEntriesMissingFromDiscovery(t *testing.T) {
	entries := []string{"/w/a", "/w/b"}

	got := Resolve(entries, []string{"/w/ghost", "/w/a"}, nil)

	assert.Equal(t, models.FinalOrder{"/w/b", "/w/a", "/w/ghost"}, got)
}

func TestResolve_LocaleAwareSort(t *testing.T) {
	entries := []string{"/w/Zeta", "/w/alpha", "/w/éclair", "/w/faust", "/w/Beta"}

	got := Resolve(entries, nil, nil)

	assert.Equal(t, models.FinalOrder{"/w/alpha", "/w/Beta", "/w/éclair", "/w/faust", "/w/Zeta"}, got)
}

func TestResolve_InvalidPatternWarns(t *testing.T) {
	r := New()
	entries := []string{"/w/a.tmp", "/w/b.txt"}

	got := r.Resolve(entries, nil, []string{"(regex)[oops", "(regex)*.tmp"})

	assert.Equal(t, models.FinalOrder{"/w/b.txt", "/w/a.tmp"}, got)
	require.Len(t, r.Warnings(), 1)
	assert.Contains(t, r.Warnings()[0], "[oops")

	r.Resolve(entries, nil, nil)
	assert.Empty(t, r.Warnings(), "warnings reset on every call")
}

func TestResolve_IsPermutationOfEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "B", "c.tmp", "d.log", "E", "f", "g.tmp", "h/i", "h", "j.md"}

	for round := 0; round < 50; round++ {
		entries := make([]string, 0, len(names))
		for _, n := range names {
			entries = append(entries, "/w/"+n)
		}
		rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })

		// plain is a random subset of entries
		var plain []string
		for _, e := range entries {
			if rng.Intn(3) == 0 {
				plain = append(plain, e)
			}
		}

		got := Resolve(entries, plain, []string{"(regex)*.tmp"})

		assert.ElementsMatch(t, entries, []string(got), "round %d", round)
		assert.Len(t, got, len(entries))
	}
}

func TestResolve_Deterministic(t *testing.T) {
	entries := []string{"/w/b", "/w/A", "/w/a", "/w/B", "/w/c.tmp"}
	shuffled := []string{"/w/c.tmp", "/w/B", "/w/a", "/w/b", "/w/A"}

	first := Resolve(entries, []string{"/w/b"}, []string{"(regex)*.tmp"})
	second := Resolve(shuffled, []string{"/w/b"}, []string{"(regex)*.tmp"})

	assert.Equal(t, first, second)
}

func TestMoveMatchesToTail_AnyMatchNotFirstMatch(t *testing.T) {
	tmp, err := CompilePattern("(regex)*.tmp")
	require.NoError(t, err)
	log, err := CompilePattern("*.log")
	require.NoError(t, err)

	got := MoveMatchesToTail(
		[]string{"/w/a.log", "/w/b.tmp", "/w/c.txt", "/w/d.log"},
		[]Pattern{tmp, log},
	)

	// matched entries keep their incoming order, not pattern order
	assert.Equal(t, []string{"/w/c.txt", "/w/a.log", "/w/b.tmp", "/w/d.log"}, got)
}
