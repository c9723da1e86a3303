package resolvers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xmhha/file-sorter/pkg/rules"
)

func TestArchive(t *testing.T) {
	a := NewArchive()

	v := a.Resolve("/w/photos.rar", "/w/zips/photos.rar")
	assert.Equal(t, rules.VerdictContinue, v.Kind)

	v = a.Resolve("/w/a.zip", "/w/zips/a.zip")
	assert.Equal(t, rules.Move("/w/zips/rar-0001/a.zip"), v)
}

func TestByMonth(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	stamp := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	v := ByMonth{}.Resolve(src, "/sorted/a.pdf")
	assert.Equal(t, rules.Move("/sorted/2024-03/a.pdf"), v)

	v = ByMonth{}.Resolve(filepath.Join(dir, "missing"), "/sorted/missing")
	assert.Equal(t, rules.VerdictErr, v.Kind)
	assert.NotEmpty(t, v.Message)
}

func TestDryRun(t *testing.T) {
	assert.Equal(t, rules.Path("/w/zips/a.zip"), DryRun{}.Resolve("/w/a.zip", "/w/zips/a.zip"))
}

func TestSkipHidden(t *testing.T) {
	assert.Equal(t, rules.VerdictNone, SkipHidden{}.Resolve("/w/.hidden", "/d/.hidden").Kind)
	assert.Equal(t, rules.VerdictContinue, SkipHidden{}.Resolve("/w/shown", "/d/shown").Kind)
}

func TestChain(t *testing.T) {
	tests := []struct {
		name  string
		chain rules.Resolver
		want  rules.Verdict
	}{
		{"empty", Chain(), rules.Continue()},
		{"nil entries", Chain(nil, nil), rules.Continue()},
		{"continue only", Chain(SkipHidden{}), rules.Continue()},
		{"move then dry run", Chain(NewArchive(), DryRun{}), rules.Path("/w/zips/rar-0001/a.zip")},
		{"move only", Chain(NewArchive()), rules.Move("/w/zips/rar-0001/a.zip")},
		{"dry run wins", Chain(DryRun{}, NewArchive()), rules.Path("/w/zips/a.zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chain.Resolve("/w/a.zip", "/w/zips/a.zip"))
		})
	}

	hidden := Chain(SkipHidden{}, DryRun{})
	assert.Equal(t, rules.VerdictNone, hidden.Resolve("/w/.a", "/w/zips/.a").Kind)
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		r, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}

	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownResolver)

	assert.Equal(t, []string{"archive", "by-month", "dry-run", "skip-hidden"}, Names())
}
