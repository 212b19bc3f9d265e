package feeds

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineupiq/context-api/internal/logic"
	"github.com/lineupiq/context-api/internal/models"
)

func TestStreakFeedLookup(t *testing.T) {
	feed := NewStreakFeed([]StreakRecord{
		{Player: "Aaron Judge", Team: "NYY", Length: 9},
		{Player: "Juan Soto", Team: "NYM", Length: 5},
	})
	ctx := context.Background()

	sig, err := feed.Lookup(ctx, logic.PlayerQuery{Player: "A. Judge", Team: "NYY"})
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, 9, sig.(*models.StreakSignal).Length)

	// Right name, wrong team.
	sig, err = feed.Lookup(ctx, logic.PlayerQuery{Player: "Aaron Judge", Team: "BOS"})
	require.NoError(t, err)
	assert.Nil(t, sig, "team filter must gate the roster before name matching")

	// Unknown player is no signal, not an error.
	sig, err = feed.Lookup(ctx, logic.PlayerQuery{Player: "Fake Player", Team: "NYY"})
	require.NoError(t, err)
	assert.Nil(t, sig)
}

func TestMilestoneFeedComputesDistance(t *testing.T) {
	feed := NewMilestoneFeed([]MilestoneRecord{
		{Player: "Freddie Freeman", Team: "LAD", Stat: "hits", Current: 1998, Target: 2000},
	})

	sig, err := feed.Lookup(context.Background(), logic.PlayerQuery{Player: "Freddie Freeman", Team: "LAD"})
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, 2, sig.(*models.MilestoneSignal).Distance)
}

func TestRosterMatchFirstHitWins(t *testing.T) {
	// Two same-surname players on different teams: the team filter
	// disambiguates; with no team the first entry in feed order wins.
	feed := NewRiskFeed([]RiskRecord{
		{Player: "Will Smith", Team: "LAD", Flags: []string{"catcher rest day likely"}},
		{Player: "Will Smith", Team: "KC", Flags: []string{"low leverage usage"}},
	})
	ctx := context.Background()

	sig, err := feed.Lookup(ctx, logic.PlayerQuery{Player: "W. Smith", Team: "KC"})
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, []string{"low leverage usage"}, sig.(*models.RiskSignal).Flags)

	sig, err = feed.Lookup(ctx, logic.PlayerQuery{Player: "W. Smith"})
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, []string{"catcher rest day likely"}, sig.(*models.RiskSignal).Flags)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeFixture := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	writeFixture("streaks.json", `[{"player":"Aaron Judge","team":"NYY","length":9}]`)
	writeFixture("hr_predictions.json", `[{"player":"Aaron Judge","team":"NYY","rank":3}]`)
	writeFixture("risks.json", `[{"player":"Cold Hitter","team":"MIA","flags":["0-for-18 slide"]}]`)

	sources, err := LoadDir(dir, nil)
	require.NoError(t, err)
	assert.Len(t, sources, 3, "only the files present become feeds")

	names := make(map[string]bool)
	for _, s := range sources {
		names[s.Name()] = true
	}
	assert.True(t, names["streak"] && names["hr_prediction"] && names["risk"])
}

func TestLoadDirBadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "streaks.json"), []byte("{not json"), 0o644))

	_, err := LoadDir(dir, nil)
	assert.Error(t, err)
}

func TestLoadDirEmpty(t *testing.T) {
	sources, err := LoadDir(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
