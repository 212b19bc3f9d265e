package feeds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/logic"
)

// LoadDir reads the known fixture files from dir and returns a feed source
// per file found. Missing files are skipped — a deployment configures only
// the feeds it has — but an unreadable or undecodable file is an error.
func LoadDir(dir string, logger *zap.Logger) ([]logic.FeedSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Sugar()

	var sources []logic.FeedSource

	var streaks []StreakRecord
	if ok, err := loadFile(dir, "streaks.json", &streaks); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewStreakFeed(streaks))
	}

	var predictions []HRPredictionRecord
	if ok, err := loadFile(dir, "hr_predictions.json", &predictions); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewHRPredictionFeed(predictions))
	}

	var milestones []MilestoneRecord
	if ok, err := loadFile(dir, "milestones.json", &milestones); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewMilestoneFeed(milestones))
	}

	var risks []RiskRecord
	if ok, err := loadFile(dir, "risks.json", &risks); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewRiskFeed(risks))
	}

	var slots []SlotMatchupRecord
	if ok, err := loadFile(dir, "slot_matchups.json", &slots); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewSlotMatchupFeed(slots))
	}

	var surges []PowerSurgeRecord
	if ok, err := loadFile(dir, "power_surges.json", &surges); err != nil {
		return nil, err
	} else if ok {
		sources = append(sources, NewPowerSurgeFeed(surges))
	}

	log.Infow("feed fixtures loaded", "dir", dir, "feeds", len(sources))
	return sources, nil
}

func loadFile(dir, name string, out any) (bool, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}
