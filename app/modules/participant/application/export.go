package participantservice

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const leaderboardSheet = "Leaderboard"

var leaderboardHeader = []interface{}{"Rank", "Participant", "Points", "Appeared at", "Competition"}

// RenderLeaderboardXLSX writes entries, already in leaderboard order, to a
// single-sheet workbook. Unscored participants get an empty points cell.
func RenderLeaderboardXLSX(entries []LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), leaderboardSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := leaderboardHeader
	if err := f.SetSheetRow(leaderboardSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for idx, e := range entries {
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return nil, err
		}
		var points interface{}
		if e.Points != nil {
			points = *e.Points
		}
		cells := []interface{}{idx + 1, e.Participant, points, e.AppearedAt.UTC().Format("2006-01-02 15:04:05"), e.Competition}
		if err := f.SetSheetRow(leaderboardSheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", idx+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
