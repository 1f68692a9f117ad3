package participantservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	noScoresLabel = "No scores yet"

	// maxChartBars bounds the canvas width; only the leading scores are drawn.
	maxChartBars = 40
)

var (
	chartBackground = drawing.ColorFromHex("f8f7f2")
	chartBar        = drawing.ColorFromHex("2f5d50")
	chartText       = drawing.ColorFromHex("1f2933")
)

// RenderLeaderboardChart draws one bar per scored participant in leaderboard
// order, up to maxChartBars. A leaderboard with no scores renders a single
// empty bar.
func RenderLeaderboardChart(entries []LeaderboardEntry) ([]byte, error) {
	bars := make([]chart.Value, 0, min(len(entries), maxChartBars))
	lo, hi := 0.0, 0.0
	for _, e := range entries {
		if e.Points == nil {
			continue
		}
		if len(bars) == maxChartBars {
			break
		}
		v := float64(*e.Points)
		lo, hi = min(lo, v), max(hi, v)
		bars = append(bars, chart.Value{
			Label: e.Participant,
			Value: v,
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		})
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: noScoresLabel, Value: 0})
	}

	// go-chart rejects a zero-height range, so pad it.
	if hi == lo {
		hi = lo + 1
	}

	title := "Leaderboard"
	if len(entries) > 0 && entries[0].Competition != "" {
		title = entries[0].Competition
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      chartWidth(len(bars)),
		Height:     400,
		BarWidth:   40,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func chartWidth(bars int) int {
	return max(600, 80*min(bars, maxChartBars)+120)
}
