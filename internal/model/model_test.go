package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	for _, iv := range Intervals() {
		got, err := ParseInterval(string(iv))
		require.NoError(t, err)
		assert.Equal(t, iv, got)
		assert.NotZero(t, got.Duration())
	}

	got, err := ParseInterval(" 1H ")
	require.NoError(t, err)
	assert.Equal(t, Interval1h, got)

	_, err = ParseInterval("2h")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	assert.Equal(t, 90*time.Minute, Interval90m.Duration())
	assert.Equal(t, "1.5 hours", Interval90m.Label())
}

func TestTimeWindow(t *testing.T) {
	auto := TimeWindow{Start: "12:00", End: "11:00", Auto: true}
	require.NoError(t, auto.Validate(), "auto windows ignore manual times")
	assert.Equal(t, AutoWindow(), auto.Effective())

	start, end, err := auto.Offsets()
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, start)
	assert.Equal(t, 16*time.Hour, end)

	assert.NoError(t, TimeWindow{Start: "10:00", End: "10:15"}.Validate())
	assert.ErrorIs(t, TimeWindow{Start: "10:00", End: "10:00"}.Validate(), ErrInvalidTimeWindow)
	assert.ErrorIs(t, TimeWindow{Start: "25:00", End: "26:00"}.Validate(), ErrInvalidTimeWindow)
	assert.ErrorIs(t, TimeWindow{Start: "10:00", End: "noon"}.Validate(), ErrInvalidTimeWindow)
}

func TestCandleTime_Unmarshal(t *testing.T) {
	want := time.Date(2005, 3, 10, 9, 30, 0, 0, time.UTC)
	inputs := []string{
		`"2005-03-10T09:30:00Z"`,
		`"2005-03-10T09:30:00"`,
		`"2005-03-10 09:30:00"`,
		`"2005-03-10 09:30"`,
		`1110447000000`,
	}
	for _, in := range inputs {
		var ct CandleTime
		require.NoError(t, json.Unmarshal([]byte(in), &ct), in)
		assert.True(t, want.Equal(ct.Time), "%s -> %s", in, ct.Time)
	}

	var ct CandleTime
	assert.Error(t, json.Unmarshal([]byte(`"10/03/2005"`), &ct))
}

func TestAnalysisResponse_Decode(t *testing.T) {
	body := `{
		"success": true,
		"model_count": 1,
		"historical_count": 2,
		"period": {"start": "2005-03-05", "end": "2005-03-10"},
		"model_candles": [{"time": "2005-03-05 09:30:00", "open": 1, "high": 2, "low": 0.5, "close": 1.5}],
		"historical_candles": [
			{"time": "2005-03-05 09:30:00", "open": 1, "high": 2, "low": 0.5, "close": 0.8},
			{"time": "2005-03-05 09:45:00", "open": 1, "high": 2, "low": 0.5, "close": 1}
		]
	}`
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.HistoricalCandles, 2)
	assert.Equal(t, 1, resp.ModelCandles[0].Direction())
	assert.Equal(t, -1, resp.HistoricalCandles[0].Direction())
	assert.Equal(t, 0, resp.HistoricalCandles[1].Direction())
	assert.Equal(t, []float64{0.8, 1}, Closes(resp.HistoricalCandles))
}

func TestActionText(t *testing.T) {
	assert.Equal(t, "Noticeable growth", ActionBuy.Text())
	assert.Equal(t, "Noticeable decline", ActionSell.Text())
	assert.Equal(t, "Neither buy nor sell", ActionHold.Text())
	assert.Equal(t, "Something went wrong", Action("?").Text())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$101.25", FormatPrice(101.245))
	assert.Equal(t, "$0.10", FormatPrice(0.1))
	assert.Equal(t, "$100.00", FormatPrice(100))
	assert.Equal(t, "-$2.50", FormatPrice(-2.5))
}
