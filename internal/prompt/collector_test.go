package prompt_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubreport/internal/model"
	"clubreport/internal/prompt"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 20, 10, 0, 0, 0, time.Local)
}

func collect(t *testing.T, input string, opts ...prompt.Option) (model.Request, string, error) {
	t.Helper()

	var out bytes.Buffer
	opts = append([]prompt.Option{prompt.WithClock(fixedClock)}, opts...)
	req, err := prompt.NewCollector(strings.NewReader(input), &out, opts...).Collect()
	return req, out.String(), err
}

func TestCollectDefaultsAndDays(t *testing.T) {
	req, out, err := collect(t, "\n\nh\n5\n02-264\n19\nA-0511\n\n")
	require.NoError(t, err)

	assert.Equal(t, model.Period{Year: 2025, Month: 3}, req.Period)
	assert.Equal(t, "h", req.Location.Code)
	assert.Equal(t, []model.DayInput{
		{Day: 5, Room: "02-264"},
		{Day: 19, Room: "A-0511"},
	}, req.Days)
	assert.Contains(t, out, "活動報告（八王子） - 2025年3月")
}

func TestCollectExplicitYearMonth(t *testing.T) {
	req, _, err := collect(t, "2024\n11\nS\n\n")
	require.NoError(t, err)

	assert.Equal(t, model.Period{Year: 2024, Month: 11}, req.Period)
	assert.Equal(t, "s", req.Location.Code)
	assert.Empty(t, req.Days)
}

func TestCollectRepromptsOnBadInput(t *testing.T) {
	input := strings.Join([]string{
		"abc", "24", "2026", // year: not numeric, too short, ok
		"13", "x", "4", // month: out of range, not numeric, ok
		"k", "s", // location
		"0", "zz", "7", "room", // day: out of range, not numeric, ok
		"",
	}, "\n") + "\n"

	req, out, err := collect(t, input)
	require.NoError(t, err)

	assert.Equal(t, model.Period{Year: 2026, Month: 4}, req.Period)
	assert.Equal(t, "s", req.Location.Code)
	require.Len(t, req.Days, 1)
	assert.Equal(t, model.DayInput{Day: 7, Room: "room"}, req.Days[0])

	assert.Equal(t, 2, strings.Count(out, "有効な年を入力してください。"))
	assert.Contains(t, out, "1から12の間で入力してください。")
	assert.Contains(t, out, "有効な月を入力してください。")
	assert.Contains(t, out, "'h'（八王子）または's'（新宿）を入力してください。")
	assert.Contains(t, out, "1から31の間の日を入力してください。")
	assert.Contains(t, out, "有効な日を入力してください。")
	// 不正な入力で枠を消費しない
	assert.Equal(t, 3, strings.Count(out, "活動日 1 "))
}

func TestCollectStopsAtMaxDays(t *testing.T) {
	var b strings.Builder
	b.WriteString("\n\nh\n")
	for d := 1; d <= 8; d++ {
		b.WriteString("10\nr\n")
	}

	req, _, err := collect(t, b.String(), prompt.WithMaxDays(6))
	require.NoError(t, err)
	assert.Len(t, req.Days, 6)
}

func TestCollectEOFDuringDaysEndsCollection(t *testing.T) {
	req, _, err := collect(t, "\n\nh\n3\nlast-room")
	require.NoError(t, err)
	assert.Equal(t, []model.DayInput{{Day: 3, Room: "last-room"}}, req.Days)
}

func TestCollectEOFBeforeLocationFails(t *testing.T) {
	_, _, err := collect(t, "2025\n3\n")
	require.ErrorIs(t, err, prompt.ErrInputClosed)
}

func TestCollectCustomLocations(t *testing.T) {
	locs := []model.Location{{Code: "k", Name: "小金井"}}
	req, out, err := collect(t, "\n\nk\n\n", prompt.WithLocations(locs))
	require.NoError(t, err)

	assert.Equal(t, "（小金井）", req.Location.Label())
	assert.Contains(t, out, "k: 小金井")
}
