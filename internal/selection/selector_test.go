package selection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) CalendarDate { return MustParseDate(s) }

func TestSelect_FromEmptyStartsPartial(t *testing.T) {
	for _, raw := range []string{"1999-01-01", "2005-03-10", "2100-12-31"} {
		s := New()
		st := s.Select(d(raw))
		assert.Equal(t, PhasePartial, st.Phase(), raw)
		assert.True(t, st.Start.Equal(d(raw)))
		assert.True(t, st.End.IsZero())
	}
}

func TestSelect_SecondClickCompletesInOrder(t *testing.T) {
	tests := []struct {
		first, second string
		start, end    string
	}{
		{"2005-03-05", "2005-03-10", "2005-03-05", "2005-03-10"},
		{"2005-03-10", "2005-03-10", "2005-03-10", "2005-03-10"},
		{"2005-03-10", "2005-03-05", "2005-03-05", "2005-03-10"},
		{"2005-12-31", "2004-01-01", "2004-01-01", "2005-12-31"},
	}
	for _, tt := range tests {
		s := New()
		s.Select(d(tt.first))
		st := s.Select(d(tt.second))
		assert.Equal(t, PhaseComplete, st.Phase())
		assert.Equal(t, tt.start, st.Start.String(), "%s then %s", tt.first, tt.second)
		assert.Equal(t, tt.end, st.End.String(), "%s then %s", tt.first, tt.second)
	}
}

func TestSelect_ThirdClickDiscardsRange(t *testing.T) {
	s := New()
	s.Select(d("2005-03-01"))
	s.Select(d("2005-03-31"))

	// Even a date inside the old range starts over instead of moving an end.
	st := s.Select(d("2005-03-15"))
	assert.Equal(t, PhasePartial, st.Phase())
	assert.Equal(t, "2005-03-15", st.Start.String())
	assert.True(t, st.End.IsZero())
}

func TestSelect_ChronologicalNotLexicographic(t *testing.T) {
	// "2005-10-1" < "2005-9-30" as strings, but not as days.
	s := New()
	_, err := s.SelectString("2005-10-1")
	require.NoError(t, err)
	st, err := s.SelectString("2005-9-30")
	require.NoError(t, err)

	assert.Equal(t, "2005-09-30", st.Start.String())
	assert.Equal(t, "2005-10-01", st.End.String())
	assert.True(t, s.IsInRange(d("2005-10-01")))
}

func TestSelectString_MalformedLeavesStateUnchanged(t *testing.T) {
	s := New()
	s.Select(d("2005-03-10"))
	before := s.State()

	for _, raw := range []string{"", "yesterday", "2005-02-30", "2005-13-01", "05-03-10", "2005/03/10", "0001-01-01", "0001-1-1"} {
		st, err := s.SelectString(raw)
		require.ErrorIs(t, err, ErrMalformedDate, raw)
		assert.Equal(t, before, st)
		assert.Equal(t, before, s.State())
	}
}

func TestSelect_DateDomainEdges(t *testing.T) {
	_, err := ParseDate("0001-01-01")
	assert.ErrorIs(t, err, ErrMalformedDate)
	_, err = ParseDate("2005-02-29")
	assert.ErrorIs(t, err, ErrMalformedDate)

	first, err := ParseDate("0001-01-02")
	require.NoError(t, err)
	assert.False(t, first.IsZero())
	last, err := ParseDate("9999-12-31")
	require.NoError(t, err)
	leap, err := ParseDate("2004-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2004-02-29", leap.String())

	s := New()
	clicks := []struct {
		raw   string
		phase Phase
	}{
		{"0001-01-02", PhasePartial},
		{"0001-01-01", PhasePartial},
		{"9999-12-31", PhaseComplete},
		{"2004-02-29", PhasePartial},
		{"2005-02-29", PhasePartial},
		{"0001-1-2", PhaseComplete},
	}
	for _, c := range clicks {
		st, _ := s.SelectString(c.raw)
		assert.Equal(t, c.phase, st.Phase(), c.raw)
		require.NoError(t, st.validate(), c.raw)
		require.NoError(t, s.State().validate(), c.raw)
	}

	st := s.State()
	assert.True(t, st.Start.Equal(first))
	assert.True(t, st.End.Equal(leap))
	assert.True(t, s.IsInRange(first))
	assert.False(t, s.IsInRange(last))
}

func TestSelect_ZeroDateIgnored(t *testing.T) {
	s := New()
	assert.Equal(t, PhaseEmpty, s.Select(CalendarDate{}).Phase())

	s.Select(d("2005-03-10"))
	st := s.Select(CalendarDate{})
	assert.Equal(t, PhasePartial, st.Phase())
	assert.Equal(t, "2005-03-10", st.Start.String())
	require.NoError(t, st.validate())
}

func TestIsInRange(t *testing.T) {
	s := New()
	assert.False(t, s.IsInRange(d("2005-03-07")), "empty")

	s.Select(d("2005-03-05"))
	assert.False(t, s.IsInRange(d("2005-03-05")), "partial")

	s.Select(d("2005-03-10"))
	assert.True(t, s.IsInRange(d("2005-03-05")))
	assert.True(t, s.IsInRange(d("2005-03-07")))
	assert.True(t, s.IsInRange(d("2005-03-10")))
	assert.False(t, s.IsInRange(d("2005-03-04")))
	assert.False(t, s.IsInRange(d("2005-03-11")))
}

func TestQueriesDoNotMutate(t *testing.T) {
	s := New()
	s.Select(d("2005-03-05"))
	s.Select(d("2005-03-10"))
	before := s.State()

	for i := 0; i < 3; i++ {
		assert.True(t, s.IsInRange(d("2005-03-07")))
		assert.Equal(t, MarkInRange, s.Mark(d("2005-03-07")))
		_, ok := s.Range()
		assert.True(t, ok)
	}
	assert.Equal(t, before, s.State())
}

func TestScenario(t *testing.T) {
	s := New()

	st := s.Select(d("2005-03-10"))
	assert.Equal(t, PhasePartial, st.Phase())
	assert.Equal(t, "2005-03-10", st.Start.String())

	st = s.Select(d("2005-03-05"))
	assert.Equal(t, PhaseComplete, st.Phase())
	assert.Equal(t, "2005-03-05", st.Start.String())
	assert.Equal(t, "2005-03-10", st.End.String())

	assert.True(t, s.IsInRange(d("2005-03-07")))
	assert.False(t, s.IsInRange(d("2005-03-20")))

	st = s.Select(d("2005-04-01"))
	assert.Equal(t, PhasePartial, st.Phase())
	assert.Equal(t, "2005-04-01", st.Start.String())
}

func TestReset(t *testing.T) {
	s := New()
	s.Select(d("2005-03-05"))
	s.Select(d("2005-03-10"))

	st := s.Reset()
	assert.Equal(t, PhaseEmpty, st.Phase())
	_, ok := s.Range()
	assert.False(t, ok)
}

func TestMark(t *testing.T) {
	s := New()
	s.Select(d("2005-03-05"))
	assert.Equal(t, MarkSelected, s.Mark(d("2005-03-05")))
	assert.Equal(t, MarkNone, s.Mark(d("2005-03-06")))

	s.Select(d("2005-03-08"))
	assert.Equal(t, MarkSelected, s.Mark(d("2005-03-05")))
	assert.Equal(t, MarkInRange, s.Mark(d("2005-03-06")))
	assert.Equal(t, MarkSelected, s.Mark(d("2005-03-08")))
	assert.Equal(t, MarkNone, s.Mark(d("2005-03-09")))
}

func TestRestore(t *testing.T) {
	s, err := Restore(State{Start: d("2005-03-05"), End: d("2005-03-10")})
	require.NoError(t, err)
	assert.True(t, s.IsInRange(d("2005-03-06")))

	_, err = Restore(State{End: d("2005-03-10")})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = Restore(State{Start: d("2005-03-10"), End: d("2005-03-05")})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStateJSON(t *testing.T) {
	in := State{Start: d("2005-3-5")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_date":"2005-03-05","end_date":null}`, string(data))

	var out State
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, PhasePartial, out.Phase())
	assert.True(t, out.Start.Equal(in.Start))
}

func TestRangeDays(t *testing.T) {
	r := Range{Start: d("2005-02-27"), End: d("2005-03-02")}
	assert.Equal(t, 4, r.Days())
	assert.Equal(t, "2005-02-27..2005-03-02", r.String())
}
