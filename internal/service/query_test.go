// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/model"
)

func event(id, title string, start time.Time) model.Event {
	return model.Event{ID: id, Title: title, Date: start, EndDate: start.Add(time.Hour), Host: "Host " + id}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestQueryEmptyMatchesEverything(t *testing.T) {
	events := []model.Event{event("a", "A", testDay), event("b", "B", testDay)}

	got := Query{}.Apply(events, language.English)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestQuerySearch(t *testing.T) {
	e := model.Event{
		ID: "x", Title: "Cultural Fest Night", Description: "Music and food",
		Host: "Cultural Committee", Location: "Open Air Theatre", Category: "Culture",
	}
	tests := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"   ", true},
		{"FEST", true},
		{"  food ", true},
		{"committee", true},
		{"theatre", true},
		{"culture", true},
		{"robotics", false},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, Query{Search: tt.search}.Matches(e))
		})
	}
}

func TestQueryHostAndCategoryAreExact(t *testing.T) {
	e := model.Event{ID: "x", Host: "Coding Club", Category: "Tech"}

	assert.True(t, Query{Host: "Coding Club"}.Matches(e))
	assert.False(t, Query{Host: "coding club"}.Matches(e))
	assert.False(t, Query{Host: "Coding"}.Matches(e))
	assert.True(t, Query{Category: "Tech"}.Matches(e))
	assert.False(t, Query{Category: "Sports"}.Matches(e))
}

func TestQueryDateRange(t *testing.T) {
	day := func(n int) time.Time { return testDay.Add(time.Duration(n) * 24 * time.Hour) }
	events := []model.Event{
		event("d2", "Two", day(2).Add(15*time.Hour)),
		event("d4", "Four", day(4).Add(11*time.Hour)),
		event("d7", "Seven", day(7).Add(10*time.Hour)),
	}

	got := Query{From: day(3), To: day(5)}.Apply(events, language.English)
	assert.Equal(t, []string{"d4"}, ids(got))

	// The upper bound covers the whole day.
	late := []model.Event{event("late", "Late", day(5).Add(23*time.Hour+59*time.Minute))}
	assert.Len(t, Query{To: day(5)}.Apply(late, language.English), 1)
	assert.Empty(t, Query{To: day(4)}.Apply(late, language.English))

	// Lower bound is inclusive.
	exact := []model.Event{event("exact", "Exact", day(3))}
	assert.Len(t, Query{From: day(3)}.Apply(exact, language.English), 1)
}

func TestQuerySort(t *testing.T) {
	events := []model.Event{
		event("b", "Beta", testDay.Add(2*time.Hour)),
		event("a", "alpha", testDay.Add(3*time.Hour)),
		event("c", "Gamma", testDay.Add(1*time.Hour)),
	}
	tests := []struct {
		sort SortOrder
		want []string
	}{
		{SortDateAsc, []string{"c", "b", "a"}},
		{SortDateDesc, []string{"a", "b", "c"}},
		{SortTitleAsc, []string{"a", "b", "c"}},
		{SortTitleDesc, []string{"c", "b", "a"}},
		{SortOrder("unknown"), []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := Query{Sort: tt.sort}.Apply(events, language.English)
			assert.Equal(t, tt.want, ids(got))
		})
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids(events), "input must not be reordered")
}

func TestQuerySortIsStable(t *testing.T) {
	events := []model.Event{
		event("1", "Same", testDay),
		event("2", "Same", testDay),
		event("3", "Same", testDay),
	}
	for _, order := range SortOrders {
		got := Query{Sort: order}.Apply(events, language.English)
		assert.Equal(t, []string{"1", "2", "3"}, ids(got), string(order))
	}
}

func TestQueryTitleSortUsesCollation(t *testing.T) {
	events := []model.Event{
		event("z", "Zebra", testDay),
		event("e", "Éclair", testDay),
		event("a", "apple", testDay),
	}
	got := Query{Sort: SortTitleAsc}.Apply(events, language.French)
	assert.Equal(t, []string{"a", "e", "z"}, ids(got))
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortDateAsc, got)

	got, err = ParseSortOrder("titleDesc")
	require.NoError(t, err)
	assert.Equal(t, SortTitleDesc, got)

	_, err = ParseSortOrder("random")
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-10-20T15:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 13, 0, 0, 0, time.UTC)))

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("20/10/2026")
	assert.Error(t, err)
}

func TestFacetsOf(t *testing.T) {
	events := []model.Event{
		{ID: "1", Host: "Coding Club", Category: "Tech"},
		{ID: "2", Host: "Coding Club", Category: ""},
		{ID: "3", Host: "Sports Dept", Category: "Sports"},
		{ID: "4", Host: "", Category: "Tech"},
	}
	f := FacetsOf(events)
	assert.Equal(t, []string{"Coding Club", "Sports Dept"}, f.Hosts)
	assert.Equal(t, []string{"Tech", "Sports"}, f.Categories)

	empty := FacetsOf(nil)
	assert.NotNil(t, empty.Hosts)
	assert.Empty(t, empty.Categories)
}
