// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "slices"

// RSVPIndex maps a user id to the set of event ids the user has RSVP'd to.
// Sets are stored as slices without duplicates; order carries no meaning.
type RSVPIndex map[string][]string

// Add records eventID for userID. It reports whether the set changed.
func (x RSVPIndex) Add(userID, eventID string) bool {
	if slices.Contains(x[userID], eventID) {
		return false
	}
	x[userID] = append(x[userID], eventID)
	return true
}

// Remove drops eventID from the set of userID. It reports whether the set changed.
func (x RSVPIndex) Remove(userID, eventID string) bool {
	ids, ok := x[userID]
	if !ok {
		return false
	}
	kept := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == eventID })
	x[userID] = kept
	return len(kept) != len(ids)
}

// Has reports whether userID has RSVP'd to eventID.
func (x RSVPIndex) Has(userID, eventID string) bool {
	return slices.Contains(x[userID], eventID)
}

// Purge removes eventID from every user's set and returns the number of sets touched.
func (x RSVPIndex) Purge(eventID string) int {
	n := 0
	for userID := range x {
		if x.Remove(userID, eventID) {
			n++
		}
	}
	return n
}

// EventIDs returns the set of userID as a lookup map.
func (x RSVPIndex) EventIDs(userID string) map[string]struct{} {
	set := make(map[string]struct{}, len(x[userID]))
	for _, id := range x[userID] {
		set[id] = struct{}{}
	}
	return set
}
