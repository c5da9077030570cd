// Package mention resolves @First Last mentions in comment text to
// directory users.
package mention

import (
	"regexp"
	"strings"

	"github.com/nhle/loan-checklist/internal/model"
)

// mentionPattern matches "@First Last" where each name token is made of
// letters, apostrophes, or hyphens and the tokens are separated by a
// single space.
var mentionPattern = regexp.MustCompile(`@([\p{L}'-]+) ([\p{L}'-]+)`)

// SegmentKind distinguishes plain text from a resolved mention.
type SegmentKind string

const (
	SegmentText    SegmentKind = "text"
	SegmentMention SegmentKind = "mention"
)

// Segment is one piece of rendered comment text.
type Segment struct {
	Kind   SegmentKind `json:"kind"`
	Value  string      `json:"value"`
	UserID string      `json:"user_id,omitempty"`
}

// index maps lower-cased "first last" to a user. When two users share a
// full name the first one listed wins.
func index(users []model.User) map[string]model.User {
	byName := make(map[string]model.User, len(users))
	for _, u := range users {
		key := strings.ToLower(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
		if _, ok := byName[key]; !ok {
			byName[key] = u
		}
	}
	return byName
}

// Extract returns the ids of users mentioned in text, deduplicated in
// order of first mention. Mentions that match no user are ignored.
func Extract(text string, users []model.User) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	byName := index(users)
	seen := make(map[string]bool)
	var ids []string
	for _, m := range matches {
		u, ok := byName[strings.ToLower(m[1]+" "+m[2])]
		if !ok || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		ids = append(ids, u.ID)
	}
	return ids
}

// Render splits text into plain and mention segments so resolved
// mentions can be highlighted. Unresolved "@Name Name" tokens stay in
// the surrounding text segment.
func Render(text string, users []model.User) []Segment {
	byName := index(users)

	var (
		segments []Segment
		plain    strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, Segment{Kind: SegmentText, Value: plain.String()})
			plain.Reset()
		}
	}

	last := 0
	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		first, lastName := text[loc[2]:loc[3]], text[loc[4]:loc[5]]

		plain.WriteString(text[last:start])
		if u, ok := byName[strings.ToLower(first+" "+lastName)]; ok {
			flush()
			segments = append(segments, Segment{Kind: SegmentMention, Value: text[start:end], UserID: u.ID})
		} else {
			plain.WriteString(text[start:end])
		}
		last = end
	}
	plain.WriteString(text[last:])
	flush()

	return segments
}

// Suggestions lists the users the actor may mention on a loan. Elevated
// actors (Administrator, Loan Officer) may mention any team member or
// any Loan Officer; everyone else is limited to the loan team. The actor
// is never suggested.
func Suggestions(actor model.User, teamMemberIDs []string, users []model.User) []model.User {
	team := make(map[string]bool, len(teamMemberIDs))
	for _, id := range teamMemberIDs {
		team[id] = true
	}

	var out []model.User
	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}
		if team[u.ID] || (actor.Elevated() && u.Role == model.RoleLoanOfficer) {
			out = append(out, u)
		}
	}
	return out
}

// FilterByPrefix narrows suggestions to users whose full name starts
// with the partially typed query, case-insensitively.
func FilterByPrefix(users []model.User, query string) []model.User {
	q := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(query, "@")))
	if q == "" {
		return users
	}

	var out []model.User
	for _, u := range users {
		name := strings.ToLower(u.FullName())
		if strings.HasPrefix(name, q) || strings.HasPrefix(strings.ToLower(u.LastName), q) {
			out = append(out, u)
		}
	}
	return out
}
