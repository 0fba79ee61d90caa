// Package feed is the client-side data layer: it derives filtered and sorted
// views from a fetched post snapshot and renders the restricted markup subset
// for display. Derivation is pure; state lives in Store.
package feed

import (
	"sort"
	"strconv"
	"strings"

	"digitalpen/internal/models"
)

// SortOrder selects how a post view is ordered.
type SortOrder string

const (
	DateAsc   SortOrder = "date-asc"
	DateDesc  SortOrder = "date-desc"
	LikesAsc  SortOrder = "likes-asc"
	LikesDesc SortOrder = "likes-desc"
)

// Filter returns the posts whose title contains the query case-insensitively,
// or whose like count's decimal form contains it. An empty query matches
// everything.
func Filter(posts []models.Post, query string) []models.Post {
	if query == "" {
		return posts
	}

	q := strings.ToLower(query)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strconv.Itoa(p.Likes), q) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders posts by the requested key. The sort is stable: entries with
// equal keys keep their original (store) order. Unrecognized orders fall back
// to newest-first, the default view.
func Sort(posts []models.Post, order SortOrder) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)

	switch order {
	case DateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case LikesAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes < out[j].Likes
		})
	case LikesDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes > out[j].Likes
		})
	case DateDesc:
		fallthrough
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
