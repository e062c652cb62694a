// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/icalialabs/searchspot/internal/engine"
	"github.com/icalialabs/searchspot/internal/index"
	"github.com/icalialabs/searchspot/internal/planner"
)

// TalentStore drives Talent index/delete/search against the shared
// engine client, and cascades Talent deletes into their Score documents.
type TalentStore struct {
	Engine *engine.Client
	Scores *ScoreStore
}

// NewTalentStore builds a TalentStore, wiring the Score cascade.
func NewTalentStore(e *engine.Client) *TalentStore {
	return &TalentStore{Engine: e, Scores: NewScoreStore(e)}
}

// IndexAll bulk-indexes talents into index, synchronizing the structured
// and legacy desired-roles representations before shipping so both are
// present and consistent on read (P6, I2).
func (s *TalentStore) IndexAll(ctx context.Context, index string, talents []Talent) error {
	items := make([]engine.BulkItem, len(talents))
	for i, t := range talents {
		syncDesiredRoles(&t)
		items[i] = engine.BulkItem{ID: strconv.FormatInt(t.ID, 10), Source: t}
	}
	return s.Engine.BulkIndex(ctx, index, items)
}

// syncDesiredRoles enforces the desired-roles duality: if the structured
// form is present it is authoritative and the legacy parallel arrays are
// derived from it; otherwise the structured form is synthesised from the
// legacy arrays. Both forms are always persisted afterward.
func syncDesiredRoles(t *Talent) {
	if len(t.DesiredRoles) > 0 {
		t.DesiredWorkRoles = make([]string, len(t.DesiredRoles))
		t.DesiredWorkRolesExperience = make([]Band, len(t.DesiredRoles))
		for i, r := range t.DesiredRoles {
			t.DesiredWorkRoles[i] = r.Role
			t.DesiredWorkRolesExperience[i] = r.Experience
		}
		return
	}

	n := len(t.DesiredWorkRoles)
	if n == 0 {
		return
	}

	if len(t.DesiredWorkRolesExperience) != n {
		exp := make([]Band, n)
		copy(exp, t.DesiredWorkRolesExperience)
		t.DesiredWorkRolesExperience = exp
	}

	t.DesiredRoles = make([]DesiredRole, n)
	for i := 0; i < n; i++ {
		t.DesiredRoles[i] = DesiredRole{Role: t.DesiredWorkRoles[i], Experience: t.DesiredWorkRolesExperience[i]}
	}
}

// DeleteByID removes the talent and cascades into its scores: scores are
// deleted first, then the talent itself. The two steps are not atomic; a
// crash between them risks an orphan score, accepted per the design (an
// index reset is the recovery path, not a transaction).
func (s *TalentStore) DeleteByID(ctx context.Context, index string, id int64) error {
	if err := s.Scores.deleteByTalentID(ctx, index, id); err != nil {
		return err
	}
	return s.Engine.Delete(ctx, index, strconv.FormatInt(id, 10))
}

// DeleteIndex drops and recreates the talent index, including its
// trigram/words/keywords analyzer chain and mappings, used by the
// DELETE /talents endpoint (§4.E). A bare document delete would leave
// re-indexed talents without the tuned analyzers the search design
// depends on, so this always goes through a full mapping reset rather
// than just removing documents.
func (s *TalentStore) DeleteIndex(ctx context.Context, esIndex string) error {
	return index.Reset(ctx, s.Engine, esIndex)
}

// Search plans and executes a talent search. Engine errors are returned
// to the caller with an empty SearchResults; the HTTP layer logs them and
// still responds 200 with an empty result set, per the read-path error
// taxonomy.
func (s *TalentStore) Search(ctx context.Context, index string, values url.Values) (SearchResults, error) {
	plan := planner.Build(values, time.Now())

	targetIndex := index
	if plan.Index != "" {
		targetIndex = plan.Index
	}

	resp, err := s.Engine.Search(ctx, targetIndex, plan.Query, engine.SearchOptions{
		From:               plan.From,
		Size:               plan.Size,
		Sort:               plan.Sort,
		MinScore:           plan.MinScore,
		TrackScores:        plan.TrackScores,
		Highlight:          plan.Highlight,
		CaptureRequestBody: plan.CaptureRequestBody,
	})
	if err != nil {
		return SearchResults{}, err
	}

	results := SearchResults{Total: resp.Total, Talents: make([]SearchResult, 0, len(resp.Hits))}
	for _, hit := range resp.Hits {
		var t Talent
		if jsonErr := json.Unmarshal(hit.Source, &t); jsonErr != nil {
			continue
		}
		results.Talents = append(results.Talents, SearchResult{
			Talent:    toFoundTalent(t),
			Highlight: hit.Highlight,
		})
	}
	if plan.CaptureRequestBody {
		results.RawESQuery = resp.RawRequest
	}
	return results, nil
}

func toFoundTalent(t Talent) FoundTalent {
	return FoundTalent{
		ID:                 t.ID,
		Headline:           t.Headline,
		AvatarURL:          t.AvatarURL,
		WorkLocations:      t.WorkLocations,
		CurrentLocation:    t.CurrentLocation,
		SalaryExpectations: t.SalaryExpectations,
		RolesExperiences:   t.DesiredRoles,
		LatestPosition:     t.LatestPosition,
		BatchStartsAt:      t.BatchStartsAt,
	}
}
