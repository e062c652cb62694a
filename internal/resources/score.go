// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/icalialabs/searchspot/internal/engine"
	"github.com/icalialabs/searchspot/internal/params"
	"github.com/icalialabs/searchspot/internal/querydsl"
)

// ScoreStore drives Score index/search. Search is builder-driven — a
// plain equality-terms query, not the full planner — since Score is only
// ever queried by exact job_id/talent_id match. It is invoked internally
// by TalentStore's cascade delete; nothing in the HTTP surface exposes a
// standalone score search or delete.
type ScoreStore struct {
	Engine *engine.Client
}

// NewScoreStore builds a ScoreStore.
func NewScoreStore(e *engine.Client) *ScoreStore {
	return &ScoreStore{Engine: e}
}

// IndexAll bulk-indexes scores, keyed by their unique request_id.
func (s *ScoreStore) IndexAll(ctx context.Context, index string, scores []Score) error {
	items := make([]engine.BulkItem, len(scores))
	for i, sc := range scores {
		items[i] = engine.BulkItem{ID: sc.RequestID, Source: sc}
	}
	return s.Engine.BulkIndex(ctx, index, items)
}

// Count ANDs job_id and talent_id equality terms and returns the matching
// total, without decoding hits. Unset or mistyped parameters coerce to 0,
// which is never a valid id — an equality lookup on absent parameters
// should match nothing, not degrade to "no constraint" the way the
// planner's optional filters do.
func (s *ScoreStore) Count(ctx context.Context, index string, values url.Values) (int64, error) {
	jobID, _ := params.ScalarU64(values, "job_id")
	talentID, _ := params.ScalarU64(values, "talent_id")

	query := querydsl.New().
		Must(querydsl.Term("job_id", jobID)).
		Must(querydsl.Term("talent_id", talentID)).
		BuildQuery()

	resp, err := s.Engine.Search(ctx, index, query, engine.SearchOptions{Size: 0})
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// searchByTalentID finds every score for talentID, used by the talent
// cascade delete.
func (s *ScoreStore) searchByTalentID(ctx context.Context, index string, talentID int64) ([]Score, error) {
	query := querydsl.New().Must(querydsl.Term("talent_id", talentID)).BuildQuery()

	resp, err := s.Engine.Search(ctx, index, query, engine.SearchOptions{Size: 10000})
	if err != nil {
		return nil, err
	}

	scores := make([]Score, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var sc Score
		if err := json.Unmarshal(hit.Source, &sc); err != nil {
			continue
		}
		scores = append(scores, sc)
	}
	return scores, nil
}

// deleteByTalentID deletes every score belonging to talentID, ensuring no
// orphan scores survive a talent delete (I5).
func (s *ScoreStore) deleteByTalentID(ctx context.Context, index string, talentID int64) error {
	scores, err := s.searchByTalentID(ctx, index, talentID)
	if err != nil {
		return err
	}
	for _, sc := range scores {
		if err := s.Engine.Delete(ctx, index, sc.RequestID); err != nil {
			return err
		}
	}
	return nil
}
