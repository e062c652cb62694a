// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package resources defines the Talent and Score document shapes, the
// stores that index, delete and search them, and the Resource (search)
// capability that TalentStore implements.
package resources

// Band is a canonical experience bucket.
type Band string

const (
	BandZeroToOne   Band = "0..1"
	BandOneToTwo    Band = "1..2"
	BandTwoToFour   Band = "2..4"
	BandFourToSix   Band = "4..6"
	BandSixToEight  Band = "6..8"
	BandEightPlus   Band = "8+"
)

// AllBands is the ladder in ascending order, used by the experience-band
// lookup when translating a minimum-years filter into a set of bands.
var AllBands = []Band{BandZeroToOne, BandOneToTwo, BandTwoToFour, BandFourToSix, BandSixToEight, BandEightPlus}

// DesiredRole is one element of the structured desired_roles sequence.
type DesiredRole struct {
	Role       string `json:"role"`
	Experience Band   `json:"experience"`
}

// SalaryExpectation is one element of a Talent's salary_expectations.
type SalaryExpectation struct {
	Minimum  *int64 `json:"minimum,omitempty"`
	Currency string `json:"currency"`
	City     string `json:"city"`
}

// Talent is the primary indexed document.
type Talent struct {
	ID       int64 `json:"id"`
	Accepted bool  `json:"accepted"`

	DesiredRoles                []DesiredRole `json:"desired_roles,omitempty"`
	DesiredWorkRoles            []string      `json:"desired_work_roles,omitempty"`
	DesiredWorkRolesExperience  []Band        `json:"desired_work_roles_experience,omitempty"`

	ProfessionalExperience Band `json:"professional_experience,omitempty"`

	WorkLocations     []string `json:"work_locations,omitempty"`
	CurrentLocation   string   `json:"current_location,omitempty"`
	WorkAuthorization string   `json:"work_authorization,omitempty"`

	Skills           string `json:"skills,omitempty"`
	Summary          string `json:"summary,omitempty"`
	Headline         string `json:"headline,omitempty"`
	WorkExperiences  string `json:"work_experiences,omitempty"`
	Educations       string `json:"educations,omitempty"`
	Languages        string `json:"languages,omitempty"`

	ContactedCompanyIDs []int64 `json:"contacted_company_ids,omitempty"`
	BlockedCompanies    []int64 `json:"blocked_companies,omitempty"`

	BatchStartsAt  string `json:"batch_starts_at"`
	BatchEndsAt    string `json:"batch_ends_at"`
	AddedToBatchAt string `json:"added_to_batch_at,omitempty"`

	Weight int64 `json:"weight"`

	AvatarURL      string `json:"avatar_url,omitempty"`
	LatestPosition string `json:"latest_position,omitempty"`

	SalaryExpectations []SalaryExpectation `json:"salary_expectations,omitempty"`
}

// FoundTalent is the projection of Talent returned by search.
type FoundTalent struct {
	ID                 int64               `json:"id"`
	Headline           string              `json:"headline,omitempty"`
	AvatarURL          string              `json:"avatar_url,omitempty"`
	WorkLocations      []string            `json:"work_locations,omitempty"`
	CurrentLocation    string              `json:"current_location,omitempty"`
	SalaryExpectations []SalaryExpectation `json:"salary_expectations,omitempty"`
	RolesExperiences   []DesiredRole       `json:"roles_experiences,omitempty"`
	LatestPosition     string              `json:"latest_position,omitempty"`
	BatchStartsAt      string              `json:"batch_starts_at"`
}

// SearchResult pairs a FoundTalent with its highlight fragments, if any.
type SearchResult struct {
	Talent    FoundTalent         `json:"talent"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SearchResults is the top-level response body for GET /talents.
type SearchResults struct {
	Total      int64          `json:"total"`
	Talents    []SearchResult `json:"talents"`
	RawESQuery string         `json:"raw_es_query,omitempty"`
}

// Score is the auxiliary document linking a talent to a job match.
type Score struct {
	RequestID  string  `json:"request_id"`
	JobID      int64   `json:"job_id"`
	TalentID   int64   `json:"talent_id"`
	Score      float64 `json:"score"`
	PersonID   *int64  `json:"person_id,omitempty"`
	CompanyID  *int64  `json:"company_id,omitempty"`
	PositionID *int64  `json:"position_id,omitempty"`
}
