package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a seed import: the full
// user directory, the OKR periods, and the project portfolio in one file.
type ImportSchema struct {
	Users    []UserImport    `json:"users"`
	OkrSets  []OkrSetImport  `json:"okrSets"`
	Projects []ProjectImport `json:"projects"`
}

// UserImport defines one user in the import file.
type UserImport struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	DeptName string `json:"deptName,omitempty"`
}

// OkrSetImport defines the OKRs of one period.
type OkrSetImport struct {
	PeriodID   string      `json:"periodId"`
	PeriodName string      `json:"periodName"`
	Okrs       []OkrImport `json:"okrs"`
}

type OkrImport struct {
	ID         string            `json:"id"`
	Objective  string            `json:"objective"`
	KeyResults []KeyResultImport `json:"keyResults"`
}

type KeyResultImport struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ProjectImport defines one project with its four role rosters.
type ProjectImport struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Priority        string   `json:"priority,omitempty"`
	Status          string   `json:"status,omitempty"`
	BusinessProblem string   `json:"businessProblem,omitempty"`
	KeyResultIDs    []string `json:"keyResultIds,omitempty"`
	WeeklyUpdate    string   `json:"weeklyUpdate,omitempty"`
	LastWeekUpdate  string   `json:"lastWeekUpdate,omitempty"`

	ProductManagers    []MemberImport `json:"productManagers,omitempty"`
	BackendDevelopers  []MemberImport `json:"backendDevelopers,omitempty"`
	FrontendDevelopers []MemberImport `json:"frontendDevelopers,omitempty"`
	QaTesters          []MemberImport `json:"qaTesters,omitempty"`

	ProposedDate *string  `json:"proposedDate,omitempty"`
	LaunchDate   *string  `json:"launchDate,omitempty"`
	Followers    []string `json:"followers,omitempty"`
}

// MemberImport defines one roster booking. TimeSlots is the current shape;
// StartDate/EndDate are the legacy single-range fields kept for older files.
type MemberImport struct {
	UserID    string       `json:"userId"`
	TimeSlots []SlotImport `json:"timeSlots,omitempty"`
	StartDate *string      `json:"startDate,omitempty"`
	EndDate   *string      `json:"endDate,omitempty"`
}

type SlotImport struct {
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description string  `json:"description,omitempty"`
}

// LoadImportSchema reads and parses a seed import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
