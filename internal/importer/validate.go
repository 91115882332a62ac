package importer

import (
	"fmt"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// ValidateImportSchema checks the import file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	userIDs := make(map[string]bool)
	errs = append(errs, validateUsers(schema.Users, userIDs)...)

	krIDs := make(map[string]bool)
	errs = append(errs, validateOkrSets(schema.OkrSets, krIDs)...)

	errs = append(errs, validateProjects(schema.Projects, userIDs, krIDs)...)

	return errs
}

func validateUsers(users []UserImport, userIDs map[string]bool) []error {
	var errs []error

	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)

		if u.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if userIDs[u.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, u.ID))
		} else {
			userIDs[u.ID] = true
		}

		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	return errs
}

func validateOkrSets(sets []OkrSetImport, krIDs map[string]bool) []error {
	var errs []error

	periodIDs := make(map[string]bool)
	for i, set := range sets {
		prefix := fmt.Sprintf("okrSets[%d]", i)

		if set.PeriodID == "" {
			errs = append(errs, fmt.Errorf("%s.periodId is required", prefix))
		} else if periodIDs[set.PeriodID] {
			errs = append(errs, fmt.Errorf("%s.periodId: duplicate period %q", prefix, set.PeriodID))
		} else {
			periodIDs[set.PeriodID] = true
		}

		for j, okr := range set.Okrs {
			okrPrefix := fmt.Sprintf("%s.okrs[%d]", prefix, j)
			if okr.Objective == "" {
				errs = append(errs, fmt.Errorf("%s.objective is required", okrPrefix))
			}
			for k, kr := range okr.KeyResults {
				krPrefix := fmt.Sprintf("%s.keyResults[%d]", okrPrefix, k)
				if kr.ID == "" {
					errs = append(errs, fmt.Errorf("%s.id is required", krPrefix))
				} else if krIDs[kr.ID] {
					errs = append(errs, fmt.Errorf("%s.id: duplicate key result %q", krPrefix, kr.ID))
				} else {
					krIDs[kr.ID] = true
				}
			}
		}
	}

	return errs
}

func validateProjects(projects []ProjectImport, userIDs, krIDs map[string]bool) []error {
	var errs []error

	projectIDs := make(map[string]bool)
	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if p.ID != "" {
			if projectIDs[p.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, p.ID))
			}
			projectIDs[p.ID] = true
		}

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Status != "" && !domain.ValidProjectStatuses[domain.ProjectStatus(p.Status)] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, p.Status))
		}
		if p.Priority != "" && !domain.ValidPriorities[domain.Priority(p.Priority)] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, p.Priority))
		}

		for _, krID := range p.KeyResultIDs {
			if !krIDs[krID] {
				errs = append(errs, fmt.Errorf("%s.keyResultIds: key result %q not found in okrSets", prefix, krID))
			}
		}
		for _, followerID := range p.Followers {
			if !userIDs[followerID] {
				errs = append(errs, fmt.Errorf("%s.followers: user %q not found in users", prefix, followerID))
			}
		}

		errs = append(errs, validateRoster(prefix+".productManagers", p.ProductManagers, userIDs)...)
		errs = append(errs, validateRoster(prefix+".backendDevelopers", p.BackendDevelopers, userIDs)...)
		errs = append(errs, validateRoster(prefix+".frontendDevelopers", p.FrontendDevelopers, userIDs)...)
		errs = append(errs, validateRoster(prefix+".qaTesters", p.QaTesters, userIDs)...)

		errs = append(errs, validateOptionalDate(prefix+".proposedDate", p.ProposedDate)...)
		errs = append(errs, validateOptionalDate(prefix+".launchDate", p.LaunchDate)...)
	}

	return errs
}

func validateRoster(prefix string, members []MemberImport, userIDs map[string]bool) []error {
	var errs []error

	for i, m := range members {
		memberPrefix := fmt.Sprintf("%s[%d]", prefix, i)

		if m.UserID == "" {
			errs = append(errs, fmt.Errorf("%s.userId is required", memberPrefix))
		} else if !userIDs[m.UserID] {
			errs = append(errs, fmt.Errorf("%s.userId: user %q not found in users", memberPrefix, m.UserID))
		}

		for j, slot := range m.TimeSlots {
			slotPrefix := fmt.Sprintf("%s.timeSlots[%d]", memberPrefix, j)
			errs = append(errs, validateOptionalDate(slotPrefix+".startDate", slot.StartDate)...)
			errs = append(errs, validateOptionalDate(slotPrefix+".endDate", slot.EndDate)...)
		}
		errs = append(errs, validateOptionalDate(memberPrefix+".startDate", m.StartDate)...)
		errs = append(errs, validateOptionalDate(memberPrefix+".endDate", m.EndDate)...)
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
