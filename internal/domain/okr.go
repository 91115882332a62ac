package domain

// KeyResult is one measurable result under an objective.
type KeyResult struct {
	ID          string
	Description string
}

// OKR is an objective with its key results.
type OKR struct {
	ID         string
	Objective  string
	KeyResults []KeyResult
}

// OkrSet groups the OKRs of one planning period, e.g. "2025-H2".
type OkrSet struct {
	PeriodID   string
	PeriodName string
	OKRs       []OKR
}

// KeyResultIDs returns all KR IDs contained in the set.
func (s OkrSet) KeyResultIDs() []string {
	var ids []string
	for _, o := range s.OKRs {
		for _, kr := range o.KeyResults {
			ids = append(ids, kr.ID)
		}
	}
	return ids
}
