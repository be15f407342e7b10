package domain

// RiderTask is a task suggested by rider parsing, assigned to a roster member.
type RiderTask struct {
	Text       string `json:"text"`
	AssignedTo string `json:"assignedTo"`
}

// RiderBudgetItem is a budget line suggested by rider parsing.
type RiderBudgetItem struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// RiderParseResult is the structured output of rider parsing.
type RiderParseResult struct {
	Tasks       []RiderTask       `json:"tasks"`
	BudgetItems []RiderBudgetItem `json:"budgetItems"`
}

// Empty reports whether the result suggests nothing.
func (r RiderParseResult) Empty() bool {
	return len(r.Tasks) == 0 && len(r.BudgetItems) == 0
}

// RiderRoster filters people down to the candidates for rider task
// assignment: Production and Tour Manager roles, in roster order.
func RiderRoster(people []Person) []Person {
	var out []Person
	for _, p := range people {
		if p.Role == RoleProduction || p.Role == RoleTourManager {
			out = append(out, p)
		}
	}
	return out
}
