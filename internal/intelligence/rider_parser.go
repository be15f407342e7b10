package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/llm"
	"google.golang.org/genai"
)

// RiderParser turns free-form rider text into suggested tasks and budget items.
type RiderParser interface {
	Parse(ctx context.Context, text string, people []domain.Person) (domain.RiderParseResult, error)
}

type riderParser struct {
	client llm.LLMClient
}

// NewRiderParser creates a RiderParser backed by client. A nil client makes
// every call fail with llm.ErrNotConfigured.
func NewRiderParser(client llm.LLMClient) RiderParser {
	return &riderParser{client: client}
}

// FormatRoster renders the assignable people as `"id" (name)` joined by ", ".
func FormatRoster(roster []domain.Person) string {
	parts := make([]string, len(roster))
	for i, p := range roster {
		parts[i] = fmt.Sprintf("%q (%s)", p.ID, p.Name)
	}
	return strings.Join(parts, ", ")
}

// riderSchema is the response shape requested from the model.
func riderSchema(roster string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text": {
							Type:        genai.TypeString,
							Description: "A concise description of the actionable task.",
						},
						"assignedTo": {
							Type:        genai.TypeString,
							Description: "The ID of the person from the provided list who is most responsible for this task. Available IDs: " + roster,
						},
					},
					Required: []string{"text", "assignedTo"},
				},
			},
			"budgetItems": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {
							Type:        genai.TypeString,
							Description: "The financial category for the item (e.g., 'Production', 'Hospitality', 'Backline').",
						},
						"amount": {
							Type:        genai.TypeNumber,
							Description: "An estimated cost for the item. If not specified, use 0.",
						},
					},
					Required: []string{"category", "amount"},
				},
			},
		},
		Required: []string{"tasks", "budgetItems"},
	}
}

func (p *riderParser) Parse(ctx context.Context, text string, people []domain.Person) (domain.RiderParseResult, error) {
	if p.client == nil {
		return domain.RiderParseResult{}, llm.ErrNotConfigured
	}
	roster := domain.RiderRoster(people)
	assignees := FormatRoster(roster)

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:           llm.TaskRiderParse,
		SystemPrompt:   riderSystemPrompt,
		UserPrompt:     fmt.Sprintf(riderUserPromptTemplate, assignees, text),
		ResponseSchema: riderSchema(assignees),
	})
	if err != nil {
		return domain.RiderParseResult{}, err
	}

	result, err := llm.ExtractJSON(resp.Text, validateRiderResult(roster))
	if err != nil {
		return domain.RiderParseResult{}, err
	}
	if result.Tasks == nil {
		result.Tasks = []domain.RiderTask{}
	}
	if result.BudgetItems == nil {
		result.BudgetItems = []domain.RiderBudgetItem{}
	}
	return result, nil
}

func validateRiderResult(roster []domain.Person) llm.SchemaValidator[domain.RiderParseResult] {
	ids := make(map[string]bool, len(roster))
	for _, p := range roster {
		ids[p.ID] = true
	}
	return func(r domain.RiderParseResult) error {
		var errs []error
		for i, t := range r.Tasks {
			if strings.TrimSpace(t.Text) == "" {
				errs = append(errs, fmt.Errorf("task %d has no text", i))
			}
			if !ids[t.AssignedTo] {
				errs = append(errs, fmt.Errorf("task %d assigned to %q, who is not on the roster", i, t.AssignedTo))
			}
		}
		for i, b := range r.BudgetItems {
			if strings.TrimSpace(b.Category) == "" {
				errs = append(errs, fmt.Errorf("budget item %d has no category", i))
			}
			if b.Amount < 0 {
				errs = append(errs, fmt.Errorf("budget item %d has a negative amount", i))
			}
		}
		return errors.Join(errs...)
	}
}
