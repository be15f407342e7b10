package service

import "github.com/alexanderramin/showrunner/internal/domain"

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type SetPasswordInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// CrewMemberInput adds a person when ID is empty and edits one otherwise.
type CrewMemberInput struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// TourInput adds a tour when ID is empty and edits one otherwise.
type TourInput struct {
	ID         string
	ArtistName string
	TourName   string
	StartDate  string
	EndDate    string
}

// EventInput adds an event when ID is empty and edits one otherwise.
// Comments and tasks are never part of an event edit.
type EventInput struct {
	ID         string
	Date       string
	Type       domain.EventType
	Title      string
	StartTime  string
	EndTime    string
	Location   string
	Notes      string
	AssignedTo []domain.EventAssignment
}

type TaskInput struct {
	Text       string
	AssignedTo string
}

// TaskUpdate changes the fields that are set.
type TaskUpdate struct {
	Text       *string
	AssignedTo *string
	Completed  *bool
}

// ExpenseInput adds an expense when ID is empty and edits one otherwise.
type ExpenseInput struct {
	ID          string
	Description string
	Amount      float64
	Date        string
	Category    string
	ReceiptURL  string
}

type BudgetItemInput struct {
	Category string
	Amount   float64
}

type CampaignInput struct {
	Name          string
	ScheduledDate string
}

type FieldInput struct {
	Type        domain.FieldType
	Label       string
	Placeholder string
	Required    bool
	Options     []string
}
