package domain

import "time"

// DateLayout is the layout of every date-only field (tour dates, event dates, expenses).
const DateLayout = "2006-01-02"

// Tour is the aggregate root for a touring production. Everything except
// people and suppliers hangs off a tour.
type Tour struct {
	ID                string           `json:"id"`
	ArtistName        string           `json:"artistName"`
	TourName          string           `json:"tourName"`
	Status            TourStatus       `json:"status"`
	StartDate         string           `json:"startDate"`
	EndDate           string           `json:"endDate"`
	ImageURL          string           `json:"imageUrl"`
	Financials        *Financials      `json:"financials,omitempty"`
	Venues            []Venue          `json:"venues,omitempty"`
	Website           []WebsiteSection `json:"website,omitempty"`
	IsWebsiteDeployed bool             `json:"isWebsiteDeployed,omitempty"`
	Campaigns         []EmailCampaign  `json:"campaigns,omitempty"`
	Registration      *Registration    `json:"registration,omitempty"`
	RFPs              []RFP            `json:"rfps,omitempty"`
	Proposals         []Proposal       `json:"proposals,omitempty"`
	RoomBlocks        []RoomBlock      `json:"roomBlocks,omitempty"`
}

// StatusForStart derives the status of a newly created tour: Upcoming when
// the start date lies in the future, Active otherwise.
func StatusForStart(startDate string, now time.Time) TourStatus {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return TourActive
	}
	if start.After(now) {
		return TourUpcoming
	}
	return TourActive
}

// FinancialsOrEmpty returns the tour financials, or an empty value when absent.
func (t Tour) FinancialsOrEmpty() Financials {
	if t.Financials == nil {
		return Financials{}
	}
	return *t.Financials
}

// RegistrationOrEmpty returns the tour registration bundle, or an empty value when absent.
func (t Tour) RegistrationOrEmpty() Registration {
	if t.Registration == nil {
		return Registration{}
	}
	return *t.Registration
}

type Financials struct {
	Budget   []BudgetItem `json:"budget"`
	Expenses []Expense    `json:"expenses"`
}

type BudgetItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type Expense struct {
	ID              string        `json:"id"`
	Description     string        `json:"description"`
	Amount          float64       `json:"amount"`
	Date            string        `json:"date"`
	Category        string        `json:"category"`
	SubmittedByID   string        `json:"submittedById"`
	ReceiptURL      string        `json:"receiptUrl,omitempty"`
	Status          ExpenseStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
}

type MapPin struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type Venue struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	MapImageURL  string   `json:"mapImageUrl"`
	FloorPlanURL string   `json:"floorPlanUrl,omitempty"`
	Pins         []MapPin `json:"pins"`
}

type Supplier struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     SupplierCategory `json:"category"`
	Location     string           `json:"location"`
	ContactEmail string           `json:"contactEmail"`
	Rating       float64          `json:"rating"`
}

type RFP struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	SentDate string    `json:"sentDate"`
	DueDate  string    `json:"dueDate"`
	Status   RFPStatus `json:"status"`
	Details  string    `json:"details"`
}

type Proposal struct {
	ID           string  `json:"id"`
	RFPID        string  `json:"rfpId"`
	SupplierID   string  `json:"supplierId"`
	ReceivedDate string  `json:"receivedDate"`
	TotalCost    float64 `json:"totalCost"`
	Notes        string  `json:"notes"`
	FileURL      string  `json:"fileUrl,omitempty"`
}

type RoomBlock struct {
	ID               string  `json:"id"`
	HotelSupplierID  string  `json:"hotelSupplierId"`
	CheckInDate      string  `json:"checkInDate"`
	CheckOutDate     string  `json:"checkOutDate"`
	RoomCount        int     `json:"roomCount"`
	NegotiatedRate   float64 `json:"negotiatedRate"`
	ConfirmationCode string  `json:"confirmationCode,omitempty"`
}
