package repository

import (
	"sync"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is the password of every bundled demo account.
const SeedPassword = "password123"

var (
	seedHashOnce sync.Once
	seedHash     string
)

func seedPasswordHash() string {
	seedHashOnce.Do(func() {
		h, err := domain.HashPassword(SeedPassword, bcrypt.MinCost)
		if err != nil {
			panic("hashing seed password: " + err.Error())
		}
		seedHash = h
	})
	return seedHash
}

// DefaultDataset returns a fresh copy of the bundled demo workspace: six
// people, three tours and a populated schedule for tour-01.
func DefaultDataset() domain.State {
	return domain.State{
		Tours:     seedTours(),
		People:    seedPeople(),
		Schedule:  domain.Schedule{"tour-01": seedScheduleTour1()},
		Suppliers: seedSuppliers(),
	}
}

func seedPeople() []domain.Person {
	hash := seedPasswordHash()
	person := func(id, name, email string, role domain.Role) domain.Person {
		return domain.Person{
			ID:           id,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Status:       domain.PersonActive,
			Role:         role,
			AvatarURL:    "https://i.pravatar.cc/150?u=" + id,
		}
	}
	return []domain.Person{
		person("person-1", "Alex Johnson", "alex@showrunner.app", domain.RoleTourManager),
		person("person-2", "Maria Garcia", "maria@showrunner.app", domain.RoleArtist),
		person("person-3", "Sam Chen", "sam@showrunner.app", domain.RoleArtist),
		person("person-4", "Jordan Davis", "jordan@showrunner.app", domain.RoleProduction),
		person("person-5", "Casey Lee", "casey@showrunner.app", domain.RoleCrew),
		person("person-6", "Taylor Green", "taylor@showrunner.app", domain.RoleDriver),
	}
}

func seedSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{ID: "sup-1", Name: "Majestic Theater", Category: domain.SupplierVenue, Location: "Denver, CO", ContactEmail: "booking@majestic.com", Rating: 4.5},
		{ID: "sup-2", Name: "Gourmet Catering Co.", Category: domain.SupplierCatering, Location: "Denver, CO", ContactEmail: "contact@gourmetcatering.co", Rating: 5},
		{ID: "sup-3", Name: "Bright Lights Inc.", Category: domain.SupplierLighting, Location: "Denver, CO", ContactEmail: "sales@brightlights.com", Rating: 4},
		{ID: "sup-4", Name: "The Grand Hotel", Category: domain.SupplierHotel, Location: "Denver, CO", ContactEmail: "groupsales@grandhotel.com", Rating: 4.8},
		{ID: "sup-5", Name: "City Arena", Category: domain.SupplierVenue, Location: "Chicago, IL", ContactEmail: "events@cityarena.com", Rating: 4.2},
		{ID: "sup-6", Name: "Rockstar Security", Category: domain.SupplierSecurity, Location: "Chicago, IL", ContactEmail: "info@rockstarsecurity.net", Rating: 4.9},
		{ID: "sup-7", Name: "TourBus Express", Category: domain.SupplierTransportation, Location: "Nashville, TN", ContactEmail: "charters@tourbusexpress.com", Rating: 4.6},
		{ID: "sup-8", Name: "Hyatt Regency Chicago", Category: domain.SupplierHotel, Location: "Chicago, IL", ContactEmail: "chicago.regency@hyatt.com", Rating: 4.5},
		{ID: "sup-9", Name: "StageGlow Productions", Category: domain.SupplierLighting, Location: "Denver, CO", ContactEmail: "contact@stageglow.com", Rating: 4.7},
	}
}

func seedTours() []domain.Tour {
	const unsplash = "?ixlib=rb-4.0.3&q=85&fm=jpg&crop=entropy&cs=srgb"
	return []domain.Tour{
		{
			ID:                "tour-01",
			ArtistName:        "The Lumineers",
			TourName:          "Brightside World Tour",
			Status:            domain.TourActive,
			StartDate:         "2024-08-01",
			EndDate:           "2024-10-25",
			ImageURL:          "https://images.unsplash.com/photo-1524368535928-5b5e00ddc76b" + unsplash + "&w=600",
			Financials:        seedFinancialsTour1(),
			Venues:            seedVenuesTour1(unsplash),
			RFPs:              seedRFPsTour1(),
			Proposals:         seedProposalsTour1(),
			RoomBlocks:        []domain.RoomBlock{{ID: "rb-1", HotelSupplierID: "sup-4", CheckInDate: "2024-08-15", CheckOutDate: "2024-08-18", RoomCount: 20, NegotiatedRate: 200, ConfirmationCode: "GH8823K"}},
			Website:           seedWebsiteTour1(),
			IsWebsiteDeployed: true,
			Campaigns:         seedCampaignsTour1(),
			Registration:      seedRegistrationTour1(),
		},
		{
			ID:         "tour-02",
			ArtistName: "Billie Eilish",
			TourName:   "Happier Than Ever, The World Tour",
			Status:     domain.TourUpcoming,
			StartDate:  "2024-11-01",
			EndDate:    "2025-02-15",
			ImageURL:   "https://images.unsplash.com/photo-1608269752319-350a1498b488" + unsplash + "&w=600",
		},
		{
			ID:         "tour-03",
			ArtistName: "Foo Fighters",
			TourName:   "Rock Legends Tour",
			Status:     domain.TourCompleted,
			StartDate:  "2024-05-10",
			EndDate:    "2024-06-20",
			ImageURL:   "https://images.unsplash.com/photo-1546328636-a1b6d19d6d34" + unsplash + "&w=600",
		},
	}
}

func seedFinancialsTour1() *domain.Financials {
	return &domain.Financials{
		Budget: []domain.BudgetItem{
			{ID: "bud-1", Category: "Venue", Amount: 20000},
			{ID: "bud-2", Category: "Travel & Hotels", Amount: 15000},
			{ID: "bud-3", Category: "Production", Amount: 25000},
			{ID: "bud-4", Category: "Catering", Amount: 5000},
			{ID: "bud-5", Category: "Marketing", Amount: 10000},
		},
		Expenses: []domain.Expense{
			{ID: "exp-1", Description: "Venue Deposit - Red Rocks", Amount: 7000, Date: "2024-07-25", Category: "Venue", SubmittedByID: "person-1", Status: domain.ExpenseApproved},
			{ID: "exp-2", Description: "Bus Fuel", Amount: 850.25, Date: "2024-08-18", Category: "Travel & Hotels", SubmittedByID: "person-6", Status: domain.ExpenseApproved},
			{ID: "exp-3", Description: "Crew Dinner in Denver", Amount: 620.50, Date: "2024-08-15", Category: "Catering", SubmittedByID: "person-1", Status: domain.ExpenseApproved},
			{ID: "exp-4", Description: "Lighting Rental - Bright Lights Inc.", Amount: 8500, Date: "2024-08-10", Category: "Production", SubmittedByID: "person-4", Status: domain.ExpenseApproved},
			{ID: "exp-5", Description: "Hotel Block - The Grand Hotel", Amount: 9600, Date: "2024-08-15", Category: "Travel & Hotels", SubmittedByID: "person-1", Status: domain.ExpenseApproved},
			{ID: "exp-6", Description: "Per Diems (Week 1)", Amount: 2100, Date: "2024-08-19", Category: "Catering", SubmittedByID: "person-1", Status: domain.ExpensePending},
			{ID: "exp-7", Description: "Receiptless expense", Amount: 50, Date: "2024-08-19", Category: "Catering", SubmittedByID: "person-5", Status: domain.ExpensePending},
		},
	}
}

func seedVenuesTour1(unsplash string) []domain.Venue {
	return []domain.Venue{
		{
			ID:           "venue-1",
			Name:         "Red Rocks Amphitheatre",
			Location:     "Morrison, CO",
			MapImageURL:  "https://images.unsplash.com/photo-1596422739504-2d939d75b6f3" + unsplash + "&w=1200",
			FloorPlanURL: "https://images.unsplash.com/photo-1588162120334-9a8523a5b6dc" + unsplash + "&w=1200",
			Pins: []domain.MapPin{
				{ID: "pin-1", X: 50, Y: 50, Label: "Stage"},
				{ID: "pin-2", X: 80, Y: 30, Label: "Production Office"},
				{ID: "pin-3", X: 20, Y: 70, Label: "Bus Parking"},
			},
		},
		{
			ID:          "venue-2",
			Name:        "United Center",
			Location:    "Chicago, IL",
			MapImageURL: "https://images.unsplash.com/photo-1582215979227-2d2011b714b7" + unsplash + "&w=1200",
			Pins:        []domain.MapPin{{ID: "pin-4", X: 60, Y: 45, Label: "Stage"}},
		},
	}
}

func seedRFPsTour1() []domain.RFP {
	return []domain.RFP{
		{ID: "rfp-1", Title: "Venue Rental - Denver", SentDate: "2024-07-20", DueDate: "2024-08-01", Status: domain.RFPResponded, Details: "Requesting quote for venue rental on Aug 16, including sound and basic lighting."},
		{ID: "rfp-2", Title: "Hotel Block - Denver", SentDate: "2024-07-22", DueDate: "2024-08-05", Status: domain.RFPAwarded, Details: "Requesting quote for 20 king rooms, Aug 15-18."},
		{ID: "rfp-3", Title: "Catering - Denver", SentDate: "2024-07-25", DueDate: "2024-08-02", Status: domain.RFPSent, Details: "Requesting catering options for a crew of 30 people on show day."},
		{ID: "rfp-4", Title: "Stage Lighting - Denver", SentDate: "2024-07-26", DueDate: "2024-08-03", Status: domain.RFPResponded, Details: "Requesting proposals for full stage lighting package for Red Rocks show."},
	}
}

func seedProposalsTour1() []domain.Proposal {
	return []domain.Proposal{
		{ID: "prop-1", RFPID: "rfp-1", SupplierID: "sup-1", ReceivedDate: "2024-07-28", TotalCost: 15000, Notes: "Includes house sound system, PA, and basic lighting rig. Additional costs for specialized equipment."},
		{ID: "prop-2", RFPID: "rfp-2", SupplierID: "sup-4", ReceivedDate: "2024-07-30", TotalCost: 9600, Notes: "Rate of $200/night for 20 rooms for 3 nights. Includes breakfast."},
		{ID: "prop-3", RFPID: "rfp-4", SupplierID: "sup-3", ReceivedDate: "2024-07-29", TotalCost: 8500, Notes: "Includes 2 follow spots, 20 PAR cans, and a full LED wash. A lighting director is an additional $800."},
		{ID: "prop-4", RFPID: "rfp-4", SupplierID: "sup-9", ReceivedDate: "2024-07-30", TotalCost: 9200, Notes: "Our premium package with moving heads, hazers, and a dedicated lighting tech included in the price."},
	}
}

func seedWebsiteTour1() []domain.WebsiteSection {
	return []domain.WebsiteSection{
		{ID: "ws-h", Type: domain.SectionHeader},
		{ID: "ws-1", Type: domain.SectionHero, Content: domain.SectionContent{Headline: "The Brightside World Tour", Subheadline: "Join The Lumineers for an unforgettable experience."}},
		{ID: "ws-2", Type: domain.SectionAbout, Content: domain.SectionContent{Title: "About The Tour", Body: `Experience the magic of The Lumineers live as they perform hits from their new album "Brightside" and fan favorites. This world tour brings their signature folk-rock sound to cities across the globe.`}},
		{ID: "ws-3", Type: domain.SectionHero, Content: domain.SectionContent{Headline: "Second Hero", Subheadline: "Another great section."}},
		{ID: "ws-f", Type: domain.SectionFooter, Content: domain.SectionContent{CopyrightText: "© 2024 The Lumineers"}},
	}
}

func seedCampaignsTour1() []domain.EmailCampaign {
	return []domain.EmailCampaign{
		{
			ID: "camp-1", Name: "Tour Announcement", Status: domain.CampaignSent, ScheduledDate: "2024-07-15",
			Stats:   domain.CampaignStats{OpenRate: 45.2, ClickRate: 12.1},
			Subject: "The Lumineers are coming!", FromName: "The Lumineers HQ",
			Content: domain.CampaignContent{Headline: "Brightside World Tour", Body: "We are thrilled to announce our new world tour! Get ready for an unforgettable experience.", CTAButtonText: "View Dates", CTAButtonURL: "#"},
		},
		{
			ID: "camp-2", Name: "Early Bird Tickets", Status: domain.CampaignSent, ScheduledDate: "2024-07-22",
			Stats:   domain.CampaignStats{OpenRate: 38.9, ClickRate: 15.5},
			Subject: "Early Bird Tickets Available Now", FromName: "The Lumineers HQ",
			Content: domain.CampaignContent{Headline: "Get Your Tickets First!", Body: "A special pre-sale is now available for our biggest fans. Don't miss out!", CTAButtonText: "Buy Tickets", CTAButtonURL: "#"},
		},
		{
			ID: "camp-3", Name: "Venue Specific Reminder - Denver", Status: domain.CampaignScheduled, ScheduledDate: "2024-08-10",
			Subject: "See you in Denver, {{user_name}}!", FromName: "The Lumineers HQ",
			Content:      domain.CampaignContent{Headline: "Red Rocks is Calling!", Body: "We can't wait to see you at the show in {{event_city}}. It's going to be a magical night.", CTAButtonText: "Show Details", CTAButtonURL: "#"},
			Segmentation: &domain.Segmentation{LocationIDs: []string{"Red Rocks Amphitheatre"}},
		},
		{
			ID: "camp-4", Name: "Final Ticket Warning", Status: domain.CampaignDraft,
			Subject: "Last Chance for Tickets!", FromName: "The Lumineers HQ",
			Content: domain.CampaignContent{Headline: "Tickets are almost gone!", Body: "Don't miss your chance to see us live. Grab your tickets before they sell out.", CTAButtonText: "Get Final Tickets", CTAButtonURL: "#"},
		},
	}
}

func seedRegistrationTour1() *domain.Registration {
	return &domain.Registration{
		Forms: []domain.RegistrationForm{
			{
				ID: "form-1", Name: "General Admission Sign-up", Status: domain.FormOpen,
				Fields: []domain.FormField{
					{ID: "field-1", Type: domain.FieldText, Label: "Full Name", Required: true, Placeholder: "Enter your full name"},
					{ID: "field-2", Type: domain.FieldEmail, Label: "Email Address", Required: true, Placeholder: "you@example.com"},
					{ID: "field-3", Type: domain.FieldSelect, Label: "T-Shirt Size", Options: []string{"Small", "Medium", "Large", "X-Large"}},
				},
			},
			{ID: "form-2", Name: "VIP Meet & Greet", Status: domain.FormClosed, Fields: []domain.FormField{}},
		},
		Attendees: []domain.Attendee{
			{
				ID: "att-1", FormID: "form-1", RegistrationDate: time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC),
				Responses: []domain.RegistrationResponse{
					{FieldID: "field-1", Value: domain.StringValue("Alice Johnson")},
					{FieldID: "field-2", Value: domain.StringValue("alice@example.com")},
					{FieldID: "field-3", Value: domain.StringValue("Medium")},
				},
			},
			{
				ID: "att-2", FormID: "form-1", RegistrationDate: time.Date(2024, 7, 21, 11, 30, 0, 0, time.UTC),
				Responses: []domain.RegistrationResponse{
					{FieldID: "field-1", Value: domain.StringValue("Bob Williams")},
					{FieldID: "field-2", Value: domain.StringValue("bob@example.com")},
				},
			},
		},
	}
}

func seedScheduleTour1() []domain.ScheduleEvent {
	w := func(id string) domain.EventAssignment {
		return domain.EventAssignment{PersonID: id, Permission: domain.PermissionWrite}
	}
	r := func(id string) domain.EventAssignment {
		return domain.EventAssignment{PersonID: id, Permission: domain.PermissionRead}
	}
	return []domain.ScheduleEvent{
		{
			ID: "event-1", Date: "2024-08-15", Type: domain.EventTravel, Title: "Fly to Denver",
			StartTime: "10:00", EndTime: "12:00", Location: "DEN Airport",
			Notes:      "Flight UA123, pick up at baggage claim 4.",
			AssignedTo: []domain.EventAssignment{w("person-1"), r("person-2"), r("person-3"), w("person-6")},
			Comments: []domain.Comment{
				{ID: "c-1", AuthorID: "person-1", Timestamp: time.Date(2024, 8, 14, 18, 0, 0, 0, time.UTC), Text: "Just confirmed the flight details."},
			},
		},
		{
			ID: "event-2", Date: "2024-08-15", Type: domain.EventLoadIn, Title: "Gear Load-in at Red Rocks",
			StartTime: "15:00", EndTime: "19:00", Location: "Red Rocks Amphitheatre",
			Notes:      "Meet at the east loading bay. Hard hats required.",
			AssignedTo: []domain.EventAssignment{w("person-1"), w("person-4"), r("person-5")},
			Tasks: []domain.Task{
				{ID: "t-1", Text: "Patch front of house snake", Completed: true, AssignedTo: "person-5"},
				{ID: "t-2", Text: "Set up drum mics", AssignedTo: "person-5"},
				{ID: "t-3", Text: "Coordinate with local lighting vendor", AssignedTo: "person-4"},
			},
		},
		{
			ID: "event-3", Date: "2024-08-16", Type: domain.EventSoundcheck, Title: "Soundcheck",
			StartTime: "16:00", EndTime: "18:00", Location: "Red Rocks Amphitheatre",
			AssignedTo: []domain.EventAssignment{w("person-1"), r("person-2"), r("person-3"), r("person-4"), r("person-5")},
		},
		{
			ID: "event-4", Date: "2024-08-16", Type: domain.EventPerformance, Title: "Show at Red Rocks",
			StartTime: "20:00", EndTime: "22:30", Location: "Red Rocks Amphitheatre",
			Notes:      "Special guest appearance planned for the encore.",
			AssignedTo: []domain.EventAssignment{w("person-1"), r("person-2"), r("person-3"), r("person-4"), r("person-5")},
		},
		{
			ID: "event-5", Date: "2024-08-17", Type: domain.EventDayOff, Title: "Day Off in Denver",
			Location:   "Denver, CO",
			AssignedTo: []domain.EventAssignment{w("person-1"), r("person-2"), r("person-3")},
		},
		{
			ID: "event-6", Date: "2024-08-18", Type: domain.EventTravel, Title: "Drive to Chicago",
			StartTime: "09:00", EndTime: "21:00", Location: "On the road",
			Notes:      "Overnight stop planned in Omaha.",
			AssignedTo: []domain.EventAssignment{w("person-1"), w("person-6")},
		},
	}
}
