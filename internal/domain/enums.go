package domain

type TourStatus string

const (
	TourUpcoming  TourStatus = "Upcoming"
	TourActive    TourStatus = "Active"
	TourCompleted TourStatus = "Completed"
)

type PersonStatus string

const (
	PersonPendingInvitation PersonStatus = "pending_invitation"
	PersonActive            PersonStatus = "active"
)

type Role string

const (
	RoleTourManager Role = "Tour Manager"
	RoleArtist      Role = "Artist"
	RoleProduction  Role = "Production"
	RoleCrew        Role = "Crew"
	RoleDriver      Role = "Driver"
	RoleVendor      Role = "Vendor"
)

// Roles lists every role in display order.
var Roles = []Role{RoleTourManager, RoleArtist, RoleProduction, RoleCrew, RoleDriver, RoleVendor}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

type EventType string

const (
	EventTravel      EventType = "Travel"
	EventLoadIn      EventType = "Load-in"
	EventSoundcheck  EventType = "Soundcheck"
	EventPerformance EventType = "Performance"
	EventLoadOut     EventType = "Load-out"
	EventDayOff      EventType = "Day Off"
	EventInterview   EventType = "Interview"
)

var EventTypes = []EventType{
	EventTravel, EventLoadIn, EventSoundcheck, EventPerformance,
	EventLoadOut, EventDayOff, EventInterview,
}

func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

func (p Permission) Valid() bool {
	return p == PermissionRead || p == PermissionWrite
}

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

type SupplierCategory string

const (
	SupplierVenue          SupplierCategory = "Venue"
	SupplierHotel          SupplierCategory = "Hotel"
	SupplierCatering       SupplierCategory = "Catering"
	SupplierLighting       SupplierCategory = "Lighting"
	SupplierSound          SupplierCategory = "Sound"
	SupplierTransportation SupplierCategory = "Transportation"
	SupplierSecurity       SupplierCategory = "Security"
)

type RFPStatus string

const (
	RFPDraft     RFPStatus = "Draft"
	RFPSent      RFPStatus = "Sent"
	RFPResponded RFPStatus = "Responded"
	RFPAwarded   RFPStatus = "Awarded"
	RFPDeclined  RFPStatus = "Declined"
)

type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionVideo        SectionType = "video"
	SectionTickets      SectionType = "tickets"
	SectionGallery      SectionType = "gallery"
	SectionTestimonials SectionType = "testimonials"
	SectionCTA          SectionType = "cta"
	SectionHeader       SectionType = "header"
	SectionFooter       SectionType = "footer"
)

var SectionTypes = []SectionType{
	SectionHero, SectionAbout, SectionVideo, SectionTickets, SectionGallery,
	SectionTestimonials, SectionCTA, SectionHeader, SectionFooter,
}

func (t SectionType) Valid() bool {
	for _, v := range SectionTypes {
		if v == t {
			return true
		}
	}
	return false
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Draft"
	CampaignScheduled CampaignStatus = "Scheduled"
	CampaignSent      CampaignStatus = "Sent"
)

func (s CampaignStatus) Valid() bool {
	return s == CampaignDraft || s == CampaignScheduled || s == CampaignSent
}

type FormStatus string

const (
	FormOpen   FormStatus = "open"
	FormClosed FormStatus = "closed"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
)

var FieldTypes = []FieldType{
	FieldText, FieldEmail, FieldTel, FieldNumber, FieldTextarea,
	FieldSelect, FieldRadio, FieldCheckbox,
}

func (t FieldType) Valid() bool {
	for _, v := range FieldTypes {
		if v == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether the field type draws its answers from a fixed option list.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldRadio || t == FieldCheckbox
}

// FreeText reports whether the field type accepts arbitrary typed input.
func (t FieldType) FreeText() bool {
	switch t {
	case FieldText, FieldEmail, FieldTel, FieldNumber, FieldTextarea:
		return true
	default:
		return false
	}
}
