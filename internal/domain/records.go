// Package domain holds the upstream record shapes consumed by the
// intelligence services. These are read-only inputs supplied by the registry
// data provider and the persistence layer; the engine never mutates or
// persists them.
package domain

import "time"

// EntityKind distinguishes companies from natural persons.
type EntityKind string

const (
	EntityKindCompany EntityKind = "company"
	EntityKindPerson  EntityKind = "person"
)

// ParseEntityKind validates a raw entity kind string.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case EntityKindCompany, EntityKindPerson:
		return EntityKind(s), true
	default:
		return "", false
	}
}

// CompanyProfile is the registry profile record for a company. Optional
// fields are pointers: absence means the registry holds no value, which is
// distinct from a zero value.
type CompanyProfile struct {
	CompanyID           string
	Name                string
	Status              string
	IncorporatedOn      *time.Time
	AccountsNextDue     *time.Time
	ConfirmationNextDue *time.Time
	HasBeenLiquidated   bool
	HasCharges          bool
	HasInsolvencyRecord bool
	SICCodes            []string
}

// Officer is a single appointment on a company's roster.
type Officer struct {
	Name        string
	Role        string
	AppointedOn *time.Time
	ResignedOn  *time.Time
}

// Resigned reports whether the officer has left the roster.
func (o Officer) Resigned() bool { return o.ResignedOn != nil }

// Appointment is an officer appointment seen from the person's side,
// carrying the company it belongs to.
type Appointment struct {
	PersonID    string
	CompanyID   string
	CompanyName string
	Role        string
	AppointedOn *time.Time
	ResignedOn  *time.Time
}

// Shareholding is an ownership record with the percentage held and the date
// the holding was notified to the registry.
type Shareholding struct {
	HolderName  string
	HolderKind  EntityKind
	PercentHeld float64
	NotifiedOn  *time.Time
}

// Filing is a registry filing with its processed date.
type Filing struct {
	Kind        string
	Description string
	FiledOn     *time.Time
}
