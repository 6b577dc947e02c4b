package domain

// The lead enumerations below are closed sets. Values are compared
// case-sensitively and stored exactly as written here; anything read off
// the wire must pass through the matching Parse helper before it is used
// as the typed form.

// City is the catchment area a lead is interested in.
type City string

// Accepted City values.
const (
	CityChandigarh City = "Chandigarh"
	CityMohali     City = "Mohali"
	CityZirakpur   City = "Zirakpur"
	CityPanchkula  City = "Panchkula"
	CityOther      City = "Other"
)

// Cities lists every accepted City value in wire order.
var Cities = []City{CityChandigarh, CityMohali, CityZirakpur, CityPanchkula, CityOther}

// ParseCity reports whether s names an accepted city and returns the typed value.
func ParseCity(s string) (City, bool) {
	for _, v := range Cities {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether c is a member of the closed set.
func (c City) Valid() bool {
	_, ok := ParseCity(string(c))
	return ok
}

// PropertyType is the kind of property a lead is looking for.
type PropertyType string

// Accepted PropertyType values.
const (
	PropertyApartment PropertyType = "Apartment"
	PropertyVilla     PropertyType = "Villa"
	PropertyPlot      PropertyType = "Plot"
	PropertyOffice    PropertyType = "Office"
	PropertyRetail    PropertyType = "Retail"
)

// PropertyTypes lists every accepted PropertyType value in wire order.
var PropertyTypes = []PropertyType{PropertyApartment, PropertyVilla, PropertyPlot, PropertyOffice, PropertyRetail}

// ParsePropertyType reports whether s names an accepted property type.
func ParsePropertyType(s string) (PropertyType, bool) {
	for _, v := range PropertyTypes {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether p is a member of the closed set.
func (p PropertyType) Valid() bool {
	_, ok := ParsePropertyType(string(p))
	return ok
}

// HasUnits reports whether the property type is sold in residential units,
// which makes the BHK field mandatory.
func (p PropertyType) HasUnits() bool {
	return p == PropertyApartment || p == PropertyVilla
}

// BHK is the unit size of a residential property.
type BHK string

// Accepted BHK values.
const (
	BHKOne    BHK = "ONE"
	BHKTwo    BHK = "TWO"
	BHKThree  BHK = "THREE"
	BHKFour   BHK = "FOUR"
	BHKStudio BHK = "STUDIO"
)

// BHKs lists every accepted BHK value in wire order.
var BHKs = []BHK{BHKOne, BHKTwo, BHKThree, BHKFour, BHKStudio}

// ParseBHK reports whether s names an accepted unit size.
func ParseBHK(s string) (BHK, bool) {
	for _, v := range BHKs {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether b is a member of the closed set.
func (b BHK) Valid() bool {
	_, ok := ParseBHK(string(b))
	return ok
}

// Purpose distinguishes purchase leads from rental leads.
type Purpose string

// Accepted Purpose values.
const (
	PurposeBuy  Purpose = "Buy"
	PurposeRent Purpose = "Rent"
)

// Purposes lists every accepted Purpose value in wire order.
var Purposes = []Purpose{PurposeBuy, PurposeRent}

// ParsePurpose reports whether s names an accepted purpose.
func ParsePurpose(s string) (Purpose, bool) {
	for _, v := range Purposes {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether p is a member of the closed set.
func (p Purpose) Valid() bool {
	_, ok := ParsePurpose(string(p))
	return ok
}

// Timeline is the lead's expected window to transact.
type Timeline string

// Accepted Timeline values.
const (
	TimelineZeroTo3M  Timeline = "ZERO_TO_3M"
	TimelineThreeTo6M Timeline = "THREE_TO_6M"
	TimelineGT6M      Timeline = "GT_6M"
	TimelineExploring Timeline = "EXPLORING"
)

// Timelines lists every accepted Timeline value in wire order.
var Timelines = []Timeline{TimelineZeroTo3M, TimelineThreeTo6M, TimelineGT6M, TimelineExploring}

// ParseTimeline reports whether s names an accepted timeline.
func ParseTimeline(s string) (Timeline, bool) {
	for _, v := range Timelines {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether t is a member of the closed set.
func (t Timeline) Valid() bool {
	_, ok := ParseTimeline(string(t))
	return ok
}

// Source records how the lead reached the team.
type Source string

// Accepted Source values.
const (
	SourceWebsite  Source = "Website"
	SourceReferral Source = "Referral"
	SourceWalkIn   Source = "WALK_IN"
	SourceCall     Source = "Call"
	SourceOther    Source = "Other"
)

// Sources lists every accepted Source value in wire order.
var Sources = []Source{SourceWebsite, SourceReferral, SourceWalkIn, SourceCall, SourceOther}

// ParseSource reports whether s names an accepted source.
func ParseSource(s string) (Source, bool) {
	for _, v := range Sources {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether s is a member of the closed set.
func (s Source) Valid() bool {
	_, ok := ParseSource(string(s))
	return ok
}

// Status is the pipeline stage of a lead.
type Status string

// Accepted Status values.
const (
	StatusNew         Status = "New"
	StatusQualified   Status = "Qualified"
	StatusContacted   Status = "Contacted"
	StatusVisited     Status = "Visited"
	StatusNegotiation Status = "Negotiation"
	StatusConverted   Status = "Converted"
	StatusDropped     Status = "Dropped"
)

// Statuses lists every accepted Status value in wire order.
var Statuses = []Status{StatusNew, StatusQualified, StatusContacted, StatusVisited, StatusNegotiation, StatusConverted, StatusDropped}

// ParseStatus reports whether s names an accepted status.
func ParseStatus(s string) (Status, bool) {
	for _, v := range Statuses {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Valid reports whether s is a member of the closed set.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}
