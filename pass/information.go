package pass

import "encoding/json"

// Style identifies the layout kind of a pass. The set is closed; the
// style doubles as the JSON key the field groups serialize under.
type Style string

const (
	StyleStoreCard    Style = "storeCard"
	StyleBoardingPass Style = "boardingPass"
	StyleCoupon       Style = "coupon"
	StyleEventTicket  Style = "eventTicket"
	StyleGeneric      Style = "generic"
)

// String converts the style to its JSON key name.
func (s Style) String() string { return string(s) }

// TransitType enum for boarding passes
type TransitType string

const (
	TransitTypeAir     TransitType = "PKTransitTypeAir"
	TransitTypeBoat    TransitType = "PKTransitTypeBoat"
	TransitTypeBus     TransitType = "PKTransitTypeBus"
	TransitTypeGeneric TransitType = "PKTransitTypeGeneric"
	TransitTypeTrain   TransitType = "PKTransitTypeTrain"
)

// Information holds the five ordered field groups of one content
// variant. Field-group semantics are identical across styles; only the
// JSON key the groups nest under differs. All Add methods are
// append-only and accept duplicate keys without error.
type Information struct {
	style       Style
	transitType TransitType // boarding pass only

	headerFields    []Field
	primaryFields   []Field
	secondaryFields []Field
	auxiliaryFields []Field
	backFields      []Field
}

// NewStoreCard creates store-card content.
func NewStoreCard() *Information { return &Information{style: StyleStoreCard} }

// NewCoupon creates coupon content.
func NewCoupon() *Information { return &Information{style: StyleCoupon} }

// NewEventTicket creates event-ticket content.
func NewEventTicket() *Information { return &Information{style: StyleEventTicket} }

// NewGeneric creates generic content.
func NewGeneric() *Information { return &Information{style: StyleGeneric} }

// NewBoardingPass creates boarding-pass content for the given transit
// type. An empty transit type defaults to air travel.
func NewBoardingPass(transitType TransitType) *Information {
	if transitType == "" {
		transitType = TransitTypeAir
	}
	return &Information{style: StyleBoardingPass, transitType: transitType}
}

// Style returns the layout kind of this content.
func (i *Information) Style() Style { return i.style }

// AddHeaderField appends a field to the header group.
func (i *Information) AddHeaderField(f Field) { i.headerFields = append(i.headerFields, f) }

// AddPrimaryField appends a field to the primary group.
func (i *Information) AddPrimaryField(f Field) { i.primaryFields = append(i.primaryFields, f) }

// AddSecondaryField appends a field to the secondary group.
func (i *Information) AddSecondaryField(f Field) { i.secondaryFields = append(i.secondaryFields, f) }

// AddAuxiliaryField appends a field to the auxiliary group.
func (i *Information) AddAuxiliaryField(f Field) { i.auxiliaryFields = append(i.auxiliaryFields, f) }

// AddBackField appends a field to the back group.
func (i *Information) AddBackField(f Field) { i.backFields = append(i.backFields, f) }

// HeaderFields returns the header group in insertion order.
func (i *Information) HeaderFields() []Field { return i.headerFields }

// PrimaryFields returns the primary group in insertion order.
func (i *Information) PrimaryFields() []Field { return i.primaryFields }

// SecondaryFields returns the secondary group in insertion order.
func (i *Information) SecondaryFields() []Field { return i.secondaryFields }

// AuxiliaryFields returns the auxiliary group in insertion order.
func (i *Information) AuxiliaryFields() []Field { return i.auxiliaryFields }

// BackFields returns the back group in insertion order.
func (i *Information) BackFields() []Field { return i.backFields }

// informationJSON is the wire form of one content variant. Group keys
// are always present, transitType only for boarding passes.
type informationJSON struct {
	TransitType     TransitType `json:"transitType,omitempty"`
	HeaderFields    []Field     `json:"headerFields"`
	PrimaryFields   []Field     `json:"primaryFields"`
	SecondaryFields []Field     `json:"secondaryFields"`
	AuxiliaryFields []Field     `json:"auxiliaryFields"`
	BackFields      []Field     `json:"backFields"`
}

// MarshalJSON emits the field groups in wire form with empty groups as
// empty arrays rather than null.
func (i *Information) MarshalJSON() ([]byte, error) {
	nonNil := func(fields []Field) []Field {
		if fields == nil {
			return []Field{}
		}
		return fields
	}
	return json.Marshal(informationJSON{
		TransitType:     i.transitType,
		HeaderFields:    nonNil(i.headerFields),
		PrimaryFields:   nonNil(i.primaryFields),
		SecondaryFields: nonNil(i.secondaryFields),
		AuxiliaryFields: nonNil(i.auxiliaryFields),
		BackFields:      nonNil(i.backFields),
	})
}
