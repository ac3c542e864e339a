// Package pass provides the typed data model for mobile wallet passes
// and its deterministic JSON serialization.
//
// A pass is a card-like document: top-level metadata, exactly one
// content variant (store card, boarding pass, coupon, event ticket or
// generic) holding five ordered field groups, zero or more barcodes,
// and a set of named binary assets.
//
// # Building a pass
//
// Construction is permissive: fields, barcodes and assets can be added
// in any order without upfront validation, and all cross-field checks
// run when the pass is serialized:
//
//	card := pass.NewStoreCard()
//	card.AddPrimaryField(pass.TextField("balance", "25.00", "Balance"))
//
//	p := pass.New(card, "Org", "pass.com.example.demo", "TEAM123")
//	p.SerialNumber = "0001"
//	p.Description = "Demo card"
//	p.SetBarcode(pass.NewBarcode("member-0001", pass.BarcodeFormatQR, ""))
//
//	data, err := p.Serialize()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Determinism
//
// Serialize is byte-for-byte deterministic for an unmodified pass. The
// serialized bytes are the exact input to manifest hashing, so two
// builds of the same pass state produce the same manifest entry.
package pass

import "io"

// FormatVersion is the fixed wallet pass format version.
const FormatVersion = 1

// Pass is the root document describing one wallet card instance. It is
// mutable during construction and logically frozen once Serialize is
// called; Serialize never mutates the receiver.
type Pass struct {
	OrganizationName   string
	PassTypeIdentifier string
	TeamIdentifier     string
	SerialNumber       string
	Description        string
	SuppressStripShine bool

	// Visual appearance
	LogoText        string
	BackgroundColor string
	ForegroundColor string
	LabelColor      string

	// Web service registration
	WebServiceURL       string
	AuthenticationToken string

	// Relevance
	RelevantDate   string // W3C timestamp
	ExpirationDate string // W3C timestamp
	Voided         bool
	Locations      []Location
	Beacons        []Beacon

	AssociatedStoreIdentifiers []int64
	UserInfo                   map[string]any

	information *Information
	barcodes    []Barcode
	assets      AssetStore
}

// New creates a pass around the given content variant. Serial number
// and description are left for the caller to fill in before
// serialization.
func New(information *Information, organizationName, passTypeIdentifier, teamIdentifier string) *Pass {
	return &Pass{
		OrganizationName:   organizationName,
		PassTypeIdentifier: passTypeIdentifier,
		TeamIdentifier:     teamIdentifier,
		information:        information,
	}
}

// Information returns the active content variant.
func (p *Pass) Information() *Information { return p.information }

// SetBarcode replaces all barcodes with the single given one.
func (p *Pass) SetBarcode(b Barcode) { p.barcodes = []Barcode{b} }

// AddBarcode appends a barcode to the modern multi-barcode list. The
// first barcode in the list is also emitted in the legacy singular
// "barcode" key, with its format downgraded if legacy consumers cannot
// read it.
func (p *Pass) AddBarcode(b Barcode) { p.barcodes = append(p.barcodes, b) }

// Barcodes returns all barcodes in insertion order, original formats.
func (p *Pass) Barcodes() []Barcode { return p.barcodes }

// AddAsset reads src fully into memory and attaches it under name,
// replacing any earlier asset with the same name.
func (p *Pass) AddAsset(name string, src io.Reader) error {
	return p.assets.Add(name, src)
}

// Assets returns all attached assets in insertion order.
func (p *Pass) Assets() []Asset { return p.assets.List() }

// AssetCount returns the number of attached assets.
func (p *Pass) AssetCount() int { return p.assets.Count() }
