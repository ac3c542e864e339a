package pass

import (
	"encoding/json"
	"fmt"
)

// passJSON is the top-level wire form. encoding/json emits struct
// fields in declaration order, which is what makes Serialize
// deterministic; the declaration order below is part of that guarantee
// and must not be reshuffled casually.
type passJSON struct {
	FormatVersion      int    `json:"formatVersion"`
	PassTypeIdentifier string `json:"passTypeIdentifier"`
	SerialNumber       string `json:"serialNumber"`
	TeamIdentifier     string `json:"teamIdentifier"`
	OrganizationName   string `json:"organizationName"`
	Description        string `json:"description"`
	SuppressStripShine bool   `json:"suppressStripShine"`

	LogoText        string `json:"logoText,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	ForegroundColor string `json:"foregroundColor,omitempty"`
	LabelColor      string `json:"labelColor,omitempty"`

	WebServiceURL       string `json:"webServiceURL,omitempty"`
	AuthenticationToken string `json:"authenticationToken,omitempty"`

	RelevantDate   string     `json:"relevantDate,omitempty"`
	ExpirationDate string     `json:"expirationDate,omitempty"`
	Voided         bool       `json:"voided,omitempty"`
	Locations      []Location `json:"locations,omitempty"`
	Beacons        []Beacon   `json:"beacons,omitempty"`

	AssociatedStoreIdentifiers []int64        `json:"associatedStoreIdentifiers,omitempty"`
	UserInfo                   map[string]any `json:"userInfo,omitempty"`

	// Legacy single barcode (downgraded format if needed) plus the
	// modern list with original formats; both absent when no barcode
	// was set.
	Barcode  *Barcode  `json:"barcode,omitempty"`
	Barcodes []Barcode `json:"barcodes,omitempty"`

	// Exactly one of these is non-nil, selected by the content style.
	BoardingPass *Information `json:"boardingPass,omitempty"`
	Coupon       *Information `json:"coupon,omitempty"`
	EventTicket  *Information `json:"eventTicket,omitempty"`
	Generic      *Information `json:"generic,omitempty"`
	StoreCard    *Information `json:"storeCard,omitempty"`
}

// Serialize converts the pass to its canonical JSON bytes. All deferred
// invariant checks run here: required identifiers must be non-empty and
// exactly one content variant must be set. Two calls on an unmodified
// pass return byte-identical output.
func (p *Pass) Serialize() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	out := passJSON{
		FormatVersion:      FormatVersion,
		PassTypeIdentifier: p.PassTypeIdentifier,
		SerialNumber:       p.SerialNumber,
		TeamIdentifier:     p.TeamIdentifier,
		OrganizationName:   p.OrganizationName,
		Description:        p.Description,
		SuppressStripShine: p.SuppressStripShine,

		LogoText:        p.LogoText,
		BackgroundColor: p.BackgroundColor,
		ForegroundColor: p.ForegroundColor,
		LabelColor:      p.LabelColor,

		WebServiceURL:       p.WebServiceURL,
		AuthenticationToken: p.AuthenticationToken,

		RelevantDate:   p.RelevantDate,
		ExpirationDate: p.ExpirationDate,
		Voided:         p.Voided,
		Locations:      p.Locations,
		Beacons:        p.Beacons,

		AssociatedStoreIdentifiers: p.AssociatedStoreIdentifiers,
		UserInfo:                   p.UserInfo,
	}

	if len(p.barcodes) > 0 {
		barcodes := make([]Barcode, len(p.barcodes))
		for i, b := range p.barcodes {
			if b.MessageEncoding == "" {
				b.MessageEncoding = DefaultMessageEncoding
			}
			barcodes[i] = b
		}
		legacy := barcodes[0].legacyView()
		out.Barcode = &legacy
		out.Barcodes = barcodes
	}

	switch p.information.Style() {
	case StyleBoardingPass:
		out.BoardingPass = p.information
	case StyleCoupon:
		out.Coupon = p.information
	case StyleEventTicket:
		out.EventTicket = p.information
	case StyleGeneric:
		out.Generic = p.information
	case StyleStoreCard:
		out.StoreCard = p.information
	default:
		return nil, &ValidationError{Field: "style", Reason: fmt.Sprintf("unknown content style %q", p.information.Style())}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pass: %w", err)
	}
	return data, nil
}

func (p *Pass) validate() error {
	if p.information == nil {
		return &ValidationError{Field: "information", Reason: "content variant must be set"}
	}
	switch {
	case p.SerialNumber == "":
		return missingField("serialNumber")
	case p.OrganizationName == "":
		return missingField("organizationName")
	case p.PassTypeIdentifier == "":
		return missingField("passTypeIdentifier")
	case p.TeamIdentifier == "":
		return missingField("teamIdentifier")
	}
	return nil
}
