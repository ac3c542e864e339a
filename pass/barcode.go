package pass

// BarcodeFormat enum matching the wallet barcode format constants
type BarcodeFormat string

const (
	BarcodeFormatQR      BarcodeFormat = "PKBarcodeFormatQR"
	BarcodeFormatPDF417  BarcodeFormat = "PKBarcodeFormatPDF417"
	BarcodeFormatAztec   BarcodeFormat = "PKBarcodeFormatAztec"
	BarcodeFormatCode128 BarcodeFormat = "PKBarcodeFormatCode128"
)

// DefaultMessageEncoding is applied when a barcode does not set one.
const DefaultMessageEncoding = "iso-8859-1"

// legacyFallbackFormat is emitted in the singular "barcode" key when the
// actual format is not understood by legacy consumers.
const legacyFallbackFormat = BarcodeFormatPDF417

// Barcode is one scannable code on the pass.
type Barcode struct {
	Message         string        `json:"message"`
	Format          BarcodeFormat `json:"format"`
	MessageEncoding string        `json:"messageEncoding"`
	AltText         string        `json:"altText,omitempty"`
}

// NewBarcode creates a barcode with the default message encoding.
func NewBarcode(message string, format BarcodeFormat, altText string) Barcode {
	return Barcode{
		Message:         message,
		Format:          format,
		MessageEncoding: DefaultMessageEncoding,
		AltText:         altText,
	}
}

// legacySupported reports whether the format predates the multi-barcode
// list and may appear verbatim in the singular "barcode" key.
func (f BarcodeFormat) legacySupported() bool {
	switch f {
	case BarcodeFormatQR, BarcodeFormatPDF417, BarcodeFormatAztec:
		return true
	}
	return false
}

// legacyView returns the barcode as emitted in the singular "barcode"
// key, downgrading the format when legacy consumers cannot read it. The
// receiver is unchanged; the multi-barcode list always keeps the
// original format.
func (b Barcode) legacyView() Barcode {
	if b.Format.legacySupported() {
		return b
	}
	b.Format = legacyFallbackFormat
	return b
}
