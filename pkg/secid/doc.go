// Package secid validates, normalizes, classifies, and extracts financial
// security and entity identifiers: ISIN, CUSIP, SEDOL, FIGI, LEI, IBAN, OCC,
// CFI, FISN, CEI, WKN, Valoren, and CIK.
//
// Validation is purely structural and mathematical - length, alphabet,
// sub-field rules, and check digits. The package never consults an external
// registry to confirm that an identifier exists.
//
// The package-level functions operate on a shared default registry:
//
//	secid.Detect("US5949181045")        // [isin]
//	secid.Parse("594918104")            // *ID under cusip
//	secid.Extract("pay to DE89370400440532013000")
//
// Callers that want an explicit composition root build their own:
//
//	api := secid.NewWith(secid.NewRegistry())
//
// Everything is safe for concurrent use: registries are frozen after
// construction and IDs are immutable values.
package secid
