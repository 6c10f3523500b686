// Package extractor builds identity records from eID reader XML documents.
package extractor

import (
	"strings"

	"eidreader/internal/eid/mask"
	"eidreader/internal/eid/models"
	"eidreader/internal/eid/xmldoc"
)

// Source element and attribute names of the eID reader format.
const (
	tagName            = "name"
	tagFirstname       = "firstname"
	tagNationality     = "nationality"
	tagPlaceOfBirth    = "placeofbirth"
	tagPhoto           = "photo"
	tagStreetAndNumber = "streetandnumber"
	tagZip             = "zip"
	tagMunicipality    = "municipality"

	tagIdentity        = "identity"
	attrNationalNumber = "nationalnumber"
	attrDateOfBirth    = "dateofbirth"
	attrGender         = "gender"
	attrTitle          = "title"
	attrSpecialStatus  = "specialstatus"
)

// Extract reads every record field from raw. It never fails: fields whose source
// node is missing, and every field of a malformed document, are empty.
func Extract(raw string) models.Record {
	doc := xmldoc.Parse(raw)
	defer doc.Clear()
	return FromDocument(doc)
}

// FromDocument reads the record fields from an already parsed document.
func FromDocument(doc *xmldoc.Document) models.Record {
	firstnames := doc.TagValue(tagFirstname)
	return models.Record{
		Name:            doc.TagValue(tagName),
		Forename:        token(firstnames, 0),
		SecondName:      token(firstnames, 1),
		Nationality:     doc.TagValue(tagNationality),
		PlaceOfBirth:    doc.TagValue(tagPlaceOfBirth),
		Photo:           doc.TagValue(tagPhoto),
		NISS:            mask.NationalNumber.Format(doc.AttrValue(tagIdentity, attrNationalNumber)),
		Birthday:        mask.BirthDate.Format(doc.AttrValue(tagIdentity, attrDateOfBirth)),
		Gender:          doc.AttrValue(tagIdentity, attrGender),
		Title:           doc.AttrValue(tagIdentity, attrTitle),
		SpecialTitle:    doc.AttrValue(tagIdentity, attrSpecialStatus),
		StreetAndNumber: doc.TagValue(tagStreetAndNumber),
		PostalCode:      doc.TagValue(tagZip),
		City:            doc.TagValue(tagMunicipality),
	}
}

// token splits on single spaces, so consecutive spaces yield empty tokens.
func token(s string, i int) string {
	parts := strings.Split(s, " ")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
