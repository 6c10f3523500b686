package models

import (
	"time"

	"github.com/google/uuid"
)

// Field names as exposed on the wire and in Fields().
const (
	FieldName            = "name"
	FieldForename        = "forename"
	FieldSecondName      = "secondName"
	FieldNationality     = "nationality"
	FieldPlaceOfBirth    = "placeOfBirth"
	FieldPhoto           = "photo"
	FieldNISS            = "niss"
	FieldBirthday        = "birthday"
	FieldGender          = "gender"
	FieldTitle           = "title"
	FieldSpecialTitle    = "specialTitle"
	FieldStreetAndNumber = "streetAndNumber"
	FieldPostalCode      = "postalCode"
	FieldCity            = "city"
)

// FieldNames lists every record field in display order.
var FieldNames = []string{
	FieldName, FieldForename, FieldSecondName, FieldNationality, FieldPlaceOfBirth,
	FieldPhoto, FieldNISS, FieldBirthday, FieldGender, FieldTitle, FieldSpecialTitle,
	FieldStreetAndNumber, FieldPostalCode, FieldCity,
}

// RequiredFields must all be present for a read to count as complete. Optional
// fields such as a second name or a title are legitimately absent on many cards.
var RequiredFields = []string{FieldName, FieldForename, FieldNationality, FieldNISS, FieldBirthday}

// Record is the flat set of fields read from one eID document. An absent field
// is the empty string. Records are passed by value and never mutated after
// extraction.
type Record struct {
	Name            string `json:"name"`
	Forename        string `json:"forename"`
	SecondName      string `json:"secondName"`
	Nationality     string `json:"nationality"`
	PlaceOfBirth    string `json:"placeOfBirth"`
	Photo           string `json:"photo"`
	NISS            string `json:"niss"` // PII
	Birthday        string `json:"birthday"`
	Gender          string `json:"gender"`
	Title           string `json:"title"`
	SpecialTitle    string `json:"specialTitle"`
	StreetAndNumber string `json:"streetAndNumber"`
	PostalCode      string `json:"postalCode"`
	City            string `json:"city"`
}

// Fields returns a fresh map of field name to value.
func (r Record) Fields() map[string]string {
	return map[string]string{
		FieldName:            r.Name,
		FieldForename:        r.Forename,
		FieldSecondName:      r.SecondName,
		FieldNationality:     r.Nationality,
		FieldPlaceOfBirth:    r.PlaceOfBirth,
		FieldPhoto:           r.Photo,
		FieldNISS:            r.NISS,
		FieldBirthday:        r.Birthday,
		FieldGender:          r.Gender,
		FieldTitle:           r.Title,
		FieldSpecialTitle:    r.SpecialTitle,
		FieldStreetAndNumber: r.StreetAndNumber,
		FieldPostalCode:      r.PostalCode,
		FieldCity:            r.City,
	}
}

// MissingFields returns the names of empty fields in display order.
func (r Record) MissingFields() []string {
	fields := r.Fields()
	var missing []string
	for _, name := range FieldNames {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsEmpty reports whether nothing could be read. Callers treat an empty record
// as a failed card read.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Complete reports whether every required field was read.
func (r Record) Complete() bool {
	fields := r.Fields()
	for _, name := range RequiredFields {
		if fields[name] == "" {
			return false
		}
	}
	return true
}

// Minimized strips PII for regulated mode, keeping only attributes needed for
// decisions: nationality, gender and the year of birth.
func (r Record) Minimized() Record {
	year := []rune(r.Birthday)
	if len(year) > 4 {
		year = year[:4]
	}
	return Record{
		Nationality: r.Nationality,
		Gender:      r.Gender,
		Birthday:    string(year),
	}
}

// Reading is one accepted drop: the extracted record plus when and under which
// identifier it was read.
type Reading struct {
	ID       uuid.UUID
	ReadAt   time.Time
	Record   Record
	Complete bool
}
