// Package reflog validates refrigerant usage logs and posts them to the shop's
// collection endpoint.
package reflog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mmcdani2/field-cheat-sheets/internal/form"
)

// Form field ids of the refrigerant log.
const (
	FieldTech            = "refTech"
	FieldJobNumber       = "refJobNumber"
	FieldCustomer        = "refCustomer"
	FieldCity            = "refCity"
	FieldEquipmentType   = "refEquipmentType"
	FieldRefrigerantType = "refRefrigerantType"
	FieldPoundsAdded     = "refPoundsAdded"
	FieldPoundsRecovered = "refPoundsRecovered"
	FieldLeakSuspected   = "refLeakSuspected"
	FieldNotes           = "refNotes"
)

const defaultLeakSuspected = "No"

// MessageRequired is shown when a required log field is blank.
const MessageRequired = "Tech, Job #, and Refrigerant Type are required."

// MessageInvalidText is shown when a text field holds bytes that are not UTF-8.
const MessageInvalidText = "Log fields must be valid text."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	return v
}

// Log is one refrigerant charge or recovery entry. Field order is the wire order.
type Log struct {
	Tech            string  `json:"tech" validate:"required,utf8"`
	JobNumber       string  `json:"jobNumber" validate:"required,utf8"`
	Customer        string  `json:"customer" validate:"utf8"`
	City            string  `json:"city" validate:"utf8"`
	EquipmentType   string  `json:"equipmentType" validate:"utf8"`
	RefrigerantType string  `json:"refrigerantType" validate:"required,utf8"`
	PoundsAdded     float64 `json:"poundsAdded"`
	PoundsRecovered float64 `json:"poundsRecovered"`
	LeakSuspected   string  `json:"leakSuspected" validate:"utf8"`
	Notes           string  `json:"notes" validate:"utf8"`
}

// FromForm reads a log from the refrigerant log form.
func FromForm(f form.Form) Log {
	return Log{
		Tech:            f.Str(FieldTech),
		JobNumber:       f.Str(FieldJobNumber),
		Customer:        f.Str(FieldCustomer),
		City:            f.Str(FieldCity),
		EquipmentType:   f.Select(FieldEquipmentType, ""),
		RefrigerantType: f.Select(FieldRefrigerantType, ""),
		PoundsAdded:     f.Num(FieldPoundsAdded),
		PoundsRecovered: f.Num(FieldPoundsRecovered),
		LeakSuspected:   f.Select(FieldLeakSuspected, defaultLeakSuspected),
		Notes:           f.Str(FieldNotes),
	}
}

// Validate checks the required fields and that every text field is UTF-8, so Encode
// never substitutes replacement characters.
func (l Log) Validate() error {
	return validate.Struct(l)
}

// validationMessage is the panel text for a Validate error.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return MessageRequired
			}
		}
		return MessageInvalidText
	}
	return MessageRequired
}

// Encode returns the request body for l. HTML characters are left unescaped so the
// body matches what a browser's JSON.stringify produces.
func (l Log) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encode refrigerant log: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a request body produced by Encode.
func Decode(body []byte) (Log, error) {
	var l Log
	if err := json.Unmarshal(body, &l); err != nil {
		return Log{}, fmt.Errorf("decode refrigerant log: %w", err)
	}
	return l, nil
}

// Reset lists the form fields to restore after a successful submission.
type Reset struct {
	// Clear fields are emptied.
	Clear []string `json:"clear"`
	// FirstOption selects go back to their first option.
	FirstOption []string `json:"firstOption"`
}

// FormReset is the reset applied after a log is accepted.
func FormReset() *Reset {
	return &Reset{
		Clear: []string{
			FieldTech, FieldJobNumber, FieldCustomer, FieldCity, FieldNotes,
			FieldPoundsAdded, FieldPoundsRecovered,
		},
		FirstOption: []string{FieldEquipmentType, FieldRefrigerantType, FieldLeakSuspected},
	}
}
