package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		mask string
		raw  string
		want string
	}{
		{name: "national number", mask: "xx.xx.xx-xxx.xx", raw: "93122788811", want: "93.12.27-888.11"},
		{name: "birth date", mask: "xxxx/xx/xx", raw: "19900101", want: "1990/01/01"},
		{name: "short input stops before next literal", mask: "xx-xx", raw: "1", want: "1"},
		{name: "short input stops after shortfall", mask: "xx-xx", raw: "123", want: "12-3"},
		{name: "long input drops surplus", mask: "xx-xx", raw: "123456", want: "12-34"},
		{name: "leading literal is emitted, closing one is not", mask: "(xx)", raw: "12", want: "(12"},
		{name: "trailing literal after exact input is dropped", mask: "xx.", raw: "12", want: "12"},
		{name: "digits in mask are literals", mask: "0x0x", raw: "12", want: "0102"},
		{name: "absent input formats to empty", mask: "xxxx/xx/xx", raw: "", want: ""},
		{name: "empty mask", mask: "", raw: "123", want: ""},
		{name: "multibyte input", mask: "x-x", raw: "éü", want: "é-ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.mask, tt.raw))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, 11, NationalNumber.Placeholders())
	assert.Equal(t, 8, BirthDate.Placeholders())
	assert.Equal(t, "93.12.27-888.11", NationalNumber.Format("93122788811"))
	assert.Equal(t, "1993/12/27", BirthDate.Format("19931227"))
}
