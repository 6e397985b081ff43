package validation

// Display masks. They are applied to the digit string so formatting an already
// formatted value is a no-op, and Digits recovers the raw value. Inputs with an
// unexpected digit count are returned as their bare digits.

// FormatTaxID masks a CPF as 000.000.000-00 or a CNPJ as 00.000.000/0000-00.
func FormatTaxID(s string) string {
	d := Digits(s)
	switch len(d) {
	case individualTaxIDDigits:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case corporateTaxIDDigits:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return d
	}
}

// FormatPhone masks an 11-digit mobile number as (00) 00000-0000.
func FormatPhone(s string) string {
	d := Digits(s)
	if len(d) != phoneDigits {
		return d
	}
	return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
}

// FormatPostalCode masks a CEP as 00000-000.
func FormatPostalCode(s string) string {
	d := Digits(s)
	if len(d) != postalCodeDigits {
		return d
	}
	return d[0:5] + "-" + d[5:8]
}
