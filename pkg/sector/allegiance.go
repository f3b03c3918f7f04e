package sector

// Allegiance names a polity by its code. Base is the code of the polity it
// belongs to, if any ("Im" for the Sylean Worlds).
type Allegiance struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
	Base string `toml:"base"`
}

// stockAllegiances covers the codes used by the built-in stylesheet.
// Sectors may define their own, which take precedence.
var stockAllegiances = map[string]Allegiance{
	"As":   {Code: "As", Name: "Aslan Hierate"},
	"Cs":   {Code: "Cs", Name: "Client State"},
	"Dr":   {Code: "Dr", Name: "Droyne"},
	"Hv":   {Code: "Hv", Name: "Hive Federation"},
	"HvFd": {Code: "HvFd", Name: "Hive Federation", Base: "Hv"},
	"Im":   {Code: "Im", Name: "Third Imperium"},
	"ImDd": {Code: "ImDd", Name: "Third Imperium, Domain of Deneb", Base: "Im"},
	"ImDs": {Code: "ImDs", Name: "Third Imperium, Domain of Sol", Base: "Im"},
	"ImSy": {Code: "ImSy", Name: "Third Imperium, Sylean Worlds", Base: "Im"},
	"JuPr": {Code: "JuPr", Name: "Julian Protectorate"},
	"Kk":   {Code: "Kk", Name: "The Two Thousand Worlds"},
	"Na":   {Code: "Na", Name: "Non-Aligned"},
	"NaHu": {Code: "NaHu", Name: "Non-Aligned, Human-dominated", Base: "Na"},
	"So":   {Code: "So", Name: "Solomani Confederation"},
	"SoCf": {Code: "SoCf", Name: "Solomani Confederation"},
	"Va":   {Code: "Va", Name: "Vargr"},
	"Zh":   {Code: "Zh", Name: "Zhodani Consulate"},
	"ZhCo": {Code: "ZhCo", Name: "Zhodani Consulate"},
}

// legacyCodes maps four-letter allegiance codes to their two-letter forms.
var legacyCodes = map[string]string{
	"HvFd": "Hv",
	"ImDd": "Im",
	"ImDs": "Im",
	"ImSy": "Im",
	"JuPr": "Jp",
	"NaHu": "Na",
	"SoCf": "So",
	"ZhCo": "Zh",
}

// defaultAllegiances are not printed next to worlds.
var defaultAllegiances = map[string]bool{
	"Im": true, "ImAp": true, "ImDa": true, "ImDc": true, "ImDd": true,
	"ImDg": true, "ImDi": true, "ImDs": true, "ImDv": true, "ImLa": true,
	"ImLc": true, "ImLu": true, "ImSy": true, "ImVd": true,
	"XXXX": true, "??": true, "--": true,
}

// StockAllegiance returns the built-in allegiance for code.
func StockAllegiance(code string) (Allegiance, bool) {
	a, ok := stockAllegiances[code]
	return a, ok
}

// IsDefaultAllegiance reports whether code is the unremarkable default.
func IsDefaultAllegiance(code string) bool { return defaultAllegiances[code] }

// LegacyCode returns the two-letter form of a four-letter allegiance code,
// or code unchanged if there is none.
func LegacyCode(code string) string {
	if l, ok := legacyCodes[code]; ok {
		return l
	}
	return code
}
