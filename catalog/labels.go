package catalog

import "github.com/signalsfoundry/astroconst/registry"

// Weekdays are indexed 0..6 with 0 = Sunday.
var weekdayFamily = registry.LabelFamily{
	Name:        "weekday",
	Description: "Days of the week, 0 = Sunday",
	First:       0,
	Last:        6,
	Tables: []registry.LabelTable{
		{Name: "weekday_en", Entries: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}},
		{Name: "weekday_en_abbr3", Entries: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}},
		{Name: "weekday_en_abbr2", Entries: []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}},
		{Name: "weekday_en_upper", Entries: []string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}},
		{Name: "weekday_nl", Entries: []string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"}},
		{Name: "weekday_nl_abbr2", Entries: []string{"zo", "ma", "di", "wo", "do", "vr", "za"}},
	},
}

// Months are indexed 1..12; index 0 is a dummy.
var monthFamily = registry.LabelFamily{
	Name:        "month",
	Description: "Months of the year, 1 = January",
	First:       1,
	Last:        12,
	Tables: []registry.LabelTable{
		{Name: "month_en", Entries: []string{"", "January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}},
		{Name: "month_en_abbr3", Entries: []string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}},
		{Name: "month_en_lower", Entries: []string{"", "january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}},
		{Name: "month_nl", Entries: []string{"", "januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"}},
		{Name: "month_nl_abbr3", Entries: []string{"", "jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"}},
	},
}

// Planets are numbered from the Sun, 1..8; index 0 is a dummy so that
// 3 is the Earth.
var planetFamily = registry.LabelFamily{
	Name:        "planet",
	Description: "Major planets, 1 = Mercury .. 8 = Neptune",
	First:       1,
	Last:        8,
	Tables: []registry.LabelTable{
		{Name: "planet_en", Entries: []string{"", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}},
		{Name: "planet_en_abbr3", Entries: []string{"", "Mer", "Ven", "Ear", "Mar", "Jup", "Sat", "Ura", "Nep"}},
		{Name: "planet_nl", Entries: []string{"", "Mercurius", "Venus", "Aarde", "Mars", "Jupiter", "Saturnus", "Uranus", "Neptunus"}},
		{Name: "planet_symbol", Entries: []string{"", "☿", "♀", "♁", "♂", "♃", "♄", "⛢", "♆"}},
	},
}

// Bodies share the planet numbering and add the Sun at 0 and the Moon at 9.
var bodyFamily = registry.LabelFamily{
	Name:        "body",
	Description: "Solar-system bodies, 0 = Sun, 1..8 = planets, 9 = Moon",
	First:       0,
	Last:        9,
	Tables: []registry.LabelTable{
		{Name: "body_en", Entries: []string{"Sun", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Moon"}},
		{Name: "body_nl", Entries: []string{"Zon", "Mercurius", "Venus", "Aarde", "Mars", "Jupiter", "Saturnus", "Uranus", "Neptunus", "Maan"}},
		{Name: "body_symbol", Entries: []string{"☉", "☿", "♀", "♁", "♂", "♃", "♄", "⛢", "♆", "☾"}},
	},
}

var greekFamily = registry.LabelFamily{
	Name:        "greek",
	Description: "Greek alphabet, 0 = alpha .. 23 = omega",
	First:       0,
	Last:        23,
	Tables: []registry.LabelTable{
		{Name: "greek_en", Entries: []string{
			"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
			"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi",
			"rho", "sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
		}},
		{Name: "greek_nl", Entries: []string{
			"alfa", "bèta", "gamma", "delta", "epsilon", "zèta", "èta", "thèta",
			"jota", "kappa", "lambda", "mu", "nu", "xi", "omikron", "pi",
			"rho", "sigma", "tau", "ypsilon", "phi", "chi", "psi", "omega",
		}},
		{Name: "greek_lower", Entries: []string{
			"α", "β", "γ", "δ", "ε", "ζ", "η", "θ",
			"ι", "κ", "λ", "μ", "ν", "ξ", "ο", "π",
			"ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω",
		}},
		{Name: "greek_upper", Entries: []string{
			"Α", "Β", "Γ", "Δ", "Ε", "Ζ", "Η", "Θ",
			"Ι", "Κ", "Λ", "Μ", "Ν", "Ξ", "Ο", "Π",
			"Ρ", "Σ", "Τ", "Υ", "Φ", "Χ", "Ψ", "Ω",
		}},
		// LaTeX has no \omicron; a plain o is the usual stand-in.
		{Name: "greek_latex", Entries: []string{
			`\alpha`, `\beta`, `\gamma`, `\delta`, `\epsilon`, `\zeta`, `\eta`, `\theta`,
			`\iota`, `\kappa`, `\lambda`, `\mu`, `\nu`, `\xi`, `o`, `\pi`,
			`\rho`, `\sigma`, `\tau`, `\upsilon`, `\phi`, `\chi`, `\psi`, `\omega`,
		}},
	},
}

var labelFamilies = []registry.LabelFamily{
	weekdayFamily,
	monthFamily,
	planetFamily,
	bodyFamily,
	greekFamily,
}

func addLabels(b *registry.Builder) error {
	for _, f := range labelFamilies {
		if err := b.AddFamily(f); err != nil {
			return err
		}
	}
	return nil
}
