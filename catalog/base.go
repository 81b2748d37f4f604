package catalog

import (
	"math"

	"github.com/signalsfoundry/astroconst/registry"
)

const (
	citationCODATA = "CODATA 2018"
	citationIAU    = "IAU 2015 Resolution B3"
	citationIERS   = "IERS Conventions 2010"
)

// baseConstants are defined locally in cgs units. Each entry names the single
// source it was taken from.
var baseConstants = []registry.Constant{
	// Mathematics
	{Name: "pi", Value: math.Pi, Unit: "1", Description: "Ratio of circumference to diameter"},
	{Name: "euler", Value: math.E, Unit: "1", Description: "Base of the natural logarithm"},
	{Name: "sqrt2", Value: math.Sqrt2, Unit: "1", Description: "Square root of two"},
	{Name: "arcsec_per_deg", Value: 3600, Unit: "arcsec/deg", Description: "Arcseconds per degree"},
	{Name: "arcmin_per_deg", Value: 60, Unit: "arcmin/deg", Description: "Arcminutes per degree"},
	{Name: "deg_per_halfturn", Value: 180, Unit: "deg", Description: "Degrees in half a turn"},
	{Name: "hours_per_halfturn", Value: 12, Unit: "h", Description: "Hours of right ascension in half a turn"},

	// Physics, cgs
	{Name: "c", Value: 2.99792458e10, Unit: "cm/s", Citation: citationCODATA, Description: "Speed of light in vacuum (exact)"},
	{Name: "h_p", Value: 6.62607015e-27, Unit: "erg s", Citation: citationCODATA, Description: "Planck constant (exact)"},
	{Name: "k_b", Value: 1.380649e-16, Unit: "erg/K", Citation: citationCODATA, Description: "Boltzmann constant (exact)"},
	{Name: "n_a", Value: 6.02214076e23, Unit: "mol^-1", Citation: citationCODATA, Description: "Avogadro constant (exact)"},
	{Name: "g", Value: 6.67430e-8, Uncertainty: 1.5e-12, Unit: "cm^3 g^-1 s^-2", Citation: citationCODATA, Description: "Newtonian constant of gravitation"},
	{Name: "a_rad", Value: 7.565733250e-15, Unit: "erg cm^-3 K^-4", Citation: citationCODATA, Description: "Radiation density constant"},
	{Name: "e_charge", Value: 4.803204713e-10, Unit: "statC", Citation: citationCODATA, Description: "Elementary charge"},
	{Name: "m_electron", Value: 9.1093837015e-28, Uncertainty: 2.8e-37, Unit: "g", Citation: citationCODATA, Description: "Electron mass"},
	{Name: "m_proton", Value: 1.67262192369e-24, Uncertainty: 5.1e-34, Unit: "g", Citation: citationCODATA, Description: "Proton mass"},
	{Name: "amu", Value: 1.66053906660e-24, Uncertainty: 5.0e-34, Unit: "g", Citation: citationCODATA, Description: "Atomic mass constant"},

	// Astronomy, cgs
	{Name: "r_sun", Value: 6.957e10, Unit: "cm", Citation: citationIAU, Description: "Nominal solar radius"},
	{Name: "l_sun", Value: 3.828e33, Unit: "erg/s", Citation: citationIAU, Description: "Nominal solar luminosity"},
	{Name: "t_sun", Value: 5772, Unit: "K", Citation: citationIAU, Description: "Nominal solar effective temperature"},
	{Name: "m_sun", Value: 1.98847e33, Uncertainty: 7e28, Unit: "g", Citation: citationIAU, Description: "Solar mass"},
	{Name: "r_earth", Value: 6.3781e8, Unit: "cm", Citation: citationIAU, Description: "Nominal equatorial Earth radius"},
	{Name: "r_jupiter", Value: 7.1492e9, Unit: "cm", Citation: citationIAU, Description: "Nominal equatorial Jupiter radius"},
	{Name: "m_earth", Value: 5.9722e27, Uncertainty: 6e23, Unit: "g", Citation: citationIAU, Description: "Earth mass"},

	// Time scales and calendars
	{Name: "jd1900", Value: 2415020.0, Unit: "d", Description: "Julian day of epoch J1900.0"},
	{Name: "jd1950", Value: 2433282.4235, Unit: "d", Description: "Julian day of epoch B1950.0"},
	{Name: "jd2000", Value: 2451545.0, Unit: "d", Citation: citationIERS, Description: "Julian day of epoch J2000.0"},
	{Name: "mjd_offset", Value: 2400000.5, Unit: "d", Description: "Julian day minus modified Julian day"},
	{Name: "minute_seconds", Value: 60, Unit: "s", Description: "Seconds per minute"},
	{Name: "hour_minutes", Value: 60, Unit: "min", Description: "Minutes per hour"},
	{Name: "day_hours", Value: 24, Unit: "h", Description: "Hours per day"},
	{Name: "week_days", Value: 7, Unit: "d", Description: "Days per week"},
	{Name: "julian_year_days", Value: 365.25, Unit: "d", Description: "Days per Julian year"},
	{Name: "sidereal_year_days", Value: 365.256363004, Unit: "d", Description: "Days per sidereal year, J2000.0"},
	{Name: "tropical_year_days", Value: 365.242190402, Unit: "d", Description: "Days per mean tropical year, J2000.0"},
	{Name: "anomalistic_year_days", Value: 365.259636, Unit: "d", Description: "Days per anomalistic year, J2000.0"},
}

func defineBase(b *registry.Builder) error {
	for _, c := range baseConstants {
		c.Namespace = NamespaceBase
		if err := b.Define(c); err != nil {
			return err
		}
	}
	return nil
}
