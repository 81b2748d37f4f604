package catalog

import (
	"github.com/signalsfoundry/astroconst/registry"
)

type derivedEntry struct {
	name   string
	unit   string
	desc   string
	inputs []string
	f      func(v []float64) float64
}

// derivedConstants are evaluated once per build. Order here is irrelevant;
// the builder sorts them by dependency.
var derivedConstants = []derivedEntry{
	// Angles
	{"pi2", "rad", "Full turn", []string{"base.pi"}, func(v []float64) float64 { return 2 * v[0] }},
	{"pio2", "rad", "Quarter turn", []string{"base.pi"}, func(v []float64) float64 { return v[0] / 2 }},
	{"r2d", "deg/rad", "Radians to degrees", []string{"base.deg_per_halfturn", "base.pi"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"d2r", "rad/deg", "Degrees to radians", []string{"base.pi", "base.deg_per_halfturn"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"r2h", "h/rad", "Radians to hours", []string{"base.hours_per_halfturn", "base.pi"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"h2r", "rad/h", "Hours to radians", []string{"base.pi", "base.hours_per_halfturn"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"d2as", "arcsec/deg", "Degrees to arcseconds", []string{"base.arcsec_per_deg"}, func(v []float64) float64 { return v[0] }},
	{"as2d", "deg/arcsec", "Arcseconds to degrees", []string{"base.arcsec_per_deg"}, func(v []float64) float64 { return 1 / v[0] }},
	{"r2as", "arcsec/rad", "Radians to arcseconds", []string{"derived.r2d", "base.arcsec_per_deg"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"as2r", "rad/arcsec", "Arcseconds to radians", []string{"derived.d2r", "base.arcsec_per_deg"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"mas2r", "rad/mas", "Milliarcseconds to radians", []string{"derived.as2r"}, func(v []float64) float64 { return v[0] / 1000 }},
	{"r2am", "arcmin/rad", "Radians to arcminutes", []string{"derived.r2d", "base.arcmin_per_deg"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"am2r", "rad/arcmin", "Arcminutes to radians", []string{"derived.d2r", "base.arcmin_per_deg"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"eps0", "rad", "Mean obliquity of the ecliptic at J2000.0", []string{"almanac.epsilon_j2000", "derived.d2r"}, func(v []float64) float64 { return v[0] * v[1] }},

	// Physics
	{"hbar", "erg s", "Reduced Planck constant", []string{"base.h_p", "derived.pi2"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"sigma", "erg cm^-2 s^-1 K^-4", "Stefan-Boltzmann constant", []string{"base.a_rad", "base.c"}, func(v []float64) float64 { return v[0] * v[1] / 4 }},

	// Time, in seconds
	{"minute", "s", "Minute", []string{"base.minute_seconds"}, func(v []float64) float64 { return v[0] }},
	{"hour", "s", "Hour", []string{"base.hour_minutes", "derived.minute"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"day", "s", "Solar day", []string{"base.day_hours", "derived.hour"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"week", "s", "Week", []string{"base.week_days", "derived.day"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"julian_year", "s", "Julian year", []string{"base.julian_year_days", "derived.day"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"julian_century", "s", "Julian century", []string{"derived.julian_year"}, func(v []float64) float64 { return 100 * v[0] }},
	{"sidereal_year", "s", "Sidereal year", []string{"base.sidereal_year_days", "derived.day"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"tropical_year", "s", "Mean tropical year", []string{"base.tropical_year_days", "derived.day"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"anomalistic_year", "s", "Anomalistic year", []string{"base.anomalistic_year_days", "derived.day"}, func(v []float64) float64 { return v[0] * v[1] }},
	// One tropical year holds one more sidereal day than solar days.
	{"sidereal_day", "s", "Mean sidereal day", []string{"derived.day", "base.tropical_year_days"}, func(v []float64) float64 { return v[0] * v[1] / (v[1] + 1) }},
	{"stellar_day", "s", "Stellar day: one turn of the Earth rotation angle", []string{"derived.day", "almanac.dtheta_dut1"}, func(v []float64) float64 { return v[0] / v[1] }},

	// Distances, cgs
	{"au", "cm", "Astronomical unit", []string{"almanac.au"}, func(v []float64) float64 { return v[0] * 100 }},
	{"pc", "cm", "Parsec: au subtending one arcsecond", []string{"derived.au", "derived.r2as"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"ly", "cm", "Light year (Julian)", []string{"base.c", "derived.julian_year"}, func(v []float64) float64 { return v[0] * v[1] }},
	{"light_time_au", "s", "Light time for one au", []string{"derived.au", "base.c"}, func(v []float64) float64 { return v[0] / v[1] }},

	// Bodies
	{"gm_sun", "cm^3 s^-2", "Heliocentric gravitational constant", []string{"almanac.gms"}, func(v []float64) float64 { return v[0] * 1e6 }},
	{"gm_earth", "cm^3 s^-2", "Geocentric gravitational constant", []string{"almanac.gme"}, func(v []float64) float64 { return v[0] * 1e6 }},
	{"f_earth", "1", "Flattening of the Earth", []string{"almanac.one_over_f"}, func(v []float64) float64 { return 1 / v[0] }},
	{"m_moon", "kg", "Mass of the Moon", []string{"almanac.m_e", "almanac.m_e_over_m_m"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_mercury", "kg", "Mass of Mercury", []string{"almanac.m_s", "almanac.m_s_over_m_me"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_venus", "kg", "Mass of Venus", []string{"almanac.m_s", "almanac.m_s_over_m_ve"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_mars", "kg", "Mass of Mars", []string{"almanac.m_s", "almanac.m_s_over_m_ma"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_jupiter", "kg", "Mass of Jupiter", []string{"almanac.m_s", "almanac.m_s_over_m_j"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_saturn", "kg", "Mass of Saturn", []string{"almanac.m_s", "almanac.m_s_over_m_sa"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_uranus", "kg", "Mass of Uranus", []string{"almanac.m_s", "almanac.m_s_over_m_u"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_neptune", "kg", "Mass of Neptune", []string{"almanac.m_s", "almanac.m_s_over_m_n"}, func(v []float64) float64 { return v[0] / v[1] }},
	{"m_pluto", "kg", "Mass of (134340) Pluto", []string{"almanac.m_s", "almanac.m_s_over_m_p"}, func(v []float64) float64 { return v[0] / v[1] }},
}

func defineDerived(b *registry.Builder) error {
	for _, e := range derivedConstants {
		err := b.Derive(registry.Derivation{
			Target:      registry.Ref{Namespace: NamespaceDerived, Name: e.name},
			Unit:        e.unit,
			Description: e.desc,
			Inputs:      registry.MustRefs(e.inputs...),
			Formula:     e.f,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
