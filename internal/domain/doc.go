// Package domain models shooting incident records as published in the
// Philadelphia "Shooting Victims" open-data exports.
//
// # Data Source
//
// Each CSV row describes one person shot in one incident. Two exports are
// consumed: a preprocessed file carrying projected coordinates (used by the
// incident map) and a trends file carrying demographic columns (used by the
// analytics pipeline). Both share the column names below; any column may be
// absent, which is why every derived field is computed only when its source
// columns exist (see [Frame.Has]).
//
// # Column Conventions
//
//	location   free-text block address, e.g. "1500 BLOCK N 22ND ST"
//	date_      calendar date; ISO "2019-06-14", "2019-06-14 00:00:00+00" or US "06/14/2019"
//	time       time of day as a duration, "H:MM:SS" or "HH:MM"
//	point_x    WGS-84 longitude (negative in Philadelphia)
//	point_y    WGS-84 latitude
//	age        victim age in years; non-numeric values are treated as missing
//	race, sex  single-letter categorical codes, e.g. "B", "W", "A" and "M", "F"
//
// A header spelled "date" is accepted as an alias of "date_".
//
// # Derived Fields
//
//	age_group  one of seven buckets partitioning [0, 120], see [AgeGroup]
//	datetime   date_ + time
//	Year, Month, YearMonth ("2019-06"), DayOfWeek, Hour
//
// Malformed values never fail a load: they become missing markers and are
// excluded from whichever computation needs them.
//
// # Marker Colors
//
// The Schuylkill River roughly follows longitude -75.183 through the city.
// Points east of it are drawn gray; points on or west of it draw green with
// probability 0.7 and red otherwise. The split is a visualization aid, not a
// data attribute, so it comes from an injectable random source (see
// [ColorAssigner]).
package domain
