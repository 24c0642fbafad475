package calendar

// Bundled bank-holiday tables for the current and next calendar year per
// supported region. These keep deemed-service arithmetic working when the
// remote holiday source has never been reached.
var fallbackHolidays = map[string][]string{
	RegionEnglandWales: {
		// 2026
		"2026-01-01", // New Year's Day
		"2026-04-03", // Good Friday
		"2026-04-06", // Easter Monday
		"2026-05-04", // Early May bank holiday
		"2026-05-25", // Spring bank holiday
		"2026-08-31", // Summer bank holiday
		"2026-12-25", // Christmas Day
		"2026-12-28", // Boxing Day (substitute)
		// 2027
		"2027-01-01", // New Year's Day
		"2027-03-26", // Good Friday
		"2027-03-29", // Easter Monday
		"2027-05-03", // Early May bank holiday
		"2027-05-31", // Spring bank holiday
		"2027-08-30", // Summer bank holiday
		"2027-12-27", // Christmas Day (substitute)
		"2027-12-28", // Boxing Day (substitute)
	},
	"scotland": {
		// 2026
		"2026-01-01",
		"2026-01-02", // 2 January
		"2026-04-03",
		"2026-05-04",
		"2026-05-25",
		"2026-08-03", // Summer bank holiday (Scotland)
		"2026-11-30", // St Andrew's Day
		"2026-12-25",
		"2026-12-28",
		// 2027
		"2027-01-01",
		"2027-01-04", // 2 January (substitute)
		"2027-03-26",
		"2027-05-03",
		"2027-05-31",
		"2027-08-02",
		"2027-11-30",
		"2027-12-27",
		"2027-12-28",
	},
}
