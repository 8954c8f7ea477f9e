package schedule

import "strconv"

// ordinalSuffixes is indexed by (n%100-20)%10 for numbers past the teens,
// then by n%100 directly to catch 11-13, with "th" as the default. The
// two-step lookup keeps 11th/12th/13th correct while 21st/22nd/23rd keep
// their short suffixes.
var ordinalSuffixes = [4]string{"th", "st", "nd", "rd"}

// Ordinal formats n with its English ordinal suffix: 1st, 2nd, 3rd, 4th,
// 11th, 21st, and so on.
func Ordinal(n int) string {
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	v := n % 100
	if idx := (v - 20) % 10; idx >= 1 && idx <= 3 {
		return ordinalSuffixes[idx]
	}
	if v >= 1 && v <= 3 {
		return ordinalSuffixes[v]
	}
	return ordinalSuffixes[0]
}
