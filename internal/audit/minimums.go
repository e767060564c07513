package audit

import "skyaudit/internal/models"

// Minimums is the resolved weather envelope a flight must satisfy: minimum
// ceiling (ft) and visibility (statute miles), maximum wind and crosswind
// speeds (knots).
type Minimums struct {
	Ceiling    float64
	Visibility float64
	Wind       float64
	Crosswind  float64
}

// ResolveMinimums finds every minimums rule that authorizes this flight and
// merges them into the most advantageous envelope: the lowest ceiling and
// visibility across matches, and the highest wind and crosswind. A pilot only
// needs one authorizing rule, so each bound independently takes the most
// permissive matching value. Returns false if no rule matches at all (for
// example an unsupervised novice).
func ResolveMinimums(cert Certification, area string, instructed, vfr, daytime bool, rules []models.MinimumsRule) (Minimums, bool) {
	var resolved Minimums
	found := false

	for _, rule := range rules {
		if !matchesCategory(rule.Category, cert, instructed) ||
			!matchesConditions(rule.Conditions, vfr) ||
			!matchesArea(rule.Area, area) ||
			!matchesTime(rule.Time, daytime) {
			continue
		}

		if !found {
			resolved = Minimums{
				Ceiling:    rule.Ceiling,
				Visibility: rule.Visibility,
				Wind:       rule.Wind,
				Crosswind:  rule.Crosswind,
			}
			found = true
			continue
		}

		if rule.Ceiling < resolved.Ceiling {
			resolved.Ceiling = rule.Ceiling
		}
		if rule.Visibility < resolved.Visibility {
			resolved.Visibility = rule.Visibility
		}
		if rule.Wind > resolved.Wind {
			resolved.Wind = rule.Wind
		}
		if rule.Crosswind > resolved.Crosswind {
			resolved.Crosswind = rule.Crosswind
		}
	}

	return resolved, found
}

// matchesCategory applies the certification hierarchy: a rule for a lower
// certification also covers every higher one. "Dual" rules apply to any
// instructed flight, even for invalid or novice pilots.
func matchesCategory(category string, cert Certification, instructed bool) bool {
	switch category {
	case "Student":
		return cert >= CertStudent
	case "Certified":
		return cert >= CertCertified
	case "50 Hours":
		return cert == CertFiftyHours
	case "Dual":
		return instructed
	}
	return false
}

// matchesConditions maps the filed flight rule to the weather regime the rule
// row governs: VFR flights are subject to VMC rows, IFR flights to IMC rows.
func matchesConditions(conditions string, vfr bool) bool {
	switch conditions {
	case "VMC":
		return vfr
	case "IMC":
		return !vfr
	}
	return false
}

// matchesArea applies area containment: the pattern and the practice area are
// both local flying, and "Any" rows cover everything.
func matchesArea(ruleArea, area string) bool {
	switch ruleArea {
	case "Pattern", "Practice Area":
		return area == ruleArea || area == "Local" || area == "Any"
	case "Local":
		return area == "Pattern" || area == "Practice Area" || area == "Local" || area == "Any"
	case "Cross Country":
		return area == "Cross Country" || area == "Any"
	case "Any":
		return true
	}
	return false
}

func matchesTime(ruleTime string, daytime bool) bool {
	switch ruleTime {
	case "Day":
		return daytime
	case "Night":
		return !daytime
	}
	return false
}
