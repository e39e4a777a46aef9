package service

// Level maps cumulative XP to a level. Level 1 spans XP [0,10]; every level
// after that spans a 30-XP band starting at 11. Total for any input, negative
// XP is clamped to zero.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	if xp <= 10 {
		return 1
	}
	return (xp-11)/30 + 2
}

// XPForNextLevel returns how much XP is still missing to reach the next
// level. At the first XP of a band it returns the full band width, so the
// result is always positive.
func XPForNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := Level(xp)
	if level == 1 {
		return 11 - xp
	}
	nextThreshold := (level-1)*30 + 11
	return nextThreshold - xp
}
