package physics

import (
	"fmt"
	"strings"
)

// JumpRule decides how jump permission survives between landings.
type JumpRule int

const (
	// JumpGrounded derives permission from contact found in the current
	// tick only. Walking off a ledge revokes it.
	JumpGrounded JumpRule = iota

	// JumpSticky keeps permission from the last landing until a jump is
	// made, even after walking off a platform.
	JumpSticky

	// JumpStrict revokes permission on every tick the player is off the
	// ground; a platform top resolved later in the same tick grants it back.
	JumpStrict
)

// JumpRules lists the rules in display order.
var JumpRules = []JumpRule{JumpGrounded, JumpSticky, JumpStrict}

// String returns the configuration name of the rule.
func (r JumpRule) String() string {
	switch r {
	case JumpGrounded:
		return "grounded"
	case JumpSticky:
		return "sticky"
	case JumpStrict:
		return "strict"
	default:
		return fmt.Sprintf("jumprule(%d)", int(r))
	}
}

// Description is a one-line summary for listings.
func (r JumpRule) Description() string {
	switch r {
	case JumpGrounded:
		return "jump allowed only while resting on ground or a platform this tick"
	case JumpSticky:
		return "a landing grants one jump that survives walking off ledges"
	case JumpStrict:
		return "permission revoked whenever the player is off the ground boundary"
	default:
		return ""
	}
}

// ParseJumpRule resolves a rule name. The empty string selects JumpGrounded.
func ParseJumpRule(name string) (JumpRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "grounded":
		return JumpGrounded, nil
	case "sticky":
		return JumpSticky, nil
	case "strict":
		return JumpStrict, nil
	}
	return JumpGrounded, fmt.Errorf("physics: unknown jump rule %q", name)
}
