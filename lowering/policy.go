package lowering

import "fmt"

// ErrorPolicy decides what happens when a deferred action throws.
type ErrorPolicy uint8

const (
	// remaining actions still run; a later exception supersedes the
	// current one and carries it as .suppressed
	PolicyChain ErrorPolicy = iota
	// action exceptions go to console.error and are dropped
	PolicyLog
)

var policyNames = map[ErrorPolicy]string{
	PolicyChain: "chain",
	PolicyLog:   "log",
}

func (p ErrorPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("ErrorPolicy(%d)", p)
}

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	for policy, name := range policyNames {
		if name == s {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("unknown error policy %q", s)
}

func (p ErrorPolicy) MarshalText() ([]byte, error) {
	name, ok := policyNames[p]
	if !ok {
		return nil, fmt.Errorf("invalid error policy %d", uint8(p))
	}
	return []byte(name), nil
}

func (p *ErrorPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseErrorPolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

const prologueChain = ` const $S = []; let $F = false, $E; try {`

const prologueLog = ` const $S = []; try {`

const epilogueChain = ` } catch ($C) { $F = true; $E = $C; } finally { while ($S.length > 0) { try { $AWAIT$S.pop()(); } catch ($C) { if ($F && $C !== null && $C !== $E && (typeof $C === "object" || typeof $C === "function") && Object.isExtensible($C) && !("suppressed" in $C)) { $C.suppressed = $E; } $F = true; $E = $C; } } if ($F) { throw $E; } } `

const epilogueLog = ` } finally { while ($S.length > 0) { try { $AWAIT$S.pop()(); } catch ($C) { console.error($C); } } } `

func (p ErrorPolicy) prologue() string {
	if p == PolicyLog {
		return prologueLog
	}
	return prologueChain
}

func (p ErrorPolicy) epilogue() string {
	if p == PolicyLog {
		return epilogueLog
	}
	return epilogueChain
}
