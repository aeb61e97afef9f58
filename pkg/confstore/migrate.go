package confstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Migration rewrites stored values when the application crosses Range.
//
// Range is either an exact version ("2.0.0"), a lower bound (">=2.0.0"),
// a caret range ("^2.0.0") or a tilde range ("~2.1.0").
type Migration struct {
	Range string
	Apply func(s *Store) error
}

const initialVersion = "v0.0.0"

// canonical turns "1.2.3" or "v1.2.3" into the "v1.2.3" form x/mod/semver expects.
func canonical(version string) (string, bool) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", false
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", false
	}
	return version, true
}

type constraint struct {
	op      string
	version string
}

func parseConstraint(rng string) (constraint, error) {
	rng = strings.TrimSpace(rng)
	for _, op := range []string{">=", "^", "~"} {
		if rest, ok := strings.CutPrefix(rng, op); ok {
			v, valid := canonical(rest)
			if !valid {
				return constraint{}, fmt.Errorf("invalid version in range %q", rng)
			}
			return constraint{op: op, version: v}, nil
		}
	}
	v, valid := canonical(rng)
	if !valid {
		return constraint{}, fmt.Errorf("invalid migration range %q", rng)
	}
	return constraint{op: "=", version: v}, nil
}

func (c constraint) satisfiedBy(version string) bool {
	if semver.Compare(version, c.version) < 0 {
		return false
	}
	switch c.op {
	case ">=":
		return true
	case "^":
		return semver.Major(version) == semver.Major(c.version)
	case "~":
		return semver.MajorMinor(version) == semver.MajorMinor(c.version)
	default:
		return semver.Compare(version, c.version) == 0
	}
}

// shouldRun reports whether a migration applies when moving from previous to
// current. An exact version runs once when it is crossed; a range runs when
// current enters it from outside.
func (c constraint) shouldRun(previous, current string) bool {
	if c.op == "=" {
		return semver.Compare(c.version, previous) > 0 && semver.Compare(c.version, current) <= 0
	}
	if c.satisfiedBy(previous) {
		return false
	}
	return c.satisfiedBy(current)
}

func (s *Store) migrate(appVersion string, migrations []Migration) error {
	current, ok := canonical(appVersion)
	if !ok {
		// Without a comparable version there is nothing to migrate to.
		return nil
	}

	var state internalState
	if raw, found := s.Raw(internalKey); found {
		_ = json.Unmarshal(raw, &state)
	}
	previous, ok := canonical(state.Migrations.Version)
	if !ok {
		previous = initialVersion
	}

	before := s.snapshot()
	persisted := len(before) > 0

	for _, m := range migrations {
		c, err := parseConstraint(m.Range)
		if err != nil {
			return err
		}
		if !c.shouldRun(previous, current) {
			continue
		}
		if err := m.Apply(s); err != nil {
			s.restore(before)
			return fmt.Errorf("migration %s: %w", m.Range, err)
		}
	}
	if len(s.snapshot()) > 0 {
		persisted = true
	}

	state.Migrations.Version = strings.TrimPrefix(current, "v")
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := !equalJSON(s.doc[internalKey], data)
	s.doc[internalKey] = data
	if persisted && changed {
		return s.save()
	}
	return nil
}

func equalJSON(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
