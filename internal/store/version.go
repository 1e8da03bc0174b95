package store

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the version of the StateData layout written by this build.
const SchemaVersion = "v1.1.0"

// ErrUnsupportedVersion is returned for a document written by a newer
// incompatible build or carrying a malformed version.
var ErrUnsupportedVersion = errors.New("unsupported state schema version")

// migrations upgrade a document from the keyed version to the next one,
// applied in order.
var migrations = []struct {
	from string
	to   string
	fn   func(*StateData)
}{
	{from: "v1.0.0", to: "v1.1.0", fn: migrateStudyDate},
}

// Migrate upgrades d in place to SchemaVersion. A document without a
// version is treated as v1.0.0. Documents from a newer minor or major
// version are rejected.
func Migrate(d *StateData) error {
	v := d.SchemaVersion
	if v == "" {
		v = "v1.0.0"
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%q: %w", v, ErrUnsupportedVersion)
	}
	if semver.Compare(semver.MajorMinor(v), semver.MajorMinor(SchemaVersion)) > 0 {
		return fmt.Errorf("%s is newer than %s: %w", v, SchemaVersion, ErrUnsupportedVersion)
	}

	for _, m := range migrations {
		if semver.Compare(v, m.to) < 0 && semver.Compare(v, m.from) >= 0 {
			m.fn(d)
			v = m.to
		}
	}
	d.SchemaVersion = SchemaVersion
	d.Normalize()
	return nil
}

// migrateStudyDate backfills the last study date, which v1.0.0 did not
// record, from the newest session in the log.
func migrateStudyDate(d *StateData) {
	if d.Progress.LastStudyDate != nil {
		return
	}
	for i := range d.Sessions {
		s := d.Sessions[i]
		if d.Progress.LastStudyDate == nil || s.Date.After(*d.Progress.LastStudyDate) {
			date := s.Date
			d.Progress.LastStudyDate = &date
		}
	}
}
