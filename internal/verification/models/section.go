package models

import (
	dErrors "ownerverify/pkg/domain-errors"
)

// SectionName identifies one of the fixed verification domains.
type SectionName string

const (
	SectionIdentity            SectionName = "identity"
	SectionAddress             SectionName = "address"
	SectionBusinessAffiliation SectionName = "businessAffiliation"
)

type SectionStatus string

const (
	SectionIncomplete SectionStatus = "INCOMPLETE"
	SectionComplete   SectionStatus = "COMPLETE"
	SectionFlagged    SectionStatus = "FLAGGED"
)

func (s SectionStatus) IsValid() bool {
	switch s {
	case SectionIncomplete, SectionComplete, SectionFlagged:
		return true
	}
	return false
}

type SectionState struct {
	Status SectionStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// Sections is the per-domain review state of an attempt. The set of sections
// is fixed, so it is a struct rather than a map.
type Sections struct {
	Identity            SectionState `json:"identity"`
	Address             SectionState `json:"address"`
	BusinessAffiliation SectionState `json:"businessAffiliation"`
}

// NewSections returns every section INCOMPLETE.
func NewSections() Sections {
	return Sections{
		Identity:            SectionState{Status: SectionIncomplete},
		Address:             SectionState{Status: SectionIncomplete},
		BusinessAffiliation: SectionState{Status: SectionIncomplete},
	}
}

func (s Sections) byName() map[SectionName]SectionState {
	return map[SectionName]SectionState{
		SectionIdentity:            s.Identity,
		SectionAddress:             s.Address,
		SectionBusinessAffiliation: s.BusinessAffiliation,
	}
}

// Validate rejects unknown section statuses.
func (s Sections) Validate() error {
	for name, st := range s.byName() {
		if !st.Status.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "invalid status for section "+string(name))
		}
	}
	return nil
}

// AllComplete reports whether every section is COMPLETE.
func (s Sections) AllComplete() bool {
	for _, st := range s.byName() {
		if st.Status != SectionComplete {
			return false
		}
	}
	return true
}

// Incomplete lists the sections that are not COMPLETE, in a stable order.
func (s Sections) Incomplete() []SectionName {
	var out []SectionName
	for _, name := range []SectionName{SectionIdentity, SectionAddress, SectionBusinessAffiliation} {
		if s.byName()[name].Status != SectionComplete {
			out = append(out, name)
		}
	}
	return out
}
