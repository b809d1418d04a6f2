// Package model contains the flight detail shapes decoded from the
// WeGlide JSONL export.
package model

import "encoding/json"

// FlightRecord is one line of the flight details export. Only the fields
// the DMSt check needs are decoded; everything else on the line is ignored.
//
// Numeric fields that feed score arithmetic stay json.Number so decimals
// are built from the literal digits rather than a float64 round-trip.
type FlightRecord struct {
	ID           int64     `json:"id"`
	DMStIndex    int       `json:"dmst_index"`
	Contests     []Contest `json:"contest"`
	Task         *Task     `json:"task"`
	TaskAchieved *bool     `json:"task_achieved"`
}

// Contest is a named scoring sub-record, e.g. "au" or "free".
type Contest struct {
	Name   string      `json:"name"`
	Points json.Number `json:"points"`
	Score  *Score      `json:"score"`
}

// Score is the geometry breakdown behind a contest's points.
type Score struct {
	Distance json.Number `json:"distance"`
	Name     string      `json:"name"`
	Declared *bool       `json:"declared"`
}

// Task is the declared task, when the pilot submitted one.
type Task struct {
	Distance json.Number `json:"distance"`
	Kind     string      `json:"kind"`
}

// ContestNamed returns the first contest entry with the given name,
// or nil when the record has none.
func (f *FlightRecord) ContestNamed(name string) *Contest {
	for i := range f.Contests {
		if f.Contests[i].Name == name {
			return &f.Contests[i]
		}
	}
	return nil
}

// Achieved reports whether task_achieved is literally true. Absent and
// null both count as not achieved.
func (f *FlightRecord) Achieved() bool {
	return f.TaskAchieved != nil && *f.TaskAchieved
}

// DeclaredFalse reports whether the score carries an explicit declared=false.
// Absent is not the same as false here: only the explicit value disables
// the task score.
func (s *Score) DeclaredFalse() bool {
	return s != nil && s.Declared != nil && !*s.Declared
}

// DeclaredTrue reports whether the score carries an explicit declared=true.
func (s *Score) DeclaredTrue() bool {
	return s != nil && s.Declared != nil && *s.Declared
}
