package ats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"
)

// Reports is an ordered collection of evaluation reports.
type Reports struct {
	Items []*Report `json:"items"`
}

func (r *Reports) Len() int {
	return len(r.Items)
}

func (r *Reports) FindByID(id string) *Report {
	for _, report := range r.Items {
		if report.ID == id {
			return report
		}
	}
	return nil
}

// Names returns the resume names in collection order.
func (r *Reports) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, report := range r.Items {
		names = append(names, report.Resume)
	}
	return names
}

// RemoveWhere drops every report matching fn, keeping the order of the rest,
// and returns the names of the removed resumes.
func (r *Reports) RemoveWhere(fn func(*Report) bool) []string {
	var removed []string
	kept := r.Items[:0]
	for _, report := range r.Items {
		if fn(report) {
			removed = append(removed, report.Resume)
			continue
		}
		kept = append(kept, report)
	}
	clear(r.Items[len(kept):])
	r.Items = kept
	return removed
}

// Exclude removes reports for the named resumes.
func (r *Reports) Exclude(names []string) []string {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return r.RemoveWhere(func(report *Report) bool { return set[report.Resume] })
}

// SortByScore orders reports by final score, highest first. Ties keep their
// original order.
func (r *Reports) SortByScore() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].FinalScore() > r.Items[j].FinalScore()
	})
}

// ReportByMissingSkill groups resume names by the required skills they lack.
func (r *Reports) ReportByMissingSkill() map[string][]string {
	report := make(map[string][]string)
	for _, item := range r.Items {
		for _, skill := range item.Skills.Missing {
			report[skill] = append(report[skill], item.Resume)
		}
	}
	return report
}

// DumpToTmpFile writes the reports as indented JSON to a new temporary file
// and returns its name.
func (r *Reports) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ats_reports_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToExcluded converts the reports into exclude file entries.
func (r *Reports) ToExcluded(reason string) *ExcludedResumes {
	excluded := &ExcludedResumes{}
	now := time.Now().UTC()
	for _, report := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedResume{
			Resume:     report.Resume,
			FinalScore: report.FinalScore(),
			Reason:     reason,
			ExcludedAt: now,
		})
	}
	return excluded
}

// FilterTop returns the reports whose final score reaches threshold, sorted by
// final score descending. The input slice is not modified.
func FilterTop(reports []*Report, threshold int) []*Report {
	top := &Reports{}
	for _, report := range reports {
		if report != nil && report.FinalScore() >= threshold {
			top.Items = append(top.Items, report)
		}
	}
	top.SortByScore()
	return top.Items
}

// SortByCoverage orders reports by skill coverage, highest first, then by the
// number of matched skills. Ties keep their original order.
func (r *Reports) SortByCoverage() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		a, b := r.Items[i], r.Items[j]
		if a.Coverage != b.Coverage {
			return a.Coverage > b.Coverage
		}
		return len(a.Skills.Matched) > len(b.Skills.Matched)
	})
}

// RankByCoverage returns the non-nil reports ordered by SortByCoverage. It is
// the shortlist order when no LLM scores exist. The input slice is not
// modified.
func RankByCoverage(reports []*Report) []*Report {
	ranked := &Reports{}
	for _, report := range reports {
		if report != nil {
			ranked.Items = append(ranked.Items, report)
		}
	}
	ranked.SortByCoverage()
	return ranked.Items
}

// ExcludedResumes is the content of an exclude file: resumes already reviewed
// in earlier batch runs.
type ExcludedResumes struct {
	Items []*ExcludedResume `json:"items"`
}

type ExcludedResume struct {
	Resume     string    `json:"resume"`
	FinalScore int       `json:"final_score"`
	Reason     string    `json:"reason,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// LoadExcluded reads an exclude file. A missing or empty file yields an empty
// list.
func LoadExcluded(path string) (*ExcludedResumes, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedResumes{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedResumes{}, nil
	}

	var excluded ExcludedResumes
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %s: %w", path, err)
	}
	return &excluded, nil
}

func (e *ExcludedResumes) Append(other *ExcludedResumes) {
	if other == nil {
		return
	}
	e.Items = append(e.Items, other.Items...)
}

func (e *ExcludedResumes) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Resume)
	}
	return names
}

func (e *ExcludedResumes) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
