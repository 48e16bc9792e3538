// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metricscontroller

import (
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/calculator"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// Family is a logical dashboard card group.
type Family string

const (
	FamilyItems        Family = "items"
	FamilyScoreResults Family = "scoreResults"
	FamilyTasks        Family = "tasks"
	FamilyProcedures   Family = "procedures"
	FamilyFeedback     Family = "feedback"
)

func ParseFamily(s string) (Family, error) {
	switch f := Family(s); f {
	case FamilyItems, FamilyScoreResults, FamilyTasks, FamilyProcedures, FamilyFeedback:
		return f, nil
	}
	return "", errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("unknown metrics family %q", s)
}

// Filter narrows a series to records created by predictions or evaluations.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterPrediction Filter = "prediction"
	FilterEvaluation Filter = "evaluation"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPrediction, FilterEvaluation:
		return f, nil
	}
	return "", errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("unknown filter %q", s)
}

type FilterOptions struct {
	ItemType        Filter `json:"itemType"`
	ScoreResultType Filter `json:"scoreResultType"`
}

func (o FilterOptions) normalize() FilterOptions {
	if o.ItemType == "" {
		o.ItemType = FilterAll
	}
	if o.ScoreResultType == "" {
		o.ScoreResultType = FilterAll
	}
	return o
}

func itemRecordType(f Filter) model.RecordType {
	switch f {
	case FilterPrediction:
		return model.RecordTypePredictionItems
	case FilterEvaluation:
		return model.RecordTypeEvaluationItems
	}
	return model.RecordTypeItems
}

func scoreResultRecordType(f Filter) model.RecordType {
	switch f {
	case FilterPrediction:
		return model.RecordTypePredictionScoreResults
	case FilterEvaluation:
		return model.RecordTypeEvaluationScoreResults
	}
	return model.RecordTypeScoreResults
}

// ResolveRecordTypes maps a family and its filters to the primary and secondary series.
func ResolveRecordTypes(family Family, opts FilterOptions) (primary, secondary model.RecordType, err error) {
	opts = opts.normalize()
	switch family {
	case FamilyItems:
		return itemRecordType(opts.ItemType), scoreResultRecordType(opts.ScoreResultType), nil
	case FamilyScoreResults:
		return scoreResultRecordType(opts.ScoreResultType), itemRecordType(opts.ItemType), nil
	case FamilyTasks:
		return model.RecordTypeTasks, model.RecordTypeProcedures, nil
	case FamilyProcedures:
		return model.RecordTypeProcedures, model.RecordTypeTasks, nil
	case FamilyFeedback:
		return model.RecordTypeFeedbackItems, model.RecordTypeEvaluationScoreResults, nil
	}
	return "", "", errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("unknown metrics family %q", family)
}

// DefaultFloors returns the minimum gauge peaks for a family.
func DefaultFloors(family Family) calculator.Floors {
	switch family {
	case FamilyItems:
		return calculator.Floors{Primary: calculator.DefaultItemFloor, Secondary: calculator.DefaultScoreResultFloor}
	case FamilyScoreResults:
		return calculator.Floors{Primary: calculator.DefaultScoreResultFloor, Secondary: calculator.DefaultItemFloor}
	}
	return calculator.Floors{Primary: calculator.DefaultTaskFloor, Secondary: calculator.DefaultTaskFloor}
}

// FloorsFromConfig applies per record type overrides, keyed by RecordType name.
func FloorsFromConfig(family Family, primary, secondary model.RecordType, overrides map[string]int) calculator.Floors {
	floors := DefaultFloors(family)
	if v, ok := overrides[string(primary)]; ok {
		floors.Primary = v
	}
	if v, ok := overrides[string(secondary)]; ok {
		floors.Secondary = v
	}
	return floors
}
