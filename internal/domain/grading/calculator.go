package grading

import (
	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// GradeBand holds the five computed salary interval values for one
// position group: Lower Decile, Lower Quartile, Median, Upper Quartile,
// Upper Decile.
type GradeBand struct {
	PositionGroup employee.PositionGroup
	LD            decimal.Decimal
	LQ            decimal.Decimal
	M             decimal.Decimal
	UQ            decimal.Decimal
	UD            decimal.Decimal
}

// Values returns the band values in interval order
func (b GradeBand) Values() [5]decimal.Decimal {
	return [5]decimal.Decimal{b.LD, b.LQ, b.M, b.UQ, b.UD}
}

var oneHundred = decimal.NewFromInt(100)

// CalculateGrades computes salary bands for every position group.
//
// The lowest group's LD is the scenario base value. Each subsequent
// group's LD grows from the previous group's LD by that group's vertical
// percent. Within a group, the intervals chain horizontally:
//
//	LQ = LD * (1 + h0),  M = LQ * (1 + h1),
//	UQ = M  * (1 + h2),  UD = UQ * (1 + h3)
//
// Percents are expressed as whole numbers (12.5 means 12.5%). All values
// are rounded to 2 decimal places.
func CalculateGrades(baseValue decimal.Decimal, inputs []GradeInput) ([]GradeBand, error) {
	if baseValue.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_BASE_VALUE", "Base value must be positive")
	}

	byGroup := make(map[employee.PositionGroup]GradeInput, len(inputs))
	for _, in := range inputs {
		if !in.PositionGroup.IsValid() {
			return nil, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group in inputs")
		}
		byGroup[in.PositionGroup] = in
	}

	bands := make([]GradeBand, 0, len(employee.PositionGroupsOrdered))
	prevLD := decimal.Zero

	for i, group := range employee.PositionGroupsOrdered {
		in, ok := byGroup[group]
		if !ok {
			return nil, shared.NewDomainError("INCOMPLETE_INPUTS", "Missing grade input for position group "+group.String())
		}

		var ld decimal.Decimal
		if i == 0 {
			ld = baseValue
		} else {
			ld = applyPercent(prevLD, in.VerticalPercent)
		}

		lq := applyPercent(ld, in.HorizontalPercents[0])
		m := applyPercent(lq, in.HorizontalPercents[1])
		uq := applyPercent(m, in.HorizontalPercents[2])
		ud := applyPercent(uq, in.HorizontalPercents[3])

		bands = append(bands, GradeBand{
			PositionGroup: group,
			LD:            ld.Round(2),
			LQ:            lq.Round(2),
			M:             m.Round(2),
			UQ:            uq.Round(2),
			UD:            ud.Round(2),
		})

		prevLD = ld
	}

	return bands, nil
}

// BandDelta is the per-group difference between two structures
type BandDelta struct {
	PositionGroup employee.PositionGroup
	MedianBefore  decimal.Decimal
	MedianAfter   decimal.Decimal
	MedianChange  decimal.Decimal // Absolute change of the median
	ChangePercent decimal.Decimal // Relative change of the median, percent
}

// Comparison summarizes a scenario against the current structure
type Comparison struct {
	Deltas               []BandDelta
	AverageChangePercent decimal.Decimal
}

// Compare computes per-group median deltas of candidate bands against
// current bands, plus the average relative change. Groups missing from
// either side are skipped.
func Compare(current, candidate []GradeBand) Comparison {
	currentByGroup := make(map[employee.PositionGroup]GradeBand, len(current))
	for _, b := range current {
		currentByGroup[b.PositionGroup] = b
	}

	deltas := make([]BandDelta, 0, len(candidate))
	sumPercent := decimal.Zero

	for _, after := range candidate {
		before, ok := currentByGroup[after.PositionGroup]
		if !ok {
			continue
		}

		change := after.M.Sub(before.M)
		percent := decimal.Zero
		if !before.M.IsZero() {
			percent = change.Div(before.M).Mul(oneHundred).Round(2)
		}

		deltas = append(deltas, BandDelta{
			PositionGroup: after.PositionGroup,
			MedianBefore:  before.M,
			MedianAfter:   after.M,
			MedianChange:  change.Round(2),
			ChangePercent: percent,
		})
		sumPercent = sumPercent.Add(percent)
	}

	avg := decimal.Zero
	if len(deltas) > 0 {
		avg = sumPercent.Div(decimal.NewFromInt(int64(len(deltas)))).Round(2)
	}

	return Comparison{Deltas: deltas, AverageChangePercent: avg}
}

// applyPercent returns value grown by percent (whole-number percent)
func applyPercent(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(1).Add(percent.Div(oneHundred)))
}
