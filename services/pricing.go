// Package services provides the BOM pricing and progress rollups plus the
// export generators built on top of them.
package services

import "github.com/shopspring/decimal"

// CalcMaterialLineTotal returns quantity * unitCost rounded to cents.
// Missing or negative inputs count as 0.
func CalcMaterialLineTotal(quantity, unitCost Number) float64 {
	return calcLineTotal(quantity, unitCost).InexactFloat64()
}

func calcLineTotal(quantity, unitCost Number) decimal.Decimal {
	return roundCents(money(quantity).Mul(money(unitCost)))
}

// CalcCategoryTotal sums the line totals of a category in declared order.
func CalcCategoryTotal(materials []Material) float64 {
	return sumCategory(materials).InexactFloat64()
}

func sumCategory(materials []Material) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(calcLineTotal(m.Quantity, m.UnitCost))
	}
	return total
}

// CalcTax returns rate * (materialTotal + laborCost) rounded to cents.
func CalcTax(rate, materialTotal, laborCost float64) float64 {
	base := decimal.NewFromFloat(materialTotal).Add(decimal.NewFromFloat(laborCost))
	return calcTax(decimal.NewFromFloat(ClampNonNegative(rate)), base).InexactFloat64()
}

func calcTax(rate, base decimal.Decimal) decimal.Decimal {
	return roundCents(rate.Mul(base))
}

// CalcMarkup returns the markup on total under the given policy. The rate
// wins when both a rate and a fixed amount are supplied. A policy with no
// markup yields 0.
func CalcMarkup(total float64, policy PricingPolicy) float64 {
	return calcMarkup(decimal.NewFromFloat(total), policy).InexactFloat64()
}

func calcMarkup(total decimal.Decimal, policy PricingPolicy) decimal.Decimal {
	if policy.MarkupRate.IsSet() {
		return roundCents(money(policy.MarkupRate).Mul(total))
	}
	return roundCents(money(policy.MarkupFixed))
}

// ComputeBOM prices a raw BOM: line totals, category totals, material total,
// project total, and the marked-up total when the policy carries a markup.
// The input is not modified. A nil BOM is the only error.
func ComputeBOM(bom *RawBOM, policy PricingPolicy) (PricedBOM, error) {
	if bom == nil {
		return PricedBOM{}, &MissingDataError{Entity: "bom"}
	}

	priced := PricedBOM{
		ProjectDetails: bom.ProjectDetails,
		Categories:     make([]PricedCategory, 0, len(bom.Categories)),
	}

	materialTotal := decimal.Zero
	for _, c := range bom.Categories {
		pc := PricedCategory{
			Name:      c.Name,
			Materials: make([]PricedMaterial, 0, len(c.Materials)),
		}
		categoryTotal := decimal.Zero
		for _, m := range c.Materials {
			line := calcLineTotal(m.Quantity, m.UnitCost)
			categoryTotal = categoryTotal.Add(line)
			pc.Materials = append(pc.Materials, PricedMaterial{
				Description: m.Description,
				Quantity:    ClampNonNegative(m.Quantity.UnwrapOrZero()),
				Unit:        m.Unit,
				UnitCost:    ClampNonNegative(m.UnitCost.UnwrapOrZero()),
				LineTotal:   line.InexactFloat64(),
			})
		}
		pc.CategoryTotal = categoryTotal.InexactFloat64()
		materialTotal = materialTotal.Add(categoryTotal)
		priced.Categories = append(priced.Categories, pc)
	}

	labor := roundCents(money(bom.LaborCost))
	tax := roundCents(money(bom.Tax))
	if policy.TaxRate.IsSet() {
		tax = calcTax(money(policy.TaxRate), materialTotal.Add(labor))
	}
	total := materialTotal.Add(labor).Add(tax)

	priced.MaterialTotalCost = materialTotal.InexactFloat64()
	priced.LaborCost = labor.InexactFloat64()
	priced.Tax = tax.InexactFloat64()
	priced.TotalProjectCost = total.InexactFloat64()

	switch {
	case policy.HasMarkup():
		markup := calcMarkup(total, policy)
		priced.MarkedUpCosts = &MarkedUpCosts{
			TotalProjectCost: total.Add(markup).InexactFloat64(),
			Markup:           markup.InexactFloat64(),
			BaseTotal:        priced.TotalProjectCost,
			Rate:             optionalFloat(policy.MarkupRate),
			Fixed:            optionalFloat(policy.MarkupFixed),
		}
	case bom.MarkedUpCosts != nil:
		cached := bom.MarkedUpCosts.clone()
		if decimal.NewFromFloat(cached.BaseTotal).Equal(total) {
			priced.MarkedUpCosts = cached
		} else {
			priced.MarkupStale = true
		}
	}

	return priced, nil
}

// optionalFloat records a policy input as it was applied: clamped to 0.
func optionalFloat(n Number) *float64 {
	if !n.IsSet() {
		return nil
	}
	v := ClampNonNegative(n.UnwrapOrZero())
	return &v
}
