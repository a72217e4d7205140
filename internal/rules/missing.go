package rules

import (
	"fmt"

	"github.com/tallyhq/tally/internal/heuristic"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/model"
)

// Estimated deduction amounts for the missing-category rules. These are the
// tuned per-rule constants; downstream savings figures depend on them exactly.
const (
	homeOfficeRemoteEstimate = 1500.0
	homeOfficeHybridEstimate = 800.0
	vehicleMissingEstimate   = 1000.0
	selfEducationEstimate    = 1200.0
	uniformEstimate          = 300.0
	workTravelEstimate       = 800.0
	toolsEstimate            = 600.0
	subscriptionEstimate     = 400.0
	incomeProtectionEstimate = 1200.0
	cryptoRecordsEstimate    = 500.0
	capitalWorksEstimate     = 2500.0
	shareDeductionEstimate   = 350.0
	phoneInternetEstimate    = 400.0
	donationEstimate         = 200.0
	taxAgentFeeEstimate      = 180.0
)

// Income preconditions for rules keyed off earnings rather than occupation.
const (
	subscriptionIncomeFloor     = 60000.0
	incomeProtectionIncomeFloor = 80000.0
	donationIncomeFloor         = 50000.0
	superIncomeFloor            = 100000.0
)

func scored(in Inputs, ruleID string, base float64, evidence []string) *model.HeuristicScore {
	s := heuristic.Score(in.Profile, in.Current, evidence, base, ruleID)
	return &s
}

func homeOfficeRule() Rule {
	return Rule{
		ID:       "WFH-001",
		Name:     "Home office expenses not claimed",
		Category: "D5 - Other work-related expenses",
		Priority: model.PriorityCritical,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			switch profile.WorkArrangement {
			case model.WorkRemote:
				return 1.0
			case model.WorkHybrid:
				return 0.7
			case model.WorkMixed:
				return 0.4
			default:
				return 0.1
			}
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			arrangement := in.Profile.WorkArrangement
			if arrangement != model.WorkRemote && arrangement != model.WorkHybrid {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, homeOfficeKeywords) {
				return nil
			}

			estimate := homeOfficeHybridEstimate
			if arrangement == model.WorkRemote {
				estimate = homeOfficeRemoteEstimate
			}
			savings := in.Tax.Savings(estimate, in.Profile.TaxableIncome)

			evidence := []string{
				fmt.Sprintf("work arrangement is %s", arrangement),
				"no home office expenses recorded this year",
			}
			score := scored(in, "WFH-001", 0.6, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D5 - Other work-related expenses",
				Title:    "Claim home office running expenses",
				Description: fmt.Sprintf(
					"You work %s but have no home office expenses recorded. Running costs such as electricity, heating and depreciation of office furniture are deductible, typically around $%.0f per year.",
					arrangement, estimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityCritical,
				HeuristicScore:      score,
				RegulatoryReference: "ATO PCG 2023/1",
				TaxImpact:           fmt.Sprintf("A $%.0f deduction would reduce your tax by about $%.2f at your marginal rate.", estimate, savings),
				ActionItems: []string{
					"Record hours worked from home for the full year",
					"Choose between the fixed-rate and actual-cost methods",
					"Keep one representative bill for each running cost",
				},
			}
		},
	}
}

func vehicleMissingRule() Rule {
	return Rule{
		ID:       "VEH-002",
		Name:     "Vehicle owner with no car expense claims",
		Category: "D1 - Work-related car expenses",
		Priority: model.PriorityHigh,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			if profile.HasVehicle {
				return 0.8
			}
			return 0.1
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !in.Profile.HasVehicle {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, vehicleKeywords) {
				return nil
			}

			savings := in.Tax.Savings(vehicleMissingEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				"profile declares a vehicle",
				"no car expenses recorded this year",
			}
			score := scored(in, "VEH-002", 0.5, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D1 - Work-related car expenses",
				Title:    "Claim work-related car expenses",
				Description: fmt.Sprintf(
					"You own a vehicle but have claimed no car expenses. If you drive between work sites or carry bulky equipment, the cents-per-kilometre method alone is commonly worth around $%.0f.",
					vehicleMissingEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D1 car expenses",
				TaxImpact:           fmt.Sprintf("Claiming $%.0f of car expenses would save about $%.2f.", vehicleMissingEstimate, savings),
				ActionItems: []string{
					"Record work-related trips for a representative period",
					"Decide between cents-per-kilometre and logbook methods",
				},
			}
		},
	}
}

func selfEducationRule() Rule {
	return Rule{
		ID:       "EDU-001",
		Name:     "Self-education expenses not claimed",
		Category: "D4 - Self-education expenses",
		Priority: model.PriorityHigh,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			if profile.IsStudying {
				return 0.9
			}
			return 0.1
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !in.Profile.IsStudying {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, educationKeywords) {
				return nil
			}

			savings := in.Tax.Savings(selfEducationEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				"profile declares current study",
				"no self-education expenses recorded",
			}
			score := scored(in, "EDU-001", 0.55, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D4 - Self-education expenses",
				Title:    "Claim self-education expenses",
				Description: fmt.Sprintf(
					"You are studying but have no self-education expenses recorded. Course fees, textbooks and stationery connected to your current work are deductible, often around $%.0f per year.",
					selfEducationEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO TR 2024/3",
				TaxImpact:           fmt.Sprintf("A $%.0f self-education claim would save about $%.2f.", selfEducationEstimate, savings),
				ActionItems: []string{
					"Confirm the course relates to your current employment",
					"Gather course fee statements and textbook receipts",
				},
			}
		},
	}
}

func uniformRule() Rule {
	return Rule{
		ID:       "UNI-001",
		Name:     "Uniform and laundry expenses not claimed",
		Category: "D3 - Work-related clothing expenses",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !occupationMatches(in.Profile.Occupation, uniformOccupations) {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, uniformKeywords) {
				return nil
			}

			savings := in.Tax.Savings(uniformEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("occupation %q typically wears a compulsory uniform", in.Profile.Occupation),
			}
			score := scored(in, "UNI-001", 0.45, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D3 - Work-related clothing expenses",
				Title:    "Claim uniform and laundry costs",
				Description: fmt.Sprintf(
					"Workers in your occupation commonly claim uniform purchase and laundry costs, typically around $%.0f per year, but none are recorded.",
					uniformEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D3 clothing and laundry",
				TaxImpact:           fmt.Sprintf("A $%.0f clothing claim would save about $%.2f.", uniformEstimate, savings),
				ActionItems: []string{
					"Check whether your uniform is compulsory or occupation-specific",
					"Estimate laundry using the ATO per-load rates",
				},
			}
		},
	}
}

func workTravelRule() Rule {
	return Rule{
		ID:       "TRV-001",
		Name:     "Work travel expenses not claimed",
		Category: "D2 - Work-related travel expenses",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			travels := occupationMatches(in.Profile.Occupation, travelOccupations) ||
				in.Profile.EmploymentType == model.EmploymentContractor
			if !travels {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, travelKeywords) {
				return nil
			}

			savings := in.Tax.Savings(workTravelEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("occupation %q commonly travels for work", in.Profile.Occupation),
			}
			score := scored(in, "TRV-001", 0.4, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D2 - Work-related travel expenses",
				Title:    "Claim work-related travel",
				Description: fmt.Sprintf(
					"Your role usually involves travel between work locations, yet no travel expenses are recorded. Fares, accommodation and meals on overnight trips are deductible, typically around $%.0f.",
					workTravelEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D2 travel expenses",
				TaxImpact:           fmt.Sprintf("An $%.0f travel claim would save about $%.2f.", workTravelEstimate, savings),
				ActionItems: []string{
					"List trips between workplaces or to clients",
					"Keep a travel diary for trips of six nights or more",
				},
			}
		},
	}
}

func toolsRule() Rule {
	return Rule{
		ID:       "TLS-001",
		Name:     "Tools and equipment not claimed",
		Category: "D5 - Other work-related expenses",
		Priority: model.PriorityHigh,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !occupationMatches(in.Profile.Occupation, toolsOccupations) {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, toolsKeywords) {
				return nil
			}

			savings := in.Tax.Savings(toolsEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("occupation %q typically purchases tools", in.Profile.Occupation),
			}
			score := scored(in, "TLS-001", 0.5, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D5 - Other work-related expenses",
				Title:    "Claim tools and equipment",
				Description: fmt.Sprintf(
					"Tradespeople in your occupation usually replace tools every year, around $%.0f worth, but no tool purchases are recorded. Items under $300 are immediately deductible.",
					toolsEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D5 tools and equipment",
				TaxImpact:           fmt.Sprintf("A $%.0f tools claim would save about $%.2f.", toolsEstimate, savings),
				ActionItems: []string{
					"Collect receipts for tools bought during the year",
					"Depreciate items over $300 rather than claiming outright",
				},
			}
		},
	}
}

func subscriptionsRule() Rule {
	return Rule{
		ID:       "SUB-001",
		Name:     "Professional subscriptions not claimed",
		Category: "D5 - Other work-related expenses",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			relevant := occupationMatches(in.Profile.Occupation, subscriptionOccupations) ||
				in.Profile.TaxableIncome > subscriptionIncomeFloor
			if !relevant {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, subscriptionKeywords) {
				return nil
			}

			savings := in.Tax.Savings(subscriptionEstimate, in.Profile.TaxableIncome)
			evidence := []string{"no professional memberships or union fees recorded"}
			score := scored(in, "SUB-001", 0.4, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D5 - Other work-related expenses",
				Title:    "Claim professional memberships and subscriptions",
				Description: fmt.Sprintf(
					"Union fees, professional body memberships and trade journals are deductible. Professionals at your income level typically claim around $%.0f, but none are recorded.",
					subscriptionEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D5 union and professional fees",
				TaxImpact:           fmt.Sprintf("A $%.0f claim would save about $%.2f.", subscriptionEstimate, savings),
				ActionItems: []string{
					"Check bank statements for annual membership renewals",
				},
			}
		},
	}
}

func incomeProtectionRule() Rule {
	return Rule{
		ID:       "INS-001",
		Name:     "Income protection premiums not claimed",
		Category: "D15 - Other deductions",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if in.Profile.TaxableIncome <= incomeProtectionIncomeFloor {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, insuranceKeywords) {
				return nil
			}

			savings := in.Tax.Savings(incomeProtectionEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("taxable income $%.0f exceeds $%.0f", in.Profile.TaxableIncome, incomeProtectionIncomeFloor),
			}
			score := scored(in, "INS-001", 0.35, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D15 - Other deductions",
				Title:    "Claim income protection insurance premiums",
				Description: fmt.Sprintf(
					"Premiums for income protection held outside super are fully deductible. At your income level a policy typically costs around $%.0f per year; no premiums are recorded.",
					incomeProtectionEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D15 income protection",
				TaxImpact:           fmt.Sprintf("A $%.0f premium claim would save about $%.2f.", incomeProtectionEstimate, savings),
				ActionItems: []string{
					"Check whether your policy is held inside or outside super",
					"Request an annual premium statement from your insurer",
				},
			}
		},
	}
}

func cryptoRecordsRule() Rule {
	return Rule{
		ID:       "CRY-001",
		Name:     "Crypto investor with no transaction records",
		Category: "Capital gains",
		Priority: model.PriorityHigh,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			if profile.HasInvestmentType(model.InvestmentCrypto) {
				return 0.9
			}
			return 0.05
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !in.Profile.HasInvestmentType(model.InvestmentCrypto) {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, cryptoKeywords) {
				return nil
			}

			savings := in.Tax.Savings(cryptoRecordsEstimate, in.Profile.TaxableIncome)
			evidence := []string{"crypto declared as an investment type with no related records"}
			score := scored(in, "CRY-001", 0.5, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeCategorization,
				Category: "Capital gains",
				Title:    "Record cryptocurrency transactions",
				Description: "You hold crypto assets but have no crypto transactions recorded. Every disposal is a capital gains event; without records you cannot offset losses or claim transaction fees.",
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO crypto asset guidance",
				TaxImpact:           fmt.Sprintf("Properly recorded losses and fees could save around $%.2f.", savings),
				ActionItems: []string{
					"Export trade history from each exchange",
					"Record acquisition dates and cost bases for current holdings",
				},
			}
		},
	}
}

func capitalWorksRule() Rule {
	return Rule{
		ID:       "CAP-001",
		Name:     "Capital works deduction not claimed",
		Category: "D6 - Low value pool and capital works",
		Priority: model.PriorityHigh,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			if profile.HasInvestmentType(model.InvestmentProperty) {
				return 0.85
			}
			return 0.05
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !in.Profile.HasInvestmentType(model.InvestmentProperty) {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, capitalWorksKeywords) {
				return nil
			}

			savings := in.Tax.Savings(capitalWorksEstimate, in.Profile.TaxableIncome)
			evidence := []string{"investment property declared with no depreciation claims"}
			score := scored(in, "CAP-001", 0.55, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D6 - Low value pool and capital works",
				Title:    "Claim capital works and depreciation on your rental",
				Description: fmt.Sprintf(
					"You declare an investment property but claim no capital works or depreciation. Buildings constructed after 1987 attract a 2.5%% annual capital works deduction, commonly worth $%.0f or more.",
					capitalWorksEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO Division 43",
				TaxImpact:           fmt.Sprintf("A $%.0f capital works claim would save about $%.2f.", capitalWorksEstimate, savings),
				ActionItems: []string{
					"Commission a quantity surveyor depreciation schedule",
					"Check construction date and cost of the building",
				},
			}
		},
	}
}

func shareDeductionsRule() Rule {
	return Rule{
		ID:       "SHR-001",
		Name:     "Dividend deductions not claimed",
		Category: "D8 - Dividend deductions",
		Priority: model.PriorityLow,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if !in.Profile.HasInvestmentType(model.InvestmentShares) {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, shareKeywords) {
				return nil
			}

			savings := in.Tax.Savings(shareDeductionEstimate, in.Profile.TaxableIncome)
			evidence := []string{"shares declared with no dividend-related deductions"}
			score := scored(in, "SHR-001", 0.35, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D8 - Dividend deductions",
				Title:    "Claim costs of earning dividend income",
				Description: fmt.Sprintf(
					"You hold shares but claim no dividend deductions. Margin loan interest, account fees and investment journals are deductible, typically around $%.0f.",
					shareDeductionEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityLow,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D8 dividend deductions",
				TaxImpact:           fmt.Sprintf("A $%.0f claim would save about $%.2f.", shareDeductionEstimate, savings),
				ActionItems: []string{
					"Collect broker account fee statements",
					"Check for interest on any margin or investment loan",
				},
			}
		},
	}
}

func phoneInternetRule() Rule {
	return Rule{
		ID:       "PHN-001",
		Name:     "Phone and internet not claimed",
		Category: "D5 - Other work-related expenses",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if in.Profile.WorkArrangement == model.WorkOffice {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, phoneKeywords) {
				return nil
			}

			savings := in.Tax.Savings(phoneInternetEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("work arrangement %s implies work use of phone and internet", in.Profile.WorkArrangement),
			}
			score := scored(in, "PHN-001", 0.4, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D5 - Other work-related expenses",
				Title:    "Claim work-related phone and internet",
				Description: fmt.Sprintf(
					"You work outside a traditional office but claim no phone or internet costs. The work-use percentage of both is deductible, typically around $%.0f per year.",
					phoneInternetEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D5 phone and internet",
				TaxImpact:           fmt.Sprintf("A $%.0f claim would save about $%.2f.", phoneInternetEstimate, savings),
				ActionItems: []string{
					"Keep a four-week diary of work versus personal use",
				},
			}
		},
	}
}

func donationsRule() Rule {
	return Rule{
		ID:       "DON-001",
		Name:     "Charitable donations not claimed",
		Category: "D9 - Gifts and donations",
		Priority: model.PriorityLow,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if in.Profile.TaxableIncome <= donationIncomeFloor {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, donationKeywords) {
				return nil
			}

			savings := in.Tax.Savings(donationEstimate, in.Profile.TaxableIncome)
			evidence := []string{"no donations recorded this year"}
			score := scored(in, "DON-001", 0.3, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D9 - Gifts and donations",
				Title:    "Claim charitable donations",
				Description: fmt.Sprintf(
					"Donations of $2 or more to registered charities are deductible. Most taxpayers at your income level claim around $%.0f, but none are recorded.",
					donationEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityLow,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D9 gifts and donations",
				TaxImpact:           fmt.Sprintf("A $%.0f donations claim would save about $%.2f.", donationEstimate, savings),
				ActionItems: []string{
					"Search email for donation receipts from registered charities",
				},
			}
		},
	}
}

func taxAgentFeeRule() Rule {
	return Rule{
		ID:       "TAX-001",
		Name:     "Cost of managing tax affairs not claimed",
		Category: "D10 - Cost of managing tax affairs",
		Priority: model.PriorityLow,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if in.Profile.PreviousYearDeductions == nil {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, taxAffairsKeywords) {
				return nil
			}

			savings := in.Tax.Savings(taxAgentFeeEstimate, in.Profile.TaxableIncome)
			evidence := []string{"prior-year return lodged but no tax agent fee recorded"}
			score := scored(in, "TAX-001", 0.3, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Category: "D10 - Cost of managing tax affairs",
				Title:    "Claim last year's tax agent fee",
				Description: fmt.Sprintf(
					"Fees paid to a registered tax agent for preparing last year's return are deductible this year, typically around $%.0f, but none are recorded.",
					taxAgentFeeEstimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityLow,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D10 managing tax affairs",
				TaxImpact:           fmt.Sprintf("A $%.0f claim would save about $%.2f.", taxAgentFeeEstimate, savings),
				ActionItems: []string{
					"Find the invoice from last year's tax agent or software",
				},
			}
		},
	}
}

func superContributionRule() Rule {
	return Rule{
		ID:       "SUP-001",
		Name:     "Personal super contribution opportunity",
		Category: "D12 - Personal superannuation contributions",
		Priority: model.PriorityMedium,
		Relevance: func(profile model.UserProfile, _ model.ExpenseHistory) float64 {
			if profile.TaxableIncome > superIncomeFloor {
				return 0.75
			}
			return 0.2
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			if in.Profile.TaxableIncome <= superIncomeFloor {
				return nil
			}
			if ledger.HasExpensesInCategories(in.Current, superKeywords) {
				return nil
			}

			// Concessional contributions are taxed at 15% inside the fund, so
			// the benefit is the marginal rate spread on the contribution.
			const contribution = 5000.0
			rate := in.Tax.MarginalRate(in.Profile.TaxableIncome)
			spread := rate - 0.15
			if spread < 0 {
				spread = 0
			}
			savings := round2(contribution * spread)

			evidence := []string{
				fmt.Sprintf("taxable income $%.0f exceeds $%.0f with no personal contributions", in.Profile.TaxableIncome, superIncomeFloor),
			}
			score := scored(in, "SUP-001", 0.45, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeBetterMethod,
				Category: "D12 - Personal superannuation contributions",
				Title:    "Make a deductible personal super contribution",
				Description: fmt.Sprintf(
					"At your income level, a $%.0f concessional contribution is taxed at 15%% instead of your %.0f%% marginal rate.",
					contribution, rate*100),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO D12 personal super contributions",
				TaxImpact:           fmt.Sprintf("A $%.0f contribution would save about $%.2f in tax.", contribution, savings),
				ActionItems: []string{
					"Check remaining concessional cap for this year",
					"Lodge a notice of intent to claim with your fund",
				},
			}
		},
	}
}
