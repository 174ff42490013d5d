package rules

import "math"

var inf = math.Inf(1)

func catalog2024() *Catalog {
	return &Catalog{
		Year: 2024,
		Ordinary: map[FilingStatus]BracketTable{
			Single: {
				{11600, 0.10}, {47150, 0.12}, {100525, 0.22}, {191950, 0.24},
				{243725, 0.32}, {609350, 0.35}, {inf, 0.37},
			},
			MarriedFilingJointly: {
				{23200, 0.10}, {94300, 0.12}, {201050, 0.22}, {383900, 0.24},
				{487450, 0.32}, {731200, 0.35}, {inf, 0.37},
			},
			MarriedFilingSeparate: {
				{11600, 0.10}, {47150, 0.12}, {100525, 0.22}, {191950, 0.24},
				{243725, 0.32}, {365600, 0.35}, {inf, 0.37},
			},
			HeadOfHousehold: {
				{16550, 0.10}, {63100, 0.12}, {100500, 0.22}, {191950, 0.24},
				{243700, 0.32}, {609350, 0.35}, {inf, 0.37},
			},
		},
		CapitalGains: map[FilingStatus]BracketTable{
			Single:                {{47025, 0}, {518900, 0.15}, {inf, 0.20}},
			MarriedFilingJointly:  {{94050, 0}, {583750, 0.15}, {inf, 0.20}},
			MarriedFilingSeparate: {{47025, 0}, {291850, 0.15}, {inf, 0.20}},
			HeadOfHousehold:       {{63000, 0}, {551350, 0.15}, {inf, 0.20}},
		},
		StandardDeductions: map[FilingStatus]float64{
			Single:                14600,
			MarriedFilingJointly:  29200,
			MarriedFilingSeparate: 14600,
			HeadOfHousehold:       21900,
		},
		AdditionalDeductionSingle:  1950,
		AdditionalDeductionMarried: 1550,
		ContributionLimits: map[string]ContributionLimit{
			"401k":               {Base: 23000, CatchUp: 7500, CatchUpAge: 50},
			"403b":               {Base: 23000, CatchUp: 7500, CatchUpAge: 50},
			"ira":                {Base: 7000, CatchUp: 1000, CatchUpAge: 50},
			"roth_ira":           {Base: 7000, CatchUp: 1000, CatchUpAge: 50},
			"simple_ira":         {Base: 16000, CatchUp: 3500, CatchUpAge: 50},
			"hsa_individual":     {Base: 4150, CatchUp: 1000, CatchUpAge: 55},
			"hsa_family":         {Base: 8300, CatchUp: 1000, CatchUpAge: 55},
			"fsa_health":         {Base: 3200},
			"fsa_dependent_care": {Base: 5000},
		},
		SSWageBase: 168600,
	}
}

func catalog2025() *Catalog {
	return &Catalog{
		Year: 2025,
		Ordinary: map[FilingStatus]BracketTable{
			Single: {
				{11925, 0.10}, {48475, 0.12}, {103350, 0.22}, {197300, 0.24},
				{250525, 0.32}, {626350, 0.35}, {inf, 0.37},
			},
			MarriedFilingJointly: {
				{23850, 0.10}, {96950, 0.12}, {206700, 0.22}, {394600, 0.24},
				{501050, 0.32}, {751600, 0.35}, {inf, 0.37},
			},
			MarriedFilingSeparate: {
				{11925, 0.10}, {48475, 0.12}, {103350, 0.22}, {197300, 0.24},
				{250525, 0.32}, {375800, 0.35}, {inf, 0.37},
			},
			HeadOfHousehold: {
				{17000, 0.10}, {64850, 0.12}, {103350, 0.22}, {197300, 0.24},
				{250500, 0.32}, {626350, 0.35}, {inf, 0.37},
			},
		},
		CapitalGains: map[FilingStatus]BracketTable{
			Single:                {{48350, 0}, {533400, 0.15}, {inf, 0.20}},
			MarriedFilingJointly:  {{96700, 0}, {600050, 0.15}, {inf, 0.20}},
			MarriedFilingSeparate: {{48350, 0}, {300000, 0.15}, {inf, 0.20}},
			HeadOfHousehold:       {{64750, 0}, {566700, 0.15}, {inf, 0.20}},
		},
		StandardDeductions: map[FilingStatus]float64{
			Single:                15000,
			MarriedFilingJointly:  30000,
			MarriedFilingSeparate: 15000,
			HeadOfHousehold:       22500,
		},
		AdditionalDeductionSingle:  2000,
		AdditionalDeductionMarried: 1600,
		ContributionLimits: map[string]ContributionLimit{
			"401k":               {Base: 23500, CatchUp: 7500, CatchUpAge: 50},
			"403b":               {Base: 23500, CatchUp: 7500, CatchUpAge: 50},
			"ira":                {Base: 7000, CatchUp: 1000, CatchUpAge: 50},
			"roth_ira":           {Base: 7000, CatchUp: 1000, CatchUpAge: 50},
			"simple_ira":         {Base: 16500, CatchUp: 3500, CatchUpAge: 50},
			"hsa_individual":     {Base: 4300, CatchUp: 1000, CatchUpAge: 55},
			"hsa_family":         {Base: 8550, CatchUp: 1000, CatchUpAge: 55},
			"fsa_health":         {Base: 3300},
			"fsa_dependent_care": {Base: 5000},
		},
		SSWageBase: 176100,
	}
}
