/*
Package factory provides compliance-data and chart-of-accounts construction.

PURPOSE:
  Converts YAML compliance packs into payroll.Tables objects. This enables
  tax-table updates without code changes - when the statutory tables change,
  ops ships a new YAML pack, and the engine is rebound to freshly loaded
  tables. Built-in presets cover Mexico's 2024 monthly tables so the server
  runs out of the box.

WHY YAML?
  - Compliance data is maintained by non-developers
  - Version control for statutory tables, keyed by country + effective date
  - Amounts are quoted strings, parsed as exact decimals (never floats)

PACK SCHEMA:
  country: MX
  effective_from: 2024-01-01
  isr_monthly:
    - {lower: "0.01", upper: "746.04", fixed_quota: "0.00", rate: "0.0192"}
    ...
    - {lower: "375975.62", fixed_quota: "117912.32", rate: "0.35"}  # open top
  contributions:
    - {code: imss_employee, name: IMSS employee quota, rate: "0.02375", cap: "1959.71"}
  severance:
    vacation_days:
      - {min_years: 1, days: 12}
    vacation_bonus_rate: "0.25"
    christmas_bonus_days: 15
    ...

USAGE:
  tables, err := factory.LoadTables(packBytes)
  calc, err := payroll.NewCalculator(tables)

SEE ALSO:
  - payroll/types.go: The Tables structure built here
  - chart.go: Default chart of accounts
*/
package factory

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/huntred/payroll-engine/ledger"
	"github.com/huntred/payroll-engine/payroll"
)

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

type packYAML struct {
	Country       string             `yaml:"country"`
	EffectiveFrom string             `yaml:"effective_from"`
	ISRMonthly    []bracketYAML      `yaml:"isr_monthly"`
	Contributions []contributionYAML `yaml:"contributions"`
	Severance     severanceYAML      `yaml:"severance"`
}

type bracketYAML struct {
	Lower      string `yaml:"lower"`
	Upper      string `yaml:"upper"` // empty = open-ended (last bracket only)
	FixedQuota string `yaml:"fixed_quota"`
	Rate       string `yaml:"rate"`
}

type contributionYAML struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Rate  string `yaml:"rate"`
	Floor string `yaml:"floor"` // empty = no floor
	Cap   string `yaml:"cap"`   // empty = no cap
}

type severanceYAML struct {
	VacationDays []struct {
		MinYears int `yaml:"min_years"`
		Days     int `yaml:"days"`
	} `yaml:"vacation_days"`
	VacationBonusRate           string `yaml:"vacation_bonus_rate"`
	ChristmasBonusDays          int    `yaml:"christmas_bonus_days"`
	SavingsFundRate             string `yaml:"savings_fund_rate"`
	SeniorityPremiumDaysPerYear int    `yaml:"seniority_premium_days_per_year"`
	ConstitutionalBaseDays      int    `yaml:"constitutional_base_days"`
	ConstitutionalDaysPerYear   int    `yaml:"constitutional_days_per_year"`
	DailySalaryDivisor          string `yaml:"daily_salary_divisor"`
}

// =============================================================================
// LOADING
// =============================================================================

// LoadTables parses a YAML compliance pack and validates the result.
func LoadTables(data []byte) (*payroll.Tables, error) {
	var pack packYAML
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse compliance pack: %w", err)
	}

	effectiveFrom, err := time.Parse("2006-01-02", pack.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("effective_from: %w", err)
	}

	tables := &payroll.Tables{
		Country:       pack.Country,
		EffectiveFrom: effectiveFrom,
		ISRMonthly: &payroll.TaxBracketTable{
			Name:          pack.Country + " ISR monthly",
			EffectiveFrom: effectiveFrom,
		},
	}

	for i, b := range pack.ISRMonthly {
		bracket := payroll.TaxBracket{}
		if bracket.Lower, err = parseDecimal(b.Lower, "lower"); err != nil {
			return nil, fmt.Errorf("isr_monthly[%d]: %w", i, err)
		}
		if bracket.FixedQuota, err = parseDecimal(b.FixedQuota, "fixed_quota"); err != nil {
			return nil, fmt.Errorf("isr_monthly[%d]: %w", i, err)
		}
		if bracket.Rate, err = parseDecimal(b.Rate, "rate"); err != nil {
			return nil, fmt.Errorf("isr_monthly[%d]: %w", i, err)
		}
		if b.Upper != "" {
			upper, err := parseDecimal(b.Upper, "upper")
			if err != nil {
				return nil, fmt.Errorf("isr_monthly[%d]: %w", i, err)
			}
			bracket.Upper = &upper
		}
		tables.ISRMonthly.Brackets = append(tables.ISRMonthly.Brackets, bracket)
	}

	for i, c := range pack.Contributions {
		rule := payroll.ContributionRule{Code: c.Code, Name: c.Name}
		if rule.Rate, err = parseDecimal(c.Rate, "rate"); err != nil {
			return nil, fmt.Errorf("contributions[%d]: %w", i, err)
		}
		if c.Floor != "" {
			floor, err := parseMoney(c.Floor, "floor")
			if err != nil {
				return nil, fmt.Errorf("contributions[%d]: %w", i, err)
			}
			rule.Floor = &floor
		}
		if c.Cap != "" {
			capAmount, err := parseMoney(c.Cap, "cap")
			if err != nil {
				return nil, fmt.Errorf("contributions[%d]: %w", i, err)
			}
			rule.Cap = &capAmount
		}
		tables.Contributions = append(tables.Contributions, rule)
	}

	policy := payroll.SeverancePolicy{
		ChristmasBonusDays:          pack.Severance.ChristmasBonusDays,
		SeniorityPremiumDaysPerYear: pack.Severance.SeniorityPremiumDaysPerYear,
		ConstitutionalBaseDays:      pack.Severance.ConstitutionalBaseDays,
		ConstitutionalDaysPerYear:   pack.Severance.ConstitutionalDaysPerYear,
	}
	for _, tier := range pack.Severance.VacationDays {
		policy.VacationTable = append(policy.VacationTable, payroll.VacationTier{
			MinYears: tier.MinYears,
			Days:     tier.Days,
		})
	}
	if policy.VacationBonusRate, err = parseDecimal(pack.Severance.VacationBonusRate, "vacation_bonus_rate"); err != nil {
		return nil, fmt.Errorf("severance: %w", err)
	}
	if pack.Severance.SavingsFundRate != "" {
		if policy.SavingsFundRate, err = parseDecimal(pack.Severance.SavingsFundRate, "savings_fund_rate"); err != nil {
			return nil, fmt.Errorf("severance: %w", err)
		}
	}
	if policy.DailySalaryDivisor, err = parseDecimal(pack.Severance.DailySalaryDivisor, "daily_salary_divisor"); err != nil {
		return nil, fmt.Errorf("severance: %w", err)
	}
	tables.Severance = policy

	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// LoadTablesFile reads and parses a compliance pack from disk.
func LoadTablesFile(path string) (*payroll.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadTables(data)
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%s: missing value", field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func parseMoney(s, field string) (ledger.Money, error) {
	d, err := parseDecimal(s, field)
	if err != nil {
		return ledger.Zero, err
	}
	return ledger.MoneyFromDecimal(d), nil
}

// =============================================================================
// BUILT-IN PRESETS - Mexico 2024
// =============================================================================

// MexicoMonthly2024 returns the MX monthly compliance tables effective
// 2024-01-01: the SAT ISR monthly withholding table, the IMSS employee
// quota (capped), and the LFT severance constants (post-2023 vacation
// reform tiers).
func MexicoMonthly2024() *payroll.Tables {
	brackets := []struct{ lower, upper, quota, rate string }{
		{"0.01", "746.04", "0.00", "0.0192"},
		{"746.05", "6332.05", "14.32", "0.0640"},
		{"6332.06", "11128.01", "371.83", "0.1088"},
		{"11128.02", "12935.82", "893.63", "0.1600"},
		{"12935.83", "15487.71", "1182.88", "0.1792"},
		{"15487.72", "31236.49", "1640.18", "0.2136"},
		{"31236.50", "49233.00", "5004.12", "0.2352"},
		{"49233.01", "93993.90", "9236.89", "0.3000"},
		{"93993.91", "125325.20", "22665.17", "0.3200"},
		{"125325.21", "375975.61", "32691.18", "0.3400"},
		{"375975.62", "", "117912.32", "0.3500"},
	}

	table := &payroll.TaxBracketTable{
		Name:          "MX ISR monthly",
		EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, b := range brackets {
		bracket := payroll.TaxBracket{
			Lower:      decimal.RequireFromString(b.lower),
			FixedQuota: decimal.RequireFromString(b.quota),
			Rate:       decimal.RequireFromString(b.rate),
		}
		if b.upper != "" {
			upper := decimal.RequireFromString(b.upper)
			bracket.Upper = &upper
		}
		table.Brackets = append(table.Brackets, bracket)
	}

	imssCap := ledger.MustMoney("1959.71") // 25x UMA contribution ceiling
	return &payroll.Tables{
		Country:       "MX",
		EffectiveFrom: table.EffectiveFrom,
		ISRMonthly:    table,
		Contributions: []payroll.ContributionRule{
			{
				Code: "imss_employee",
				Name: "IMSS employee quota",
				Rate: decimal.RequireFromString("0.02375"),
				Cap:  &imssCap,
			},
		},
		Severance: payroll.SeverancePolicy{
			VacationTable: []payroll.VacationTier{
				{MinYears: 1, Days: 12},
				{MinYears: 2, Days: 14},
				{MinYears: 3, Days: 16},
				{MinYears: 4, Days: 18},
				{MinYears: 5, Days: 20},
				{MinYears: 6, Days: 22},
				{MinYears: 11, Days: 24},
				{MinYears: 16, Days: 26},
				{MinYears: 21, Days: 28},
				{MinYears: 26, Days: 30},
			},
			VacationBonusRate:           decimal.RequireFromString("0.25"),
			ChristmasBonusDays:          15,
			SavingsFundRate:             decimal.Zero,
			SeniorityPremiumDaysPerYear: 12,
			ConstitutionalBaseDays:      90,
			ConstitutionalDaysPerYear:   20,
			DailySalaryDivisor:          decimal.RequireFromString("30.4"),
		},
	}
}
