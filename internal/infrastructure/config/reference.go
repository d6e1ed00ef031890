package config

// ReferenceData holds the static payloads served as MCP resources.
// Struct fields keep the rendered key order stable.
type ReferenceData struct {
	Guidelines FinancialGuidelines
	Limits     TransactionLimits
}

// FinancialGuidelines describe how to grade a user's financial health
type FinancialGuidelines struct {
	RiskAssessment      RiskAssessment      `json:"risk_assessment"`
	TransactionPatterns TransactionPatterns `json:"transaction_patterns"`
	BalanceThresholds   BalanceThresholds   `json:"balance_thresholds"`
	Recommendations     Recommendations     `json:"recommendations"`
}

// RiskAssessment gives the criteria for each risk tier
type RiskAssessment struct {
	LowRisk    string `json:"low_risk"`
	MediumRisk string `json:"medium_risk"`
	HighRisk   string `json:"high_risk"`
}

// TransactionPatterns classifies activity by success rate and volume
type TransactionPatterns struct {
	Healthy    string `json:"healthy"`
	Concerning string `json:"concerning"`
	Suspicious string `json:"suspicious"`
}

// BalanceThresholds maps balance bands to a health grade
type BalanceThresholds struct {
	Excellent string `json:"excellent"`
	Good      string `json:"good"`
	Fair      string `json:"fair"`
	Poor      string `json:"poor"`
}

// Recommendations holds the advice attached to common warning signs
type Recommendations struct {
	LowBalance        string `json:"low_balance"`
	HighFailures      string `json:"high_failures"`
	IrregularActivity string `json:"irregular_activity"`
}

// TransactionLimits describe per-type, per-currency and regional business rules
type TransactionLimits struct {
	DailyLimits     DailyLimits     `json:"daily_limits"`
	CurrencySupport CurrencySupport `json:"currency_support"`
	RegionalRules   RegionalRules   `json:"regional_rules"`
	BusinessHours   BusinessHours   `json:"business_hours"`
}

// DailyLimits caps the daily total per transaction type
type DailyLimits struct {
	SendMoney  string `json:"SEND_MONEY"`
	FundWallet string `json:"FUND_WALLET"`
	Withdraw   string `json:"WITHDRAW"`
}

// AmountRange is an inclusive per-transaction range in whole currency units
type AmountRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// CurrencySupport lists the per-transaction amount range of each supported currency
type CurrencySupport struct {
	USD AmountRange `json:"USD"`
	EUR AmountRange `json:"EUR"`
	CAD AmountRange `json:"CAD"`
	NGN AmountRange `json:"NGN"`
}

// RegionalRules holds the compliance notes per country code
type RegionalRules struct {
	US string `json:"US"`
	CA string `json:"CA"`
	GB string `json:"GB"`
	NG string `json:"NG"`
}

// BusinessHours tells how quickly each kind of transaction is processed
type BusinessHours struct {
	Standard       string `json:"standard"`
	ReviewRequired string `json:"review_required"`
	Instant        string `json:"instant"`
}

// DefaultReferenceData builds the reference payloads. Call once at startup and share the result read-only.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Guidelines: FinancialGuidelines{
			RiskAssessment: RiskAssessment{
				LowRisk:    "Balance > $1000, Success rate > 90%, Failed transactions < 5%",
				MediumRisk: "Balance $500-$1000, Success rate 70-90%, Failed transactions 5-15%",
				HighRisk:   "Balance < $500, Success rate < 70%, Failed transactions > 15%",
			},
			TransactionPatterns: TransactionPatterns{
				Healthy:    "Regular funding, moderate spending, low failure rate",
				Concerning: "Irregular funding, high withdrawal rate, frequent failures",
				Suspicious: "Large sudden transactions, unusual patterns, high failure rate",
			},
			BalanceThresholds: BalanceThresholds{
				Excellent: "> $2000",
				Good:      "$1000 - $2000",
				Fair:      "$500 - $1000",
				Poor:      "< $500",
			},
			Recommendations: Recommendations{
				LowBalance:        "Encourage regular funding, set up automatic deposits",
				HighFailures:      "Review transaction methods, verify account details",
				IrregularActivity: "Monitor for fraud, suggest spending limits",
			},
		},
		Limits: TransactionLimits{
			DailyLimits: DailyLimits{
				SendMoney:  "$5000 USD equivalent",
				FundWallet: "$10000 USD equivalent",
				Withdraw:   "$3000 USD equivalent",
			},
			CurrencySupport: CurrencySupport{
				USD: AmountRange{Min: 1, Max: 50000},
				EUR: AmountRange{Min: 1, Max: 45000},
				CAD: AmountRange{Min: 1, Max: 65000},
				NGN: AmountRange{Min: 500, Max: 20000000},
			},
			RegionalRules: RegionalRules{
				US: "KYC required for transactions > $3000",
				CA: "Enhanced verification for > $5000 CAD",
				GB: "FCA compliance required for > £2500",
				NG: "CBN regulations apply for > ₦1,000,000",
			},
			BusinessHours: BusinessHours{
				Standard:       "24/7 for amounts < $1000",
				ReviewRequired: "Business hours only for amounts > $10000",
				Instant:        "Immediate processing for verified users",
			},
		},
	}
}
