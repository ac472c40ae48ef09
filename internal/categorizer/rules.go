// Package categorizer assigns spend categories to transaction text.
//
// The Resolver walks an ordered RuleSet of keyword lists and always yields a
// category. GeminiClassifier is an optional LLM-backed classifier for messages
// no template recognised.
package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"
)

// RuleSet is an ordered list of categories and their keywords. The last rule
// is the catch-all and carries no keywords.
type RuleSet struct {
	rules []models.CategoryConfig
}

// NewRuleSet validates rules and returns an immutable RuleSet.
// Keywords are lowercased and trimmed; empty keywords are dropped.
func NewRuleSet(rules []models.CategoryConfig) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, &parsererror.InvalidRuleSetError{Reason: "no categories defined"}
	}

	seen := make(map[string]struct{}, len(rules))
	normalized := make([]models.CategoryConfig, 0, len(rules))

	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return nil, &parsererror.InvalidRuleSetError{Reason: fmt.Sprintf("category at position %d has no name", i)}
		}
		if _, dup := seen[name]; dup {
			return nil, &parsererror.InvalidRuleSetError{Reason: fmt.Sprintf("duplicate category %q", name)}
		}
		seen[name] = struct{}{}

		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}

		last := i == len(rules)-1
		if len(keywords) == 0 && !last {
			return nil, &parsererror.InvalidRuleSetError{Reason: fmt.Sprintf("catch-all category %q must be last", name)}
		}
		if len(keywords) > 0 && last {
			return nil, &parsererror.InvalidRuleSetError{Reason: fmt.Sprintf("last category %q must be a catch-all without keywords", name)}
		}

		normalized = append(normalized, models.CategoryConfig{Name: name, Keywords: keywords})
	}

	return &RuleSet{rules: normalized}, nil
}

// Rules returns a copy of the rules in order.
func (rs *RuleSet) Rules() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = models.CategoryConfig{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// CatchAll returns the name of the catch-all category.
func (rs *RuleSet) CatchAll() string {
	return rs.rules[len(rs.rules)-1].Name
}

// Names returns the category names in order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		names[i] = r.Name
	}
	return names
}

// DefaultRuleSet returns the built-in rule set tuned for Indian consumer
// spending. Order matters: a counterparty matching several lists gets the
// earliest category.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(defaultRules())
	if err != nil {
		panic(fmt.Sprintf("default rule set is invalid: %v", err))
	}
	return rs
}

func defaultRules() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategoryFoodDining, Keywords: []string{
			"restaurant", "cafe", "coffee", "doordash", "uber eats", "grubhub", "zomato", "swiggy",
			"mcdonald", "starbucks", "chipotle", "food", "grocery", "bakery", "pizz", "taco", "burger",
			"diner", "meal", "eatery", "buffet", "subway", "blinkit", "instamart", "bigbasket", "eatclub",
			"faasos", "domino", "kfc", "haldiram", "biryani", "freshmenu",
		}},
		{Name: models.CategoryShopping, Keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "snapdeal", "shop", "store", "market", "purchase",
			"retail", "clothing", "apparel", "boutique", "lifestyle", "pantaloons", "reliance trends",
			"dmart", "big bazaar", "tatacliq", "nykaa", "meesho", "shopclues", "paytm mall", "sweets",
		}},
		{Name: models.CategoryTransport, Keywords: []string{
			"uber", "ola", "lyft", "taxi", "cab", "transit", "metro", "bus", "train", "transport",
			"autorickshaw", "rickshaw", "toll", "parking", "grab", "rapido", "bounce", "shuttl", "blablacar",
		}},
		{Name: models.CategoryFuel, Keywords: []string{
			"fuel", "petrol", "diesel", "gas station", "shell", "bp", "hpcl", "ioc", "bharat petroleum",
			"indian oil", "refuel", "cng", "pump", "filling station", "essar", "servo",
		}},
		{Name: models.CategoryBills, Keywords: []string{
			"electric", "electricity", "water bill", "sewer", "energy", "internet", "wifi", "cable", "tv",
			"dth", "phone", "mobile", "cell", "recharge", "airtel", "jio", "vi", "bsnl", "billdesk", "bill",
			"payment", "postpaid", "prepaid", "broadband", "tata sky", "sun direct", "dishtv",
		}},
		{Name: models.CategoryEntertainment, Keywords: []string{
			"netflix", "prime video", "hotstar", "hulu", "disney+", "spotify", "apple music",
			"youtube premium", "pvr", "inox", "bookmyshow", "movie", "cinema", "theater", "concert",
			"game", "gaming", "show", "ticket", "zee5", "sony liv", "jio cinema",
		}},
		{Name: models.CategoryTravel, Keywords: []string{
			"hotel", "booking", "flight", "airline", "airport", "trip", "travel", "makemytrip", "yatra",
			"cleartrip", "goibibo", "expedia", "airbnb", "stay", "resort", "oyo", "treebo", "agoda",
			"easemytrip", "ibibo",
		}},
		{Name: models.CategoryHealth, Keywords: []string{
			"pharmacy", "medical", "clinic", "hospital", "doctor", "health", "fitness", "gym", "workout",
			"medlife", "netmeds", "1mg", "practo", "apollo", "pathology", "diagnostics", "medicine", "lab",
			"healthcare", "dentist", "vision", "wellness", "test",
		}},
		{Name: models.CategoryEducation, Keywords: []string{
			"tuition", "school", "college", "university", "course", "class", "coaching", "exam", "book",
			"textbook", "student", "fee", "scholarship", "nptel", "byjus", "unacademy", "udemy", "coursera",
			"edx", "upgrad", "khan academy",
		}},
		{Name: models.CategorySubscription, Keywords: []string{
			"subscription", "monthly", "annual", "membership", "renewal", "auto-debit", "recur", "plan",
			"upgrade", "spotify", "netflix", "prime", "cloud", "storage", "licence", "app store", "play store",
		}},
		{Name: models.CategoryInvestment, Keywords: []string{
			"groww", "zerodha", "upstox", "angel one", "icici direct", "hdfc securities", "mutual fund",
			"sip", "nifty", "stock", "equity", "demat", "coin", "paytm money", "etmoney", "fund",
			"investment", "sharekhan", "mf",
		}},
		{Name: models.CategoryInsurance, Keywords: []string{
			"insurance", "policy", "premium", "lic", "sbi life", "hdfc life", "icici prudential",
			"new india", "renewal", "health cover", "term plan", "car insurance", "bike insurance",
			"life insurance",
		}},
		{Name: models.CategoryLoan, Keywords: []string{
			"emi", "loan", "interest", "principal", "nbfc", "capital", "finance", "bajaj", "moneyview",
			"paylater", "creditline", "paytm postpaid", "lazy pay", "kreditbee", "slice", "zest money",
			"earlysalary",
		}},
		{Name: models.CategoryTransfer, Keywords: []string{
			"upi", "imps", "neft", "rtgs", "transferred", "credited", "debited", "to", "from", "account",
			"a/c", "pay", "sent", "received", "bank", "beneficiary", "payment", "payout", "payee",
		}},
		{Name: models.CategoryMiscellaneous},
	}
}
