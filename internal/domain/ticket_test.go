package domain

import "testing"

func TestParseCategoryTotal(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Order Status", CategoryOrderStatus},
		{"order status", CategoryOrderStatus},
		{"  Payment Issue  ", CategoryPaymentIssue},
		{"REFUND & RETURN", CategoryRefundReturn},
		{"Technical Bug", CategoryTechnicalBug},
		{"NotARealCategory", CategoryUnknown},
		{"", CategoryUnknown},
		{"Unknown", CategoryUnknown},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCategoriesExcludeSentinel(t *testing.T) {
	for _, c := range Categories() {
		if c == CategoryUnknown {
			t.Fatal("Unknown must not be offered as a classifiable category")
		}
	}
	if len(Categories()) != 7 {
		t.Fatalf("expected 7 classifiable categories, got %d", len(Categories()))
	}
}

func TestParsePriorityDefaultsToMedium(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"Low", PriorityLow},
		{"urgent", PriorityUrgent},
		{" High ", PriorityHigh},
		{"critical", PriorityMedium},
		{"", PriorityMedium},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSentimentDefaultsToNeutral(t *testing.T) {
	tests := []struct {
		in   string
		want Sentiment
	}{
		{"Positive", SentimentPositive},
		{"negative", SentimentNegative},
		{"angry", SentimentNeutral},
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		if got := ParseSentiment(tt.in); got != tt.want {
			t.Errorf("ParseSentiment(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseStatusDefaultsToOpen(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"Resolved", StatusResolved},
		{"closed", StatusClosed},
		{"pending", StatusOpen},
		{"", StatusOpen},
	}
	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSeverityDefaultsToMedium(t *testing.T) {
	tests := []struct {
		in   string
		want AlertSeverity
	}{
		{"High", SeverityHigh},
		{"low", SeverityLow},
		{"MEDIUM", SeverityMedium},
		{"catastrophic", SeverityMedium},
		{"", SeverityMedium},
	}
	for _, tt := range tests {
		if got := ParseSeverity(tt.in); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
