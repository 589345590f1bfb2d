// Package seed generates demo tickets so the service is usable without a
// real intake pipeline. Generated tickets arrive pre-enriched; they stand
// in for tickets the classifier would normally have processed.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

var names = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fiona", "George", "Hannah", "Ian", "Jane"}

var customerProfiles = []string{
	"New customer, first purchase",
	"Loyal customer, >10 purchases",
	"Tech-savvy user, enterprise account",
	"Beginner user, personal account",
	"Influencer, large social following",
	"Student, budget-conscious",
}

type contentPool struct {
	subjects []string
	bodies   []string
}

var poolsByCategory = map[domain.Category]contentPool{
	domain.CategoryOrderStatus: {
		subjects: []string{"Where is my order?", "Order tracking update", "Delivery delayed"},
		bodies: []string{
			"I placed an order #12345 a week ago and the tracking hasn't updated. Can you please check?",
			"My package was supposed to arrive yesterday but it's still not here. The tracking number is XYZ-987.",
			"Could you provide an ETA for my shipment? The order ID is ORD-555.",
		},
	},
	domain.CategoryPaymentIssue: {
		subjects: []string{"Payment failed", "Double charge on my card", "Coupon code not working", "Unrecognized charge"},
		bodies: []string{
			"I tried to place an order but my payment was declined, even though my card has sufficient funds. The error message was 'Payment Authorization Failed'.",
			"My credit card was charged twice for the same order #67890. Please refund the extra charge immediately. This is unacceptable.",
			"The 20% off coupon code 'SAVE20' isn't applying at checkout. It says it's invalid, but it should be active.",
			"I see a weird charge from your company on my bank statement that I don't recognize. The amount is $49.99. Can you explain what this is for?",
		},
	},
	domain.CategoryRefundReturn: {
		subjects: []string{"How to return an item?", "Refund status", "Received wrong item", "Damaged item received"},
		bodies: []string{
			"I'd like to return the product I received, it's not what I expected. What's the process? My order is #RET-001.",
			"I returned my order #ABC-111 two weeks ago but haven't received my refund yet. Can you check the status?",
			"You sent me the wrong color for the t-shirt I ordered. I want to exchange it for the correct one.",
			"I received a damaged item. The box was crushed and the product inside is broken. How can I get a replacement?",
		},
	},
	domain.CategoryTechnicalBug: {
		subjects: []string{"Website not loading", "Can't log in", "App crashes on startup", "Feature not working"},
		bodies: []string{
			"Your website's checkout page is stuck on a loading spinner. I can't complete my purchase. I'm on Chrome version 110.",
			"I keep getting a 'password incorrect' error when I try to log in, but I'm sure it's correct. The password reset link you sent is also broken.",
			"The mobile app on my Android phone crashes every time I open it. I've already reinstalled it and cleared cache. My phone is a Pixel 7.",
			"The 'Export to CSV' feature on the dashboard is not working. When I click it, nothing happens. No file is downloaded.",
		},
	},
	domain.CategoryAccountIssue: {
		subjects: []string{"Locked out of my account", "Forgot my password", "Can't change my email"},
		bodies: []string{
			"My account seems to be locked for some reason. Can you please help me regain access?",
			"I forgot my password and the reset email is not coming through to my inbox.",
			"I'm trying to update my email address in my profile settings, but it gives me an error.",
		},
	},
	domain.CategoryProductInquiry: {
		subjects: []string{"Question about product specs", "Is this compatible?", "Stock availability"},
		bodies: []string{
			"Does the new X-1 model have bluetooth 5.2? The website only mentions bluetooth.",
			"I have a Y-series laptop, will the Z-series docking station work with it?",
			"When will the red color of the smartwatch be back in stock? I'd like to be notified.",
		},
	},
	domain.CategoryFeedback: {
		subjects: []string{"Feature request", "Suggestion for improvement", "Great experience!"},
		bodies: []string{
			"I love your product, but I wish it had a dark mode. It would be much easier on the eyes.",
			"You should consider adding a 'save for later' button on the product pages. I think many users would find it helpful.",
			"Just wanted to say your customer support is amazing. I had an issue and was resolved in minutes. Keep up the great work!",
		},
	},
}

var customerTypes = []domain.CustomerType{
	domain.CustomerTypeNew,
	domain.CustomerTypeReturning,
	domain.CustomerTypePremium,
}

// GenerateTickets produces count pre-enriched demo tickets with dates
// within the last 90 days and roughly 30% resolved by AI.
func GenerateTickets(count int) []domain.Ticket {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	categories := domain.Categories()
	priorities := domain.Priorities()
	sentiments := domain.Sentiments()
	statuses := domain.Statuses()

	tickets := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		category := categories[rng.Intn(len(categories))]
		pool := poolsByCategory[category]
		resolvedBy := domain.ResolvedByAgent
		if rng.Float64() < 0.3 {
			resolvedBy = domain.ResolvedByAI
		}
		tickets = append(tickets, domain.Ticket{
			ID:              fmt.Sprintf("TKT-%06d", 100000+rng.Intn(900000)),
			CustomerName:    names[rng.Intn(len(names))],
			CustomerProfile: customerProfiles[rng.Intn(len(customerProfiles))],
			CustomerType:    customerTypes[rng.Intn(len(customerTypes))],
			Date:            time.Now().AddDate(0, 0, -rng.Intn(90)),
			Content:         pool.subjects[rng.Intn(len(pool.subjects))] + ". " + pool.bodies[rng.Intn(len(pool.bodies))],
			Category:        category,
			Priority:        priorities[rng.Intn(len(priorities))],
			Sentiment:       sentiments[rng.Intn(len(sentiments))],
			Status:          statuses[rng.Intn(len(statuses))],
			Summary:         pool.subjects[rng.Intn(len(pool.subjects))],
			ResolvedBy:      resolvedBy,
		})
	}
	return tickets
}

// ExampleTicket is one canned ticket offered by the "use example" action.
type ExampleTicket struct {
	Title string
	Text  string
}

// ExampleTickets returns the canned inputs for the single-ticket analyzer.
func ExampleTickets() []ExampleTicket {
	return []ExampleTicket{
		{
			Title: "Refund Request",
			Text:  "Hi, I'd like to request a refund for my order #12345. The item arrived damaged and is not usable. I have attached photos. Please let me know the next steps. Thanks.",
		},
		{
			Title: "Delivery Inquiry",
			Text:  "Hello, my tracking number ABC123XYZ shows that my package was delivered, but I haven't received it. Can you please check on the status for me?",
		},
		{
			Title: "Technical Complaint",
			Text:  "I'm having trouble logging into my account. Every time I enter my password, it says 'incorrect credentials', but I am sure it's correct. I've tried resetting it, but I never received the email.",
		},
	}
}
