package chat

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"vmake/models"
)

// ValidationError is a client-local input rejection; it never reaches the
// network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Question is one step of the intake flow. Validate returns nil when the
// input is acceptable.
type Question struct {
	ID       string
	Text     string
	Validate func(input string) error
}

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^[0-9]{10}$`)
	budgetJunk   = regexp.MustCompile(`[^0-9.]`)
	budgetNumber = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)`)
)

func required(field string) func(string) error {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return &ValidationError{Message: field + " is required"}
		}
		return nil
	}
}

// ParseBudget strips currency symbols and separators and parses the longest
// numeric prefix of what remains, so "1.2.3" reads as 1.2.
func ParseBudget(input string) (float64, error) {
	cleaned := budgetJunk.ReplaceAllString(input, "")
	prefix := budgetNumber.FindString(cleaned)
	if prefix == "" {
		return 0, &ValidationError{Message: "Please enter a valid budget amount"}
	}
	num, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, &ValidationError{Message: "Please enter a valid budget amount"}
	}
	return num, nil
}

// Questions is the fixed intake sequence. Order and validation rules match
// the production form.
var Questions = []Question{
	{
		ID:       "name",
		Text:     "👋 Hi! I'm here to help you with your electronics/robotics project. What's your name?",
		Validate: required("Name"),
	},
	{
		ID:   "email",
		Text: "What is your email address?",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return &ValidationError{Message: "Email is required"}
			}
			if !emailRegex.MatchString(input) {
				return &ValidationError{Message: "Please enter a valid email"}
			}
			return nil
		},
	},
	{
		ID:   "phone",
		Text: "What is your phone number?",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return &ValidationError{Message: "Phone number is required"}
			}
			if !phoneRegex.MatchString(input) {
				return &ValidationError{Message: "Please enter a valid 10-digit phone number"}
			}
			return nil
		},
	},
	{
		ID:       "projectName",
		Text:     "What is the name of your project?",
		Validate: required("Project name"),
	},
	{
		ID:   "description",
		Text: "Please provide a detailed description of your project:",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return &ValidationError{Message: "Project description is required"}
			}
			if len(input) < 10 {
				return &ValidationError{Message: "Please provide more details"}
			}
			return nil
		},
	},
	{
		ID:       "timeline",
		Text:     "What's your expected timeline for completing this project?",
		Validate: required("Timeline"),
	},
	{
		ID:   "budget",
		Text: "What's your budget for this project (in INR)?",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return &ValidationError{Message: "Budget is required"}
			}
			_, err := ParseBudget(input)
			return err
		},
	},
	{
		ID:       "location",
		Text:     "Where are you located? This helps us plan logistics:",
		Validate: required("Location"),
	},
}

// Bot reply strings shown between phases.
var BotResponses = struct {
	Analyzing           string
	PartsListGenerated  string
	OptionsPrompt       string
	PaymentPrompt       string
	PaymentConfirmation string
	Completion          string
}{
	Analyzing:           "📊 Analyzing your project requirements and generating recommendations...",
	PartsListGenerated:  "I've analyzed your project and prepared a parts list. Here's what you'll need:",
	OptionsPrompt:       "Would you like to proceed with one of these options?",
	PaymentPrompt:       "Great choice! To proceed, please complete the payment of ₹499 using the UPI details below:",
	PaymentConfirmation: "Payment received! We've recorded your request and our team will be in touch soon.",
	Completion:          "Thank you! Your submission has been recorded. Someone from the VMake team will contact you within 24-48 hours.",
}

// ServiceOptions is the static catalog offered after analysis.
var ServiceOptions = []models.ServiceOption{
	{
		ID:          "expertBuild",
		Text:        "Get started with expert build assistance",
		Price:       499,
		Description: "Our experts will analyze your project in detail and provide a comprehensive build plan.",
	},
	{
		ID:          "guidanceCall",
		Text:        "Schedule a basic guidance call",
		Price:       499,
		Description: "30-minute consultation call with our electronics expert.",
	},
}

// UPIDetails identifies the payee shown with payment instructions.
var UPIDetails = models.UPIDetails{
	ID:   "vmake@upi",
	Name: "VMake Technologies",
}

// StatusPaymentCompleted is written back to the sheet once payment is
// confirmed.
const StatusPaymentCompleted = "PAYMENT_COMPLETED"

// FormatAmount renders a price the way the chat displays it.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("₹%.0f", amount)
}
