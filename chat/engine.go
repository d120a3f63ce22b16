package chat

import (
	"context"
	"errors"
	"fmt"

	"vmake/client"
	"vmake/models"
	"vmake/utils"

	"go.uber.org/zap"
)

// Phase is the conversation state.
type Phase int

const (
	PhaseCollecting Phase = iota
	PhaseAnalyzing
	PhaseOptionsShown
	PhaseAwaitingPayment
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseCollecting:
		return "COLLECTING"
	case PhaseAnalyzing:
		return "ANALYZING"
	case PhaseOptionsShown:
		return "OPTIONS_SHOWN"
	case PhaseAwaitingPayment:
		return "AWAITING_PAYMENT"
	case PhaseComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Sender distinguishes chat entries.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one chat entry. Attachments are for rendering only; the engine
// never reads them back.
type Message struct {
	Sender      Sender
	Text        string
	PartsList   *models.PartsList
	Analysis    *models.ProjectAnalysis
	ShowOptions bool
	PaymentFor  *models.ServiceOption
}

// ErrConversationComplete is returned for input after the terminal phase.
var ErrConversationComplete = errors.New("conversation is complete")

// ProjectAPI is the slice of the backend the engine needs.
type ProjectAPI interface {
	ProcessProject(ctx context.Context, sub models.ProjectSubmission) (*client.ProcessProjectResponse, error)
	StoreProject(ctx context.Context, req client.StoreProjectRequest) (*client.StoreProjectResponse, error)
	VerifyPayment(ctx context.Context, transactionID string) error
	UpdateProjectStatus(ctx context.Context, upd models.StatusUpdate) error
}

// Engine drives one user's conversation: sequential question collection, AI
// analysis, service selection, and payment confirmation. It is owned by a
// single session and is not safe for concurrent use.
type Engine struct {
	api ProjectAPI

	phase         Phase
	questionIndex int
	responses     map[string]string
	messages      []Message

	partsList    *models.PartsList
	analysis     *models.ProjectAnalysis
	selected     *models.ServiceOption
	submissionID string
}

func NewEngine(api ProjectAPI) *Engine {
	e := &Engine{
		api:       api,
		phase:     PhaseCollecting,
		responses: make(map[string]string),
	}
	e.appendBot(Message{Text: Questions[0].Text})
	return e
}

func (e *Engine) Phase() Phase { return e.phase }

// Messages returns the append-only chat log.
func (e *Engine) Messages() []Message {
	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Responses returns the answers recorded so far, keyed by question id.
func (e *Engine) Responses() map[string]string {
	out := make(map[string]string, len(e.responses))
	for k, v := range e.responses {
		out[k] = v
	}
	return out
}

// CurrentQuestion returns the question awaiting an answer, or nil outside the
// collection phase.
func (e *Engine) CurrentQuestion() *Question {
	if e.phase != PhaseCollecting {
		return nil
	}
	return &Questions[e.questionIndex]
}

func (e *Engine) SubmissionID() string { return e.submissionID }

func (e *Engine) SelectedOption() *models.ServiceOption { return e.selected }

// Submit feeds one line of user input to the engine. While collecting it is
// the answer to the current question; while awaiting payment it is treated as
// a transaction identifier.
func (e *Engine) Submit(ctx context.Context, input string) error {
	switch e.phase {
	case PhaseComplete:
		return ErrConversationComplete
	case PhaseAnalyzing:
		return &ValidationError{Message: "Analysis is in progress, please wait"}
	case PhaseOptionsShown:
		return &ValidationError{Message: "Please choose one of the offered options to continue"}
	case PhaseAwaitingPayment:
		return e.confirmPayment(ctx, input)
	default:
		return e.collect(ctx, input)
	}
}

func (e *Engine) collect(ctx context.Context, input string) error {
	question := Questions[e.questionIndex]
	if err := question.Validate(input); err != nil {
		return err
	}

	e.messages = append(e.messages, Message{Sender: SenderUser, Text: input})
	e.responses[question.ID] = input

	if e.questionIndex < len(Questions)-1 {
		e.questionIndex++
		e.appendBot(Message{Text: Questions[e.questionIndex].Text})
		return nil
	}
	return e.analyze(ctx)
}

// analyze runs process-project over the accumulated answers. On failure the
// engine returns to COLLECTING holding the final question, so the next input
// re-answers it and re-triggers analysis.
func (e *Engine) analyze(ctx context.Context) error {
	e.phase = PhaseAnalyzing
	e.appendBot(Message{Text: BotResponses.Analyzing})

	sub := e.submission()
	resp, err := e.api.ProcessProject(ctx, sub)
	if err != nil {
		e.phase = PhaseCollecting
		return fmt.Errorf("failed to process your project, please try again: %w", err)
	}

	e.partsList = resp.PartsList
	e.analysis = resp.Analysis
	e.appendBot(Message{
		Text:      BotResponses.PartsListGenerated,
		PartsList: resp.PartsList,
		Analysis:  resp.Analysis,
	})
	e.appendBot(Message{Text: BotResponses.OptionsPrompt, ShowOptions: true})
	e.phase = PhaseOptionsShown

	e.storeProject(ctx, sub)
	return nil
}

// storeProject persists the submission with its results. Failures are logged
// and never block the conversation.
func (e *Engine) storeProject(ctx context.Context, sub models.ProjectSubmission) {
	logger := utils.GetLogger()

	resp, err := e.api.StoreProject(ctx, client.StoreProjectRequest{
		ProjectSubmission: sub,
		PartsList:         e.partsList,
		Analysis:          e.analysis,
	})
	if err != nil {
		logger.Warn("Failed to store project", zap.Error(err))
		return
	}
	e.submissionID = resp.Data.SubmissionID
}

// SelectOption records the chosen service and shows payment instructions.
func (e *Engine) SelectOption(optionID string) error {
	if e.phase != PhaseOptionsShown {
		return &ValidationError{Message: "No options to select right now"}
	}

	for i := range ServiceOptions {
		if ServiceOptions[i].ID == optionID {
			option := ServiceOptions[i]
			e.selected = &option
			e.messages = append(e.messages, Message{Sender: SenderUser, Text: "You've selected: " + option.Text})
			e.appendBot(Message{Text: BotResponses.PaymentPrompt, PaymentFor: &option})
			e.phase = PhaseAwaitingPayment
			return nil
		}
	}
	return &ValidationError{Message: "Unknown service option: " + optionID}
}

func (e *Engine) confirmPayment(ctx context.Context, transactionID string) error {
	if err := e.api.VerifyPayment(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to verify payment, please try again or contact support: %w", err)
	}
	e.appendBot(Message{Text: BotResponses.PaymentConfirmation})

	upd := models.StatusUpdate{
		ProjectSubmission: e.submission(),
		SubmissionID:      e.submissionID,
		ServiceType:       e.selected.ID,
		TransactionID:     transactionID,
		Status:            StatusPaymentCompleted,
	}
	if err := e.api.UpdateProjectStatus(ctx, upd); err != nil {
		return fmt.Errorf("failed to record payment status, please try again: %w", err)
	}

	e.appendBot(Message{Text: BotResponses.Completion})
	e.phase = PhaseComplete
	return nil
}

// submission assembles the typed submission from recorded answers.
func (e *Engine) submission() models.ProjectSubmission {
	return models.ProjectSubmission{
		Name:        e.responses["name"],
		Email:       e.responses["email"],
		Phone:       e.responses["phone"],
		ProjectName: e.responses["projectName"],
		Description: e.responses["description"],
		Timeline:    e.responses["timeline"],
		Budget:      e.responses["budget"],
		Location:    e.responses["location"],
	}
}

func (e *Engine) appendBot(msg Message) {
	msg.Sender = SenderBot
	e.messages = append(e.messages, msg)
}
