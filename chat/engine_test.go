package chat

import (
	"context"
	"errors"
	"testing"

	"vmake/client"
	"vmake/models"
)

// fakeAPI records calls and plays back configured results.
type fakeAPI struct {
	processCalls []models.ProjectSubmission
	storeCalls   []client.StoreProjectRequest
	verifyCalls  []string
	updateCalls  []models.StatusUpdate

	processErr error
	verifyErr  error
	updateErr  error
	storeErr   error
}

func (f *fakeAPI) ProcessProject(ctx context.Context, sub models.ProjectSubmission) (*client.ProcessProjectResponse, error) {
	f.processCalls = append(f.processCalls, sub)
	if f.processErr != nil {
		return nil, f.processErr
	}
	return &client.ProcessProjectResponse{
		Success: true,
		PartsList: &models.PartsList{
			Parts:     []models.Part{{Name: "Arduino Uno", Quantity: 1, Price: 450}},
			TotalCost: 450,
		},
		Analysis: &models.ProjectAnalysis{Feasibility: "HIGH", Complexity: "BEGINNER"},
	}, nil
}

func (f *fakeAPI) StoreProject(ctx context.Context, req client.StoreProjectRequest) (*client.StoreProjectResponse, error) {
	f.storeCalls = append(f.storeCalls, req)
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	return &client.StoreProjectResponse{
		Success: true,
		Data:    client.StoreProjectData{SubmissionID: "sub-123", UpdatedRange: "Sheet1!A2:J2"},
	}, nil
}

func (f *fakeAPI) VerifyPayment(ctx context.Context, transactionID string) error {
	f.verifyCalls = append(f.verifyCalls, transactionID)
	return f.verifyErr
}

func (f *fakeAPI) UpdateProjectStatus(ctx context.Context, upd models.StatusUpdate) error {
	f.updateCalls = append(f.updateCalls, upd)
	return f.updateErr
}

var validAnswers = []string{
	"A",
	"a@b.com",
	"1234567890",
	"P",
	"Ten+ char description",
	"2 weeks",
	"500",
	"X",
}

func answerAll(t *testing.T, e *Engine) {
	t.Helper()
	for i, answer := range validAnswers {
		if err := e.Submit(context.Background(), answer); err != nil {
			t.Fatalf("answer %d (%q) failed: %v", i, answer, err)
		}
	}
}

func TestEngineCollectsAllQuestions(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api)

	if e.Phase() != PhaseCollecting {
		t.Fatalf("expected COLLECTING, got %s", e.Phase())
	}

	answerAll(t, e)

	if len(api.processCalls) != 1 {
		t.Fatalf("expected exactly one process-project call, got %d", len(api.processCalls))
	}
	responses := e.Responses()
	if len(responses) != len(Questions) {
		t.Fatalf("expected %d responses, got %d", len(Questions), len(responses))
	}
	for _, q := range Questions {
		if _, ok := responses[q.ID]; !ok {
			t.Fatalf("missing response for %q", q.ID)
		}
	}
	if e.Phase() != PhaseOptionsShown {
		t.Fatalf("expected OPTIONS_SHOWN after analysis, got %s", e.Phase())
	}
}

func TestEngineRejectsInvalidAnswer(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api)

	if err := e.Submit(context.Background(), "A"); err != nil {
		t.Fatalf("name answer failed: %v", err)
	}

	err := e.Submit(context.Background(), "not-an-email")
	if err == nil {
		t.Fatal("expected invalid email to be rejected")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if e.Phase() != PhaseCollecting {
		t.Fatalf("expected to stay COLLECTING, got %s", e.Phase())
	}
	if q := e.CurrentQuestion(); q == nil || q.ID != "email" {
		t.Fatal("expected to remain on the email question")
	}
}

func TestEngineFullScenario(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api)
	ctx := context.Background()

	answerAll(t, e)

	// process-project carries the collected description.
	got := api.processCalls[0]
	if got.Description != "Ten+ char description" {
		t.Fatalf("unexpected description sent: %q", got.Description)
	}
	if got.Email != "a@b.com" || got.Budget != "500" {
		t.Fatalf("unexpected submission sent: %+v", got)
	}

	// store-project fired with the same submission plus results.
	if len(api.storeCalls) != 1 {
		t.Fatalf("expected one store-project call, got %d", len(api.storeCalls))
	}
	stored := api.storeCalls[0]
	if stored.ProjectSubmission != got {
		t.Fatalf("store-project submission differs: %+v vs %+v", stored.ProjectSubmission, got)
	}
	if stored.PartsList == nil || stored.Analysis == nil {
		t.Fatal("expected store-project to carry results")
	}
	if e.SubmissionID() != "sub-123" {
		t.Fatalf("expected submission id recorded, got %q", e.SubmissionID())
	}

	// Selecting an option shows the payment prompt with its price.
	if err := e.SelectOption("expertBuild"); err != nil {
		t.Fatalf("select option failed: %v", err)
	}
	if e.Phase() != PhaseAwaitingPayment {
		t.Fatalf("expected AWAITING_PAYMENT, got %s", e.Phase())
	}
	messages := e.Messages()
	last := messages[len(messages)-1]
	if last.PaymentFor == nil || last.PaymentFor.Price != 499 {
		t.Fatalf("expected payment prompt with option price, got %+v", last)
	}

	// Payment confirmation drives verify + status update.
	if err := e.Submit(ctx, "abcdef"); err != nil {
		t.Fatalf("payment confirmation failed: %v", err)
	}
	if len(api.verifyCalls) != 1 || api.verifyCalls[0] != "abcdef" {
		t.Fatalf("unexpected verify calls: %v", api.verifyCalls)
	}
	if len(api.updateCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(api.updateCalls))
	}
	upd := api.updateCalls[0]
	if upd.Status != StatusPaymentCompleted {
		t.Fatalf("expected status %s, got %s", StatusPaymentCompleted, upd.Status)
	}
	if upd.ServiceType != "expertBuild" || upd.TransactionID != "abcdef" {
		t.Fatalf("unexpected update payload: %+v", upd)
	}
	if upd.SubmissionID != "sub-123" {
		t.Fatalf("expected update keyed by submission id, got %q", upd.SubmissionID)
	}
	if e.Phase() != PhaseComplete {
		t.Fatalf("expected COMPLETE, got %s", e.Phase())
	}

	// Terminal phase rejects further input.
	if err := e.Submit(ctx, "anything"); !errors.Is(err, ErrConversationComplete) {
		t.Fatalf("expected ErrConversationComplete, got %v", err)
	}
}

func TestEngineAnalysisFailureAllowsRetry(t *testing.T) {
	api := &fakeAPI{processErr: errors.New("model unavailable")}
	e := NewEngine(api)
	ctx := context.Background()

	for _, answer := range validAnswers[:len(validAnswers)-1] {
		if err := e.Submit(ctx, answer); err != nil {
			t.Fatalf("answer failed: %v", err)
		}
	}
	if err := e.Submit(ctx, "X"); err == nil {
		t.Fatal("expected analysis failure to surface")
	}
	if e.Phase() != PhaseCollecting {
		t.Fatalf("expected rollback to COLLECTING, got %s", e.Phase())
	}

	// Resubmitting the final answer retries the analysis.
	api.processErr = nil
	if err := e.Submit(ctx, "X"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if e.Phase() != PhaseOptionsShown {
		t.Fatalf("expected OPTIONS_SHOWN after retry, got %s", e.Phase())
	}
	if len(api.processCalls) != 2 {
		t.Fatalf("expected two process attempts, got %d", len(api.processCalls))
	}
}

func TestEnginePaymentFailureIsRetryable(t *testing.T) {
	api := &fakeAPI{verifyErr: errors.New("invalid transaction")}
	e := NewEngine(api)
	ctx := context.Background()

	answerAll(t, e)
	if err := e.SelectOption("guidanceCall"); err != nil {
		t.Fatalf("select option failed: %v", err)
	}

	if err := e.Submit(ctx, "bad"); err == nil {
		t.Fatal("expected verify failure to surface")
	}
	if e.Phase() != PhaseAwaitingPayment {
		t.Fatalf("expected to stay AWAITING_PAYMENT, got %s", e.Phase())
	}

	api.verifyErr = nil
	if err := e.Submit(ctx, "abcdef"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if e.Phase() != PhaseComplete {
		t.Fatalf("expected COMPLETE, got %s", e.Phase())
	}
}

func TestEngineStoreFailureDoesNotBlock(t *testing.T) {
	api := &fakeAPI{storeErr: errors.New("sheet unavailable")}
	e := NewEngine(api)

	answerAll(t, e)

	if e.Phase() != PhaseOptionsShown {
		t.Fatalf("expected OPTIONS_SHOWN despite store failure, got %s", e.Phase())
	}
	if e.SubmissionID() != "" {
		t.Fatalf("expected no submission id, got %q", e.SubmissionID())
	}
}

func TestEngineUnknownOption(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api)

	answerAll(t, e)

	if err := e.SelectOption("nope"); err == nil {
		t.Fatal("expected unknown option to be rejected")
	}
	if e.Phase() != PhaseOptionsShown {
		t.Fatalf("expected to stay OPTIONS_SHOWN, got %s", e.Phase())
	}
}
