package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-swap/internal/domain/pairing"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

func twoUsers() (user.User, user.User) {
	a := user.User{
		ID:          uuid.New(),
		Username:    "alice",
		FullName:    "Alice",
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	}
	b := user.User{
		ID:          uuid.New(),
		Username:    "bob",
		FullName:    "Bob",
		TeachSkills: []string{"Spanish"},
		LearnSkills: []string{"Python"},
	}
	return a, b
}

func TestPairing_CreateRequest(t *testing.T) {
	a, b := twoUsers()
	notifier := &mockNotifier{}
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), notifier)

	item, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.Status != pairing.StatusPending {
		t.Fatalf("expected pending, got %s", item.Status)
	}
	if item.Requester.Username != "alice" || item.Recipient.Username != "bob" {
		t.Fatalf("unexpected user summaries: %+v", item)
	}
	if got := notifier.sentTo(b.ID); len(got) != 1 || got[0].event != EventRequestReceived {
		t.Fatalf("expected one notification to recipient, got %v", got)
	}
}

func TestPairing_CreateRequest_SelfRequest(t *testing.T) {
	a, b := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), nil)

	_, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: a.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
}

func TestPairing_CreateRequest_RecipientMissing(t *testing.T) {
	a, _ := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a), nil)

	_, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: uuid.New(),
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if !errors.Is(err, ErrRecipientNotFound) {
		t.Fatalf("expected ErrRecipientNotFound, got %v", err)
	}
}

func TestPairing_CreateRequest_PendingUniqueness(t *testing.T) {
	a, b := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), nil)

	in := CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	}
	if _, err := uc.CreateRequest(context.Background(), a.ID, in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := uc.CreateRequest(context.Background(), a.ID, in); !errors.Is(err, ErrPendingExists) {
		t.Fatalf("expected ErrPendingExists, got %v", err)
	}
}

func TestPairing_CreateRequest_EmptySkills(t *testing.T) {
	a, b := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), nil)

	_, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: nil,
		LearnSkills: []string{"Spanish"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPairing_UpdateStatus_TransitionGuards(t *testing.T) {
	a, b := twoUsers()
	repo := newMockPairingRepo()
	uc := NewPairingUsecase(repo, newMockUserRepo(a, b), nil)

	item, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Requester may not accept or decline.
	if _, err := uc.UpdateStatus(context.Background(), a.ID, item.ID, "accepted"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for requester accept, got %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), a.ID, item.ID, "declined"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for requester decline, got %v", err)
	}
	// Recipient may not cancel.
	if _, err := uc.UpdateStatus(context.Background(), b.ID, item.ID, "cancelled"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for recipient cancel, got %v", err)
	}

	// Status untouched by the rejected attempts.
	stored, err := repo.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != pairing.StatusPending {
		t.Fatalf("expected status unchanged, got %s", stored.Status)
	}
}

func TestPairing_UpdateStatus_AcceptOnce(t *testing.T) {
	a, b := twoUsers()
	notifier := &mockNotifier{}
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), notifier)

	item, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	accepted, err := uc.UpdateStatus(context.Background(), b.ID, item.ID, "accepted")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != pairing.StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if got := notifier.sentTo(a.ID); len(got) != 1 || got[0].event != EventRequestResolved {
		t.Fatalf("expected resolution notification to requester, got %v", got)
	}

	// A second terminal transition loses.
	if _, err := uc.UpdateStatus(context.Background(), b.ID, item.ID, "declined"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestPairing_UpdateStatus_InvalidStatus(t *testing.T) {
	a, b := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), nil)

	item, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, bad := range []string{"pending", "done", ""} {
		if _, err := uc.UpdateStatus(context.Background(), b.ID, item.ID, bad); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus for %q, got %v", bad, err)
		}
	}
}

func TestPairing_ListRequests_Filters(t *testing.T) {
	a, b := twoUsers()
	uc := NewPairingUsecase(newMockPairingRepo(), newMockUserRepo(a, b), nil)

	if _, err := uc.CreateRequest(context.Background(), a.ID, CreateRequestInput{
		RecipientID: b.ID,
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sent, err := uc.ListRequests(context.Background(), a.ID, ListRequestsInput{Type: "sent"})
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected 1 sent request, got %d", len(sent))
	}

	recvForA, err := uc.ListRequests(context.Background(), a.ID, ListRequestsInput{Type: "received"})
	if err != nil {
		t.Fatalf("list received failed: %v", err)
	}
	if len(recvForA) != 0 {
		t.Fatalf("expected 0 received for requester, got %d", len(recvForA))
	}

	if _, err := uc.ListRequests(context.Background(), a.ID, ListRequestsInput{Status: "bogus"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := uc.ListRequests(context.Background(), a.ID, ListRequestsInput{Type: "bogus"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
