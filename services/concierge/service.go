package concierge

import (
	"context"
	"errors"
	"fmt"

	"growthquest/models"
	"growthquest/services/checkout"
	"growthquest/services/inventory"
)

// Service processes concierge messages. Replies are canned and intent
// handling is deterministic; the only state is the per-user context kept in
// Redis.
type Service interface {
	ProcessMessage(ctx context.Context, req models.ConciergeRequest) (*models.ConciergeResponse, error)
}

// DefaultService implements Service on top of the checkout resolver.
type DefaultService struct {
	CtxStore   ContextStore
	Resolver   checkout.Resolver
	Classifier *Classifier
}

func NewDefaultService(ctxStore ContextStore, resolver checkout.Resolver, classifier *Classifier) *DefaultService {
	return &DefaultService{CtxStore: ctxStore, Resolver: resolver, Classifier: classifier}
}

func (s *DefaultService) ProcessMessage(ctx context.Context, req models.ConciergeRequest) (*models.ConciergeResponse, error) {
	cc, err := s.CtxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load concierge context: %w", err)
	}

	intent := s.Classifier.Classify(req.Text)

	var resp *models.ConciergeResponse
	switch it := intent.(type) {
	case HoldSeatIntent:
		resp, err = s.handleHold(cc, it, req.UserID)
	case JoinWaitlistIntent:
		resp, err = s.handleWaitlist(cc, it, req.UserID)
	case NoneIntent:
		resp = &models.ConciergeResponse{Intent: it.Name(), ResponseText: it.Message}
	}
	if err != nil {
		return nil, err
	}

	if err := s.CtxStore.Set(ctx, req.UserID, cc); err != nil {
		return nil, fmt.Errorf("save concierge context: %w", err)
	}
	return resp, nil
}

func (s *DefaultService) handleHold(cc *models.ConciergeContext, it HoldSeatIntent, userID string) (*models.ConciergeResponse, error) {
	session, err := s.Resolver.Hold(it.CohortID, userID)
	if errors.Is(err, inventory.ErrSoldOut) {
		// SoldOut routes the user to the waitlist flow.
		cc.LastCohortID = it.CohortID
		return &models.ConciergeResponse{
			Intent:       it.Name(),
			ResponseText: "That cohort is full. Want me to add you to the waitlist instead?",
			Actions: []models.ConciergeAction{
				{Label: "Join waitlist", Type: "waitlist", CohortID: it.CohortID},
			},
		}, nil
	}
	if errors.Is(err, inventory.ErrCohortNotFound) {
		return &models.ConciergeResponse{
			Intent:       it.Name(),
			ResponseText: "I couldn't find that cohort. It may no longer be listed.",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	cc.LastCohortID = session.CohortID
	cc.LastOfferingID = session.Grant.OfferingID
	cc.HoldSessionID = session.ID

	remaining, _ := s.Resolver.Remaining(session.ID)
	resp := &models.ConciergeResponse{
		Intent: it.Name(),
		ResponseText: fmt.Sprintf("Seat held. You have %d minutes to complete checkout.",
			int(remaining.Minutes())),
		Actions: []models.ConciergeAction{
			{Label: "Complete checkout", Type: "hold", CohortID: session.CohortID, SessionID: session.ID},
		},
	}
	if bundle := s.Resolver.SuggestBundle(session.Grant.OfferingID); bundle != nil {
		resp.ResponseText += " " + bundle.Blurb
	}
	return resp, nil
}

func (s *DefaultService) handleWaitlist(cc *models.ConciergeContext, it JoinWaitlistIntent, userID string) (*models.ConciergeResponse, error) {
	booking, err := s.Resolver.JoinWaitlist(it.CohortID, userID)
	if errors.Is(err, inventory.ErrCohortNotFound) {
		return &models.ConciergeResponse{
			Intent:       it.Name(),
			ResponseText: "I couldn't find that cohort. It may no longer be listed.",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	cc.LastCohortID = it.CohortID
	return &models.ConciergeResponse{
		Intent:       it.Name(),
		ResponseText: "You're on the waitlist. We'll reach out the moment a seat opens.",
		Booking:      booking,
	}, nil
}
