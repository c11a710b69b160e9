// Package assistant builds the HR-aware prompt for the conversational
// assistant and records every exchange.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/hr"
	"hrms/internal/domain/record"
	"hrms/internal/platform/docstore"
	"hrms/internal/platform/llm"
)

// ErrUnavailable covers every provider-side failure: network, timeout,
// quota, malformed response. Callers get one generic error; the cause is
// logged, not surfaced.
var ErrUnavailable = errors.New("assistant unavailable")

// leaveContextLimit caps how many of the caller's leave requests feed the
// prompt.
const leaveContextLimit = 100

type Exchange struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

var history = record.Kind[Exchange]{Collection: "ai_chat_history", TimeFields: []string{"timestamp"}}

type Service struct {
	HR  *hr.Store
	LLM llm.Client
}

func NewService(hrStore *hr.Store, client llm.Client) *Service {
	return &Service{HR: hrStore, LLM: client}
}

// Converse sends the caller's message to the provider under a system prompt
// assembled from their HR records, persists the exchange, and returns it.
func (s *Service) Converse(ctx context.Context, caller hr.User, message string) (Exchange, error) {
	system, err := s.buildSystemPrompt(ctx, caller)
	if err != nil {
		return Exchange{}, err
	}

	reply, err := s.LLM.Complete(ctx, sessionID(caller), system, message)
	if err != nil {
		slog.Warn("assistant provider call failed", "userId", caller.ID, "err", err)
		return Exchange{}, ErrUnavailable
	}

	exchange := Exchange{
		ID:        uuid.NewString(),
		UserID:    caller.ID,
		Message:   message,
		Response:  reply,
		Timestamp: time.Now().UTC(),
	}
	if err := history.Create(ctx, s.HR.DB, exchange); err != nil {
		return Exchange{}, err
	}
	return exchange, nil
}

// History lists the caller's prior exchanges in insertion order.
func (s *Service) History(ctx context.Context, caller hr.User) ([]Exchange, error) {
	return history.List(ctx, s.HR.DB, docstore.Filter{"user_id": caller.ID})
}

// sessionID is deterministic per caller so the provider can thread repeated
// calls into one conversation.
func sessionID(caller hr.User) string {
	return "hr_chat_" + caller.ID
}

func (s *Service) buildSystemPrompt(ctx context.Context, caller hr.User) (string, error) {
	prompt := fmt.Sprintf("You are an AI HR Assistant. The current user is %s (%s).\n", caller.FullName, caller.Role)

	employee, err := s.HR.EmployeeForUser(ctx, caller.ID)
	if errors.Is(err, record.ErrNotFound) {
		return prompt, nil
	}
	if err != nil {
		return "", err
	}

	leaves, err := s.HR.LeaveForEmployee(ctx, employee.ID)
	if err != nil {
		return "", err
	}
	count := len(leaves)
	if count > leaveContextLimit {
		count = leaveContextLimit
	}

	prompt += fmt.Sprintf(
		"Employee details: Position: %s, Department: %s, Hire Date: %s, Status: %s.\nLeave requests: %d total.",
		employee.Position, employee.DepartmentID, employee.HireDate.Format("2006-01-02"), employee.Status, count,
	)
	return prompt, nil
}
