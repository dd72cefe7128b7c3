// internal/service/mocks/study_service.go
package mocks

import (
	"context"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StudyService は service.StudyService のモック
type StudyService struct {
	mock.Mock
}

func (m *StudyService) CreateSession(ctx context.Context, userID uuid.UUID, req *model.CreateSessionRequest) (*model.SessionResponse, error) {
	args := m.Called(ctx, userID, req)
	var session *model.SessionResponse
	if args.Get(0) != nil {
		session = args.Get(0).(*model.SessionResponse)
	}
	return session, args.Error(1)
}

func (m *StudyService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error) {
	args := m.Called(ctx, userID, sessionID)
	var session *model.SessionResponse
	if args.Get(0) != nil {
		session = args.Get(0).(*model.SessionResponse)
	}
	return session, args.Error(1)
}

func (m *StudyService) RecordAnswer(ctx context.Context, userID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.AnswerResponse, error) {
	args := m.Called(ctx, userID, sessionID, req)
	var answer *model.AnswerResponse
	if args.Get(0) != nil {
		answer = args.Get(0).(*model.AnswerResponse)
	}
	return answer, args.Error(1)
}

func (m *StudyService) FinishSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error) {
	args := m.Called(ctx, userID, sessionID)
	var session *model.SessionResponse
	if args.Get(0) != nil {
		session = args.Get(0).(*model.SessionResponse)
	}
	return session, args.Error(1)
}

func (m *StudyService) DueReviews(ctx context.Context, userID uuid.UUID) ([]*model.DueReviewResponse, error) {
	args := m.Called(ctx, userID)
	var reviews []*model.DueReviewResponse
	if args.Get(0) != nil {
		reviews = args.Get(0).([]*model.DueReviewResponse)
	}
	return reviews, args.Error(1)
}

func (m *StudyService) GetSessionStats(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStatsResponse, error) {
	args := m.Called(ctx, userID, sessionID)
	var stats *model.SessionStatsResponse
	if args.Get(0) != nil {
		stats = args.Get(0).(*model.SessionStatsResponse)
	}
	return stats, args.Error(1)
}
