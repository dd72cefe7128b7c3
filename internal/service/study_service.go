// internal/service/study_service.go
package service

import (
	"context"
	"errors"
	"time"

	"flash_decks/internal/config"
	"flash_decks/internal/middleware"
	"flash_decks/internal/model"
	"flash_decks/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyService インターフェース
type StudyService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *model.CreateSessionRequest) (*model.SessionResponse, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error)
	RecordAnswer(ctx context.Context, userID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.AnswerResponse, error)
	FinishSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error)
	DueReviews(ctx context.Context, userID uuid.UUID) ([]*model.DueReviewResponse, error)
	GetSessionStats(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStatsResponse, error)
}

type studyService struct {
	db            *gorm.DB
	cardRepo      repository.CardRepository
	sessionRepo   repository.SessionRepository
	responseRepo  repository.ResponseRepository
	reviewRepo    repository.ReviewRepository
	progressRepo  repository.ProgressRepository
	streakService StreakService
	cfg           *config.Config
}

func NewStudyService(
	db *gorm.DB,
	cardRepo repository.CardRepository,
	sessionRepo repository.SessionRepository,
	responseRepo repository.ResponseRepository,
	reviewRepo repository.ReviewRepository,
	progressRepo repository.ProgressRepository,
	streakService StreakService,
	cfg *config.Config,
) StudyService {
	return &studyService{
		db:            db,
		cardRepo:      cardRepo,
		sessionRepo:   sessionRepo,
		responseRepo:  responseRepo,
		reviewRepo:    reviewRepo,
		progressRepo:  progressRepo,
		streakService: streakService,
		cfg:           cfg,
	}
}

// CreateSession は新しい学習セッションをACTIVE状態で作成します。
// デッキの存在チェックは行わない (カード0枚のデッキへのセッションも有効)。
func (s *studyService) CreateSession(ctx context.Context, userID uuid.UUID, req *model.CreateSessionRequest) (*model.SessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", req.DeckID)

	session := &model.QuizSession{
		SessionID: uuid.New(),
		UserID:    userID,
		DeckID:    req.DeckID,
		Mode:      req.Mode,
		Status:    model.QuizStatusActive,
		Config:    req.Config,
		StartedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, s.db, session); err != nil {
		logger.Error("Failed to create quiz session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの作成に失敗しました。", "", err)
	}

	logger.Info("Quiz session created", "session_id", session.SessionID, "mode", session.Mode)
	return toSessionResponse(session), nil
}

func (s *studyService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error) {
	session, err := s.getOwnedSession(ctx, s.db, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// RecordAnswer はセッション内の1回の解答を記録します。
// モードに応じて自動採点し、REVIEWモードで品質評価があればSRS状態を更新し、
// 最後にデッキ進捗を再計算する。これらは1つのトランザクションで行う。
//
// COMPLETEDなセッションへの解答は現状許容する (互換性のため維持)。
func (s *studyService) RecordAnswer(ctx context.Context, userID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (*model.AnswerResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID, "card_id", req.CardID)

	session, err := s.getOwnedSession(ctx, s.db, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var answerResp *model.AnswerResponse

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.FindByID(ctx, tx, req.CardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error finding card in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得中にエラーが発生しました。", "", err)
		}
		if card.DeckID != session.DeckID {
			return model.NewAppError("NOT_FOUND", "カードはこのセッションのデッキに含まれていません。", "", model.ErrNotFound)
		}

		// モードに応じた自動採点。
		// REVIEWモードとPRACTICEモードのBASICカードは自己評価のためnullのまま。
		// EXAMモードはBASICカードも採点する (正解基準がないため常にfalse)。
		var isCorrect *bool
		switch {
		case session.Mode == model.QuizModePractice && card.Type != model.CardTypeBasic:
			v := CheckAnswerCorrectness(card, req.UserAnswer)
			isCorrect = &v
		case session.Mode == model.QuizModeExam:
			v := CheckAnswerCorrectness(card, req.UserAnswer)
			isCorrect = &v
		}

		now := time.Now()
		response := &model.QuizResponse{
			ResponseID: uuid.New(),
			SessionID:  session.SessionID,
			CardID:     card.CardID,
			UserAnswer: req.UserAnswer,
			Quality:    req.Quality,
			IsCorrect:  isCorrect,
			CreatedAt:  now,
		}
		if err := s.responseRepo.Create(ctx, tx, response); err != nil {
			logger.Error("Error creating quiz response", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "解答の記録に失敗しました。", "", err)
		}

		if session.Mode == model.QuizModeReview && req.Quality != nil {
			if err := s.applyReview(ctx, tx, userID, card.CardID, *req.Quality, now); err != nil {
				return err
			}
		}

		if err := s.updateProgress(ctx, tx, userID, session.DeckID, now); err != nil {
			return err
		}

		answerResp = toAnswerResponse(response)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Answer recorded", "mode", session.Mode, "is_correct", answerResp.IsCorrect)
	return answerResp, nil
}

// applyReview は(user, card)のSRS状態を遅延作成または取得し、SM-2を適用します。
// 同じ(user, card)への同時書き込みはストレージのユニーク制約で防ぐ前提。
func (s *studyService) applyReview(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID, quality int, now time.Time) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "card_id", cardID)

	review, err := s.reviewRepo.FindByUserAndCard(ctx, tx, userID, cardID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Error finding SRS review in transaction", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "復習状態の確認中にエラーが発生しました。", "", err)
	}

	isNew := errors.Is(err, model.ErrNotFound)
	if isNew {
		review = &model.SRSReview{
			ReviewID:     uuid.New(),
			UserID:       userID,
			CardID:       cardID,
			Repetitions:  0,
			IntervalDays: 1,
			Easiness:     DefaultEasiness,
			DueAt:        now,
		}
	}

	if err := ApplySM2(review, quality, now); err != nil {
		return err
	}

	if isNew {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			logger.Error("Error creating SRS review", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習状態の作成に失敗しました。", "", err)
		}
	} else {
		if err := s.reviewRepo.Update(ctx, tx, review); err != nil {
			logger.Error("Error updating SRS review", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習状態の更新に失敗しました。", "", err)
		}
	}

	logger.Debug("SRS review applied", "repetitions", review.Repetitions, "interval_days", review.IntervalDays, "easiness", review.Easiness)
	return nil
}

// updateProgress は(user, deck)の進捗集計を再計算します。
// 分子は解答行数であり、同一カードへの重複解答も数える (互換性のため維持)。
func (s *studyService) updateProgress(ctx context.Context, tx *gorm.DB, userID, deckID uuid.UUID, now time.Time) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", deckID)

	progress, err := s.progressRepo.FindByUserAndDeck(ctx, tx, userID, deckID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Error finding deck progress in transaction", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
	}

	isNew := errors.Is(err, model.ErrNotFound)
	if isNew {
		progress = &model.UserDeckProgress{
			ProgressID: uuid.New(),
			UserID:     userID,
			DeckID:     deckID,
		}
	}

	totalCards, err := s.cardRepo.CountByDeck(ctx, tx, deckID)
	if err != nil {
		logger.Error("Error counting cards in deck", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カード数の取得に失敗しました。", "", err)
	}
	reviewed, err := s.responseRepo.CountByUserAndDeck(ctx, tx, userID, deckID)
	if err != nil {
		logger.Error("Error counting responses for deck", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "解答数の取得に失敗しました。", "", err)
	}

	if totalCards > 0 {
		percent := float64(reviewed) / float64(totalCards) * 100
		if percent > 100 {
			percent = 100
		}
		progress.PercentComplete = percent
	}
	progress.LastStudiedAt = &now
	if progress.Streak < 1 {
		progress.Streak = 1
	}

	if isNew {
		if err := s.progressRepo.Create(ctx, tx, progress); err != nil {
			logger.Error("Error creating deck progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", err)
		}
	} else {
		if err := s.progressRepo.Update(ctx, tx, progress); err != nil {
			logger.Error("Error updating deck progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", err)
		}
	}

	return nil
}

// FinishSession はセッションをCOMPLETEDにし、ストリークを1回だけ更新します。
func (s *studyService) FinishSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	session, err := s.getOwnedSession(ctx, s.db, userID, sessionID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		session.Status = model.QuizStatusCompleted
		session.EndedAt = &now
		if err := s.sessionRepo.Update(ctx, tx, session); err != nil {
			logger.Error("Error completing quiz session", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの完了に失敗しました。", "", err)
		}
		return s.streakService.UpdateStreak(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz session completed")
	return toSessionResponse(session), nil
}

// DueReviews は復習期限が到来したカードをdue_atの昇順で返します。
func (s *studyService) DueReviews(ctx context.Context, userID uuid.UUID) ([]*model.DueReviewResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	reviews, err := s.reviewRepo.FindDueByUser(ctx, s.db, userID, time.Now(), s.cfg.App.DueReviewLimit)
	if err != nil {
		logger.Error("Failed to find due reviews from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習カードの取得に失敗しました。", "", err)
	}

	responses := make([]*model.DueReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		if r.Card == nil {
			logger.Warn("Found SRS review with nil Card during due listing, skipping", "review_id", r.ReviewID)
			continue
		}
		responses = append(responses, &model.DueReviewResponse{
			CardID:       r.CardID,
			DeckID:       r.Card.DeckID,
			DueAt:        r.DueAt,
			Repetitions:  r.Repetitions,
			IntervalDays: r.IntervalDays,
			Easiness:     r.Easiness,
		})
	}

	logger.Info("Successfully retrieved due reviews", "count", len(responses))
	return responses, nil
}

// GetSessionStats はセッション内の解答を正解/不正解/未採点で集計します。
func (s *studyService) GetSessionStats(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	session, err := s.getOwnedSession(ctx, s.db, userID, sessionID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListBySession(ctx, s.db, session.SessionID)
	if err != nil {
		logger.Error("Failed to list responses for session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "解答の取得に失敗しました。", "", err)
	}

	stats := &model.SessionStatsResponse{TotalResponses: len(responses)}
	for _, r := range responses {
		switch {
		case r.IsCorrect == nil:
			stats.UnansweredCount++
		case *r.IsCorrect:
			stats.CorrectCount++
		default:
			stats.IncorrectCount++
		}
	}
	return stats, nil
}

// getOwnedSession はセッションを取得し、所有者を検証します。
// 存在しない場合も他人のセッションの場合も同じNotFoundを返す
// (Forbiddenを返すとセッションの存在が漏れるため)。
func (s *studyService) getOwnedSession(ctx context.Context, db *gorm.DB, userID, sessionID uuid.UUID) (*model.QuizSession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	session, err := s.sessionRepo.FindByID(ctx, db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "セッションが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding quiz session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの取得中にエラーが発生しました。", "", err)
	}
	if session.UserID != userID {
		logger.Warn("Session access denied for non-owner")
		return nil, model.NewAppError("NOT_FOUND", "セッションが見つかりません。", "", model.ErrNotFound)
	}
	return session, nil
}

func toSessionResponse(session *model.QuizSession) *model.SessionResponse {
	return &model.SessionResponse{
		SessionID: session.SessionID,
		DeckID:    session.DeckID,
		Mode:      session.Mode,
		Status:    session.Status,
		Config:    session.Config,
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
	}
}

func toAnswerResponse(response *model.QuizResponse) *model.AnswerResponse {
	return &model.AnswerResponse{
		ResponseID: response.ResponseID,
		SessionID:  response.SessionID,
		CardID:     response.CardID,
		UserAnswer: response.UserAnswer,
		Quality:    response.Quality,
		IsCorrect:  response.IsCorrect,
		CreatedAt:  response.CreatedAt,
	}
}
